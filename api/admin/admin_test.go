// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/health"
	"github.com/vechain/rewardpool/log"
)

type fixture struct {
	handler  http.Handler
	level    *slog.LevelVar
	apiLogs  *atomic.Bool
	probeErr error
}

func newFixture() *fixture {
	f := &fixture{level: new(slog.LevelVar), apiLogs: new(atomic.Bool)}
	f.level.Set(log.LevelInfo)
	f.handler = New(f.level, f.apiLogs, health.New(func() error { return f.probeErr }))
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(method, path, &buf))
	return rr
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           any
		expectedStatus int
		expectedLevel  string
	}{
		{"get current level", http.MethodGet, nil, http.StatusOK, "info"},
		{"set debug", http.MethodPost, map[string]string{"level": "debug"}, http.StatusOK, "debug"},
		{"set trace", http.MethodPost, map[string]string{"level": "trace"}, http.StatusOK, "trace"},
		{"invalid level", http.MethodPost, map[string]string{"level": "loud"}, http.StatusBadRequest, ""},
		{"unknown field", http.MethodPost, map[string]string{"lvl": "warn"}, http.StatusBadRequest, ""},
		{"unrouted method", http.MethodDelete, nil, http.StatusNotFound, ""},
	}

	f := newFixture()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, tt.method, "/admin/loglevel", tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedLevel != "" {
				var res LogLevelResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
				assert.Equal(t, tt.expectedLevel, res.CurrentLevel)
			}
		})
	}
	assert.Equal(t, log.LevelTrace, f.level.Level())
}

func TestAPILogs(t *testing.T) {
	f := newFixture()

	rr := f.do(t, http.MethodPost, "/admin/apilogs", LogStatus{Enabled: true})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, f.apiLogs.Load())

	rr = f.do(t, http.MethodGet, "/admin/apilogs", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var st LogStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	assert.True(t, st.Enabled)

	rr = f.do(t, http.MethodPost, "/admin/apilogs", "yes")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, f.apiLogs.Load())
}

func TestHealth(t *testing.T) {
	f := newFixture()

	rr := f.do(t, http.MethodGet, "/admin/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	f.probeErr = errors.New("read clock: ntp unreachable")
	rr = f.do(t, http.MethodGet, "/admin/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var st health.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	assert.False(t, st.Healthy)
	assert.Equal(t, "read clock: ntp unreachable", st.Error)
	assert.NotNil(t, st.LastHealthy)
}
