// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestTerminalHandlerFollowsLevelVar(t *testing.T) {
	var (
		buf bytes.Buffer
		lvl slog.LevelVar
	)
	lvl.Set(LevelInfo)
	h := NewTerminalHandlerWithLevel(&buf, &lvl, false)
	logger := NewLogger(h)

	assert.False(t, h.Enabled(t.Context(), LevelDebug))
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	lvl.Set(LevelDebug)
	assert.True(t, h.Enabled(t.Context(), LevelDebug))
	logger.Debug("shown")
	assert.True(t, strings.HasPrefix(buf.String(), "DEBUG ["), buf.String())
	assert.Contains(t, buf.String(), "shown")
}

func TestTerminalHandlerFormat(t *testing.T) {
	var (
		buf bytes.Buffer
		lvl slog.LevelVar
	)
	logger := NewLogger(NewTerminalHandlerWithLevel(&buf, &lvl, false)).With("pkg", "engine")

	var missing *uint256.Int
	logger.Warn("claim", "paid", uint256.NewInt(42), "rate", missing, "note", "two words")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "WARN  ["), line)
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, " pkg=engine")
	assert.Contains(t, line, " paid=42")
	assert.Contains(t, line, " rate=<nil>")
	assert.Contains(t, line, ` note="two words"`)
	assert.NotContains(t, line, "\x1b[")
}

func TestTerminalHandlerColor(t *testing.T) {
	var (
		buf bytes.Buffer
		lvl slog.LevelVar
	)
	NewLogger(NewTerminalHandlerWithLevel(&buf, &lvl, true)).Error("boom", "k", "v")
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[31mERROR\x1b[0m"), buf.String())
}
