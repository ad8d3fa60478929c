// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type Status struct {
	Healthy     bool       `json:"healthy"`
	CheckedAt   time.Time  `json:"checkedAt"`
	LastHealthy *time.Time `json:"lastHealthy"`
	Error       string     `json:"error,omitempty"`
}

// Health reports whether the engine can read its clock and its store.
type Health struct {
	lock        sync.Mutex
	probe       func() error
	now         func() time.Time
	lastHealthy time.Time
}

func New(probe func() error) *Health {
	return &Health{probe: probe, now: time.Now}
}

// Status runs the probe once and returns the outcome.
func (h *Health) Status() *Status {
	h.lock.Lock()
	defer h.lock.Unlock()

	st := &Status{CheckedAt: h.now()}
	if err := h.probe(); err != nil {
		st.Error = err.Error()
	} else {
		st.Healthy = true
		h.lastHealthy = st.CheckedAt
	}
	if !h.lastHealthy.IsZero() {
		last := h.lastHealthy
		st.LastHealthy = &last
	}
	return st
}
