// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/log"
)

var logger = log.WithContext("pkg", "clock")

// Clock reports the current unix time in seconds.
type Clock interface {
	Now() (uint64, error)
}

// System is the local wall clock.
type System struct{}

func (System) Now() (uint64, error) {
	now := time.Now().Unix()
	if now < 0 {
		return 0, errors.New("clock before unix epoch")
	}
	return uint64(now), nil
}

// DefaultNTPRefresh is how long a measured offset is trusted.
const DefaultNTPRefresh = 10 * time.Minute

// offsetWarnThreshold is the local clock drift reported as a warning.
const offsetWarnThreshold = 5 * time.Second

// NTP is the local clock corrected by the offset measured against an NTP server.
// The offset is re-measured every refresh interval; a failed measurement fails the read.
type NTP struct {
	server  string
	refresh time.Duration
	query   func(host string) (*ntp.Response, error)

	mu       sync.Mutex
	offset   time.Duration
	measured time.Time
	last     uint64
}

func NewNTP(server string, refresh time.Duration) *NTP {
	if refresh <= 0 {
		refresh = DefaultNTPRefresh
	}
	return &NTP{server: server, refresh: refresh, query: ntp.Query}
}

func (c *NTP) Now() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	local := time.Now()
	if c.measured.IsZero() || local.Sub(c.measured) >= c.refresh {
		resp, err := c.query(c.server)
		if err != nil {
			logger.Debug("failed to access NTP", "server", c.server, "err", err)
			return 0, errors.Wrap(err, "ntp clock")
		}
		if resp.ClockOffset > offsetWarnThreshold || resp.ClockOffset < -offsetWarnThreshold {
			logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
		}
		c.offset = resp.ClockOffset
		c.measured = local
	}

	now := local.Add(c.offset).Unix()
	if now < 0 {
		return 0, errors.New("clock before unix epoch")
	}
	// a smaller re-measured offset must not move time back
	c.last = max(c.last, uint64(now))
	return c.last, nil
}

// Monotonic never reports a time earlier than one it already reported.
type Monotonic struct {
	src Clock

	mu   sync.Mutex
	last uint64
}

func NewMonotonic(src Clock) *Monotonic {
	return &Monotonic{src: src}
}

func (m *Monotonic) Now() (uint64, error) {
	now, err := m.src.Now()
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if now < m.last {
		logger.Debug("clock stepped back, holding", "now", now, "last", m.last)
		return m.last, nil
	}
	m.last = now
	return now, nil
}

// Mock is a manually driven clock for tests.
type Mock struct {
	mu  sync.Mutex
	now uint64
	err error
}

func NewMock(now uint64) *Mock {
	return &Mock{now: now}
}

func (m *Mock) Now() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return m.now, nil
}

func (m *Mock) Set(now uint64) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Mock) Advance(seconds uint64) {
	m.mu.Lock()
	m.now += seconds
	m.mu.Unlock()
}

// Fail makes every read return err until it is called with nil.
func (m *Mock) Fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}
