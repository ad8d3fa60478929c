// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/assets"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/rewardpool/accrual"
	"github.com/vechain/rewardpool/rewardpool/pool"
	"github.com/vechain/rewardpool/rewardpool/position"
	"github.com/vechain/rewardpool/rewardpool/reverts"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	metricOperations        = metrics.LazyLoadCounterVec("operations_total", []string{"op", "result"})
	metricOperationDuration = metrics.LazyLoadHistogramVec("operation_duration_ms", []string{"op"}, metrics.BucketOperation)
	metricOpenPositions     = metrics.LazyLoadGaugeVec("open_positions", []string{"pool"})
)

// session is the view of the records during one operation.
type session struct {
	now       uint64
	state     *state.State
	pools     *pool.Storage
	positions *position.Storage
	ledger    *assets.Ledger
}

func newSession(st *state.State, now uint64) *session {
	return &session{
		now:       now,
		state:     st,
		pools:     pool.NewStorage(st),
		positions: position.NewStorage(st),
		ledger:    assets.New(st),
	}
}

// exec runs fn as one indivisible operation. Either every record fn wrote is
// committed or, on any error, none is.
func (e *Engine) exec(op string, fn func(s *session) error) (err error) {
	start := time.Now()
	defer func() {
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": result(err)})
		metricOperationDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	now, err := e.clock.Now()
	if err != nil {
		return errors.Wrap(err, "read clock")
	}

	st := e.stater.NewState()
	checkpoint := st.NewCheckpoint()
	if err := fn(newSession(st, now)); err != nil {
		st.RevertTo(checkpoint)
		return err
	}
	return st.Stage().Commit()
}

// view runs fn against the committed records. Nothing fn writes is kept.
func (e *Engine) view(fn func(s *session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now, err := e.clock.Now()
	if err != nil {
		return errors.Wrap(err, "read clock")
	}
	return fn(newSession(e.stater.NewState(), now))
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case reverts.IsRevertErr(err):
		return "revert"
	default:
		return "error"
	}
}

// totalStaked is the balance of the staking vault, read before any transfer of the operation.
func (s *session) totalStaked(p *pool.Pool) (uint64, error) {
	return s.ledger.Balance(p.StakingVault)
}

// reconcile brings the pool accumulator and, when given, the position checkpoint up to now.
// It must run before any change to a staked balance or to the reward rate.
func (s *session) reconcile(p *pool.Pool, pos *position.Position, totalStaked uint64) error {
	applicable := accrual.TimeApplicable(p.RewardDurationEnd, s.now)

	rpt, err := accrual.RewardPerToken(p.Accumulator(), p.RewardRate, totalStaked, p.LastUpdateTime, applicable)
	if err != nil {
		return err
	}
	p.RewardPerTokenStored = rpt
	p.LastUpdateTime = applicable

	if pos != nil {
		pending, err := accrual.Earned(pos.BalanceStaked, rpt, pos.Checkpoint(), pos.PendingReward)
		if err != nil {
			return err
		}
		pos.PendingReward = pending
		pos.RewardPerTokenCheckpoint = rpt.Clone()
	}
	return nil
}

// authorityPool loads pool id and checks that caller administers it.
func (s *session) authorityPool(id, caller thor.Address) (*pool.Pool, error) {
	p, err := s.pools.Get(id)
	if err != nil {
		return nil, err
	}
	if p.Authority != caller {
		return nil, reverts.ErrUnauthorized
	}
	return p, nil
}

// loadPosition loads the pool and the position of owner in it.
func (s *session) loadPosition(owner, poolID thor.Address) (*pool.Pool, *position.Position, error) {
	p, err := s.pools.Get(poolID)
	if err != nil {
		return nil, nil, err
	}
	pos, err := s.positions.Get(owner, poolID)
	if err != nil {
		return nil, nil, err
	}
	return p, pos, nil
}

func (s *session) save(id thor.Address, p *pool.Pool, pos *position.Position) error {
	if err := s.pools.Set(id, p); err != nil {
		return err
	}
	if pos != nil {
		return s.positions.Set(pos)
	}
	return nil
}
