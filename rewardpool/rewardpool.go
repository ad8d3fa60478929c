// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"math/bits"
	"sync"

	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/assets"
	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/rewardpool/accrual"
	"github.com/vechain/rewardpool/rewardpool/pool"
	"github.com/vechain/rewardpool/rewardpool/position"
	"github.com/vechain/rewardpool/rewardpool/reverts"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	logger   = log.WithContext("pkg", "rewardpool")
	probeKey = thor.BytesToBytes32([]byte("probe"))
)

func SetLogger(l log.Logger) {
	logger = l
}

// Engine applies pool and position operations. Operations are serialized and each one
// is committed to the database as a single batch or not at all.
type Engine struct {
	mu     sync.Mutex
	stater *state.Stater
	clock  clock.Clock
}

// New creates an engine over db, reading time from clk.
func New(db kv.GetPutter, clk clock.Clock, cacheSize int) (*Engine, error) {
	stater, err := state.NewStater(db, cacheSize)
	if err != nil {
		return nil, err
	}
	metrics.RegisterCacheCollector("state", stater.CacheStats)
	return &Engine{stater: stater, clock: clock.NewMonotonic(clk)}, nil
}

// PoolParams describes a pool to create.
type PoolParams struct {
	ID             thor.Address
	Authority      thor.Address
	Nonce          uint8
	StakingAsset   thor.Address
	StakingVault   thor.Address
	RewardAsset    thor.Address
	RewardVault    thor.Address
	RewardDuration uint64
	LockPeriod     uint64
}

//
// Getters - no state change
//

// Pool returns the pool record.
func (e *Engine) Pool(id thor.Address) (p *pool.Pool, err error) {
	err = e.view(func(s *session) error {
		p, err = s.pools.Get(id)
		return err
	})
	return
}

// Position returns the position of owner in pool.
func (e *Engine) Position(owner, poolID thor.Address) (pos *position.Position, err error) {
	err = e.view(func(s *session) error {
		pos, err = s.positions.Get(owner, poolID)
		return err
	})
	return
}

// TotalStaked returns the balance of the staking vault of pool.
func (e *Engine) TotalStaked(poolID thor.Address) (total uint64, err error) {
	err = e.view(func(s *session) error {
		p, err := s.pools.Get(poolID)
		if err != nil {
			return err
		}
		total, err = s.totalStaked(p)
		return err
	})
	return
}

// PreviewEarned returns the pending reward of owner as it would be after a reconcile now.
func (e *Engine) PreviewEarned(owner, poolID thor.Address) (earned uint64, err error) {
	err = e.view(func(s *session) error {
		p, pos, err := s.loadPosition(owner, poolID)
		if err != nil {
			return err
		}
		total, err := s.totalStaked(p)
		if err != nil {
			return err
		}
		if err := s.reconcile(p, pos, total); err != nil {
			return err
		}
		earned = pos.PendingReward
		return nil
	})
	return
}

// PoolSigner returns the principal custodying the vaults of pool.
func (e *Engine) PoolSigner(poolID thor.Address) (signer thor.Address, err error) {
	err = e.view(func(s *session) error {
		p, err := s.pools.Get(poolID)
		if err != nil {
			return err
		}
		signer = pool.Signer(poolID, p.Nonce)
		return nil
	})
	return
}

// Account returns a token account of the ledger.
func (e *Engine) Account(id thor.Address) (acc *assets.Account, err error) {
	err = e.view(func(s *session) error {
		acc, err = s.ledger.Account(id)
		return err
	})
	return
}

// Probe reads the clock and the store and returns the first failure.
func (e *Engine) Probe() error {
	return e.view(func(s *session) error {
		_, err := s.state.GetRawStorage(probeKey)
		return err
	})
}

//
// Setters - state change
//

// CreateAccount opens a token account on the ledger.
func (e *Engine) CreateAccount(id, asset, owner thor.Address) error {
	logger.Debug("creating token account", "id", id, "asset", asset, "owner", owner)

	return e.exec("createAccount", func(s *session) error {
		return s.ledger.CreateAccount(id, asset, owner)
	})
}

// Mint credits amount to a token account.
func (e *Engine) Mint(id thor.Address, amount uint64) error {
	logger.Debug("minting", "id", id, "amount", amount)

	return e.exec("mint", func(s *session) error {
		return s.ledger.Mint(id, amount)
	})
}

// CreatePool registers a new pool. Both vaults must already exist, hold the pool assets
// and be custodied by the pool signer.
func (e *Engine) CreatePool(params PoolParams) error {
	logger.Debug("creating pool", "id", params.ID, "authority", params.Authority, "duration", params.RewardDuration, "lock", params.LockPeriod)

	err := e.exec("createPool", func(s *session) error {
		if params.ID.IsZero() {
			return reverts.ErrInvalidPoolID
		}
		if params.RewardDuration < accrual.MinDuration {
			return reverts.ErrDurationTooShort
		}
		exists, err := s.pools.Exists(params.ID)
		if err != nil {
			return err
		}
		if exists {
			return reverts.ErrPoolExists
		}
		if params.StakingVault == params.RewardVault {
			return reverts.ErrInvalidVault
		}

		signer := pool.Signer(params.ID, params.Nonce)
		for _, vault := range []struct{ id, asset thor.Address }{
			{params.StakingVault, params.StakingAsset},
			{params.RewardVault, params.RewardAsset},
		} {
			acc, err := s.ledger.Account(vault.id)
			if err != nil {
				return err
			}
			if acc.Asset != vault.asset || acc.Owner != signer {
				return reverts.ErrInvalidVault
			}
		}

		return s.pools.Set(params.ID, &pool.Pool{
			Authority:            params.Authority,
			Nonce:                params.Nonce,
			StakingAsset:         params.StakingAsset,
			StakingVault:         params.StakingVault,
			RewardAsset:          params.RewardAsset,
			RewardVault:          params.RewardVault,
			RewardDuration:       params.RewardDuration,
			LockPeriod:           params.LockPeriod,
			RewardPerTokenStored: new(uint256.Int),
		})
	})
	if err != nil {
		logger.Info("create pool failed", "id", params.ID, "error", err)
		return err
	}

	logger.Info("created pool", "id", params.ID)
	return nil
}

// CreatePosition opens an empty position of owner in pool.
func (e *Engine) CreatePosition(owner, poolID thor.Address) error {
	logger.Debug("creating position", "owner", owner, "pool", poolID)

	var count uint64
	err := e.exec("createPosition", func(s *session) error {
		p, err := s.pools.Get(poolID)
		if err != nil {
			return err
		}
		if p.Paused {
			return reverts.ErrPoolPaused
		}
		exists, err := s.positions.Exists(owner, poolID)
		if err != nil {
			return err
		}
		if exists {
			return reverts.ErrPositionExists
		}
		if p.UserPositionCount, err = inc(p.UserPositionCount, 1); err != nil {
			return err
		}
		count = p.UserPositionCount
		return s.save(poolID, p, &position.Position{
			Pool:                     poolID,
			Owner:                    owner,
			RewardPerTokenCheckpoint: new(uint256.Int),
		})
	})
	if err != nil {
		logger.Info("create position failed", "owner", owner, "pool", poolID, "error", err)
		return err
	}

	metricOpenPositions().SetWithLabel(int64(count), map[string]string{"pool": poolID.String()})
	return nil
}

// Stake deposits amount from the token account from, owned by owner, into the staking vault.
// The lock of the whole position restarts.
func (e *Engine) Stake(owner, poolID, from thor.Address, amount uint64) error {
	logger.Debug("staking", "owner", owner, "pool", poolID, "amount", amount)

	err := e.exec("stake", func(s *session) error {
		if amount == 0 {
			return reverts.ErrAmountMustBeGreaterThanZero
		}
		p, pos, err := s.loadPosition(owner, poolID)
		if err != nil {
			return err
		}
		if p.Paused {
			return reverts.ErrPoolPaused
		}
		total, err := s.totalStaked(p)
		if err != nil {
			return err
		}
		if err := s.reconcile(p, pos, total); err != nil {
			return err
		}

		if pos.BalanceStaked, err = inc(pos.BalanceStaked, amount); err != nil {
			return err
		}
		if pos.MaturityTime, err = inc(s.now, p.LockPeriod); err != nil {
			return err
		}
		if err := s.save(poolID, p, pos); err != nil {
			return err
		}
		return s.ledger.Transfer(from, p.StakingVault, amount, owner)
	})
	if err != nil {
		logger.Info("stake failed", "owner", owner, "pool", poolID, "error", err)
	}
	return err
}

// Unstake withdraws amount from the staking vault into the token account to.
func (e *Engine) Unstake(owner, poolID, to thor.Address, amount uint64) error {
	logger.Debug("unstaking", "owner", owner, "pool", poolID, "amount", amount)

	err := e.exec("unstake", func(s *session) error {
		if amount == 0 {
			return reverts.ErrAmountMustBeGreaterThanZero
		}
		p, pos, err := s.loadPosition(owner, poolID)
		if err != nil {
			return err
		}
		if !pos.Matured(s.now) {
			return reverts.ErrCannotStakeOrClaimBeforeMaturity
		}
		if pos.BalanceStaked < amount {
			return reverts.ErrInsufficientFundUnstake
		}
		total, err := s.totalStaked(p)
		if err != nil {
			return err
		}
		if err := s.reconcile(p, pos, total); err != nil {
			return err
		}

		pos.BalanceStaked -= amount
		if err := s.save(poolID, p, pos); err != nil {
			return err
		}
		return s.ledger.Transfer(p.StakingVault, to, amount, pool.Signer(poolID, p.Nonce))
	})
	if err != nil {
		logger.Info("unstake failed", "owner", owner, "pool", poolID, "error", err)
	}
	return err
}

// Claim pays the pending reward of owner into the token account to and returns the amount paid.
// When the reward vault holds less than is pending, the vault balance is paid and the rest is dropped.
func (e *Engine) Claim(owner, poolID, to thor.Address) (uint64, error) {
	logger.Debug("claiming", "owner", owner, "pool", poolID)

	var payout uint64
	err := e.exec("claim", func(s *session) error {
		p, pos, err := s.loadPosition(owner, poolID)
		if err != nil {
			return err
		}
		if !pos.Matured(s.now) {
			return reverts.ErrCannotStakeOrClaimBeforeMaturity
		}
		total, err := s.totalStaked(p)
		if err != nil {
			return err
		}
		if err := s.reconcile(p, pos, total); err != nil {
			return err
		}

		if pos.PendingReward > 0 {
			vault, err := s.ledger.Balance(p.RewardVault)
			if err != nil {
				return err
			}
			payout = min(pos.PendingReward, vault)
			if payout < pos.PendingReward {
				logger.Warn("reward vault short, dropping unpaid reward",
					"pool", poolID, "owner", owner, "pending", pos.PendingReward, "paid", payout)
			}
			pos.PendingReward = 0
		}
		if err := s.save(poolID, p, pos); err != nil {
			return err
		}
		if payout > 0 {
			return s.ledger.Transfer(p.RewardVault, to, payout, pool.Signer(poolID, p.Nonce))
		}
		return nil
	})
	if err != nil {
		logger.Info("claim failed", "owner", owner, "pool", poolID, "error", err)
		return 0, err
	}
	return payout, nil
}

// ClosePosition releases an empty position of owner.
func (e *Engine) ClosePosition(owner, poolID thor.Address) error {
	logger.Debug("closing position", "owner", owner, "pool", poolID)

	var count uint64
	err := e.exec("closePosition", func(s *session) error {
		p, pos, err := s.loadPosition(owner, poolID)
		if err != nil {
			return err
		}
		if !pos.IsEmpty() {
			return reverts.ErrPositionNotEmpty
		}
		if p.UserPositionCount == 0 {
			return reverts.ErrOverflow
		}
		p.UserPositionCount--
		count = p.UserPositionCount

		s.positions.Delete(owner, poolID)
		return s.pools.Set(poolID, p)
	})
	if err != nil {
		logger.Info("close position failed", "owner", owner, "pool", poolID, "error", err)
		return err
	}

	metricOpenPositions().SetWithLabel(int64(count), map[string]string{"pool": poolID.String()})
	return nil
}

// Fund deposits amount of reward from the token account from and starts a fresh reward window.
// A zero amount is valid and only reconciles and restarts the window.
func (e *Engine) Fund(funder, poolID, from thor.Address, amount uint64) error {
	logger.Debug("funding", "funder", funder, "pool", poolID, "amount", amount)

	err := e.exec("fund", func(s *session) error {
		p, err := s.pools.Get(poolID)
		if err != nil {
			return err
		}
		if p.Paused {
			return reverts.ErrPoolPaused
		}
		if !p.IsFunder(funder) {
			return reverts.ErrUnauthorizedFunder
		}
		total, err := s.totalStaked(p)
		if err != nil {
			return err
		}
		if err := s.reconcile(p, nil, total); err != nil {
			return err
		}

		window, err := accrual.NextWindow(amount, p.RewardDuration, p.RewardDurationEnd, p.RewardRate, s.now)
		if err != nil {
			return err
		}
		p.RewardRate = window.Rate
		p.LastUpdateTime = window.LastUpdateTime
		p.RewardDurationEnd = window.DurationEnd

		if err := s.pools.Set(poolID, p); err != nil {
			return err
		}
		if amount > 0 {
			return s.ledger.Transfer(from, p.RewardVault, amount, funder)
		}
		return nil
	})
	if err != nil {
		logger.Info("fund failed", "funder", funder, "pool", poolID, "error", err)
	}
	return err
}

// AuthorizeFunder adds funder to the allowlist of pool.
func (e *Engine) AuthorizeFunder(caller, poolID, funder thor.Address) error {
	logger.Debug("authorizing funder", "pool", poolID, "funder", funder)

	err := e.exec("authorizeFunder", func(s *session) error {
		p, err := s.authorityPool(poolID, caller)
		if err != nil {
			return err
		}
		if err := p.Funders.Authorize(p.Authority, funder); err != nil {
			return err
		}
		return s.pools.Set(poolID, p)
	})
	if err != nil {
		logger.Info("authorize funder failed", "pool", poolID, "funder", funder, "error", err)
	}
	return err
}

// DeauthorizeFunder removes funder from the allowlist of pool.
func (e *Engine) DeauthorizeFunder(caller, poolID, funder thor.Address) error {
	logger.Debug("deauthorizing funder", "pool", poolID, "funder", funder)

	err := e.exec("deauthorizeFunder", func(s *session) error {
		p, err := s.authorityPool(poolID, caller)
		if err != nil {
			return err
		}
		if err := p.Funders.Deauthorize(p.Authority, funder); err != nil {
			return err
		}
		return s.pools.Set(poolID, p)
	})
	if err != nil {
		logger.Info("deauthorize funder failed", "pool", poolID, "funder", funder, "error", err)
	}
	return err
}

// Pause stops staking, funding and position creation. The reward window must have ended.
func (e *Engine) Pause(caller, poolID thor.Address) error {
	logger.Debug("pausing pool", "pool", poolID)

	err := e.exec("pause", func(s *session) error {
		p, err := s.authorityPool(poolID, caller)
		if err != nil {
			return err
		}
		if p.Paused {
			return reverts.ErrPoolPaused
		}
		if !p.WindowElapsed(s.now) {
			return reverts.ErrRewardWindowActive
		}
		p.Paused = true
		return s.pools.Set(poolID, p)
	})
	if err != nil {
		logger.Info("pause failed", "pool", poolID, "error", err)
	}
	return err
}

// Unpause resumes a paused pool.
func (e *Engine) Unpause(caller, poolID thor.Address) error {
	logger.Debug("unpausing pool", "pool", poolID)

	err := e.exec("unpause", func(s *session) error {
		p, err := s.authorityPool(poolID, caller)
		if err != nil {
			return err
		}
		if !p.Paused {
			return reverts.ErrPoolNotPaused
		}
		p.Paused = false
		return s.pools.Set(poolID, p)
	})
	if err != nil {
		logger.Info("unpause failed", "pool", poolID, "error", err)
	}
	return err
}

// ClosePool drains both vaults to the refund accounts, releases them and removes the pool.
// It returns the amount of reward refunded.
func (e *Engine) ClosePool(caller, poolID, stakingRefundee, rewardRefundee thor.Address) (uint64, error) {
	logger.Debug("closing pool", "pool", poolID)

	var refunded uint64
	err := e.exec("closePool", func(s *session) error {
		p, err := s.authorityPool(poolID, caller)
		if err != nil {
			return err
		}
		total, err := s.totalStaked(p)
		if err != nil {
			return err
		}
		if !p.Closable(s.now, total) {
			return reverts.ErrPoolNotClosable
		}

		signer := pool.Signer(poolID, p.Nonce)
		if err := s.ledger.Transfer(p.StakingVault, stakingRefundee, total, signer); err != nil {
			return err
		}
		if refunded, err = s.ledger.Balance(p.RewardVault); err != nil {
			return err
		}
		if err := s.ledger.Transfer(p.RewardVault, rewardRefundee, refunded, signer); err != nil {
			return err
		}
		if err := s.ledger.Close(p.StakingVault, signer); err != nil {
			return err
		}
		if err := s.ledger.Close(p.RewardVault, signer); err != nil {
			return err
		}
		s.pools.Delete(poolID)
		return nil
	})
	if err != nil {
		logger.Info("close pool failed", "pool", poolID, "error", err)
		return 0, err
	}

	logger.Info("closed pool", "pool", poolID, "refunded", refunded)
	return refunded, nil
}

func inc(x, y uint64) (uint64, error) {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		return 0, reverts.ErrOverflow
	}
	return sum, nil
}
