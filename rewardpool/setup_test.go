// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewardpool

import (
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/rewardpool/accrual"
	"github.com/vechain/rewardpool/rewardpool/pool"
	"github.com/vechain/rewardpool/thor"
)

const (
	t0        = uint64(1_700_000_000)
	day       = accrual.MinDuration
	testNonce = uint8(7)
)

var (
	authority = thor.BytesToAddress([]byte("authority"))
	alice     = thor.BytesToAddress([]byte("alice"))
	bob       = thor.BytesToAddress([]byte("bob"))
	carol     = thor.BytesToAddress([]byte("carol"))

	poolID      = thor.BytesToAddress([]byte("pool"))
	stakeAsset  = thor.BytesToAddress([]byte("stake-asset"))
	rewardAsset = thor.BytesToAddress([]byte("reward-asset"))
	stakeVault  = thor.BytesToAddress([]byte("stake-vault"))
	rewardVault = thor.BytesToAddress([]byte("reward-vault"))
)

func stakeAccount(owner thor.Address) thor.Address {
	return thor.DeriveAddress(owner.Bytes(), stakeAsset.Bytes())
}

func rewardAccount(owner thor.Address) thor.Address {
	return thor.DeriveAddress(owner.Bytes(), rewardAsset.Bytes())
}

func precisionTimes(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(accrual.Precision, uint256.NewInt(n))
}

type testEnv struct {
	engine *Engine
	clock  *clock.Mock
	db     *lvldb.LevelDB
}

func newTestEnv(t *testing.T, lockPeriod uint64) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewMock(t0)
	engine, err := New(db, clk, 0)
	require.NoError(t, err)

	signer := pool.Signer(poolID, testNonce)
	require.NoError(t, engine.CreateAccount(stakeVault, stakeAsset, signer))
	require.NoError(t, engine.CreateAccount(rewardVault, rewardAsset, signer))

	for _, who := range []thor.Address{authority, alice, bob, carol} {
		require.NoError(t, engine.CreateAccount(stakeAccount(who), stakeAsset, who))
		require.NoError(t, engine.CreateAccount(rewardAccount(who), rewardAsset, who))
	}
	require.NoError(t, engine.Mint(stakeAccount(alice), 1000))
	require.NoError(t, engine.Mint(stakeAccount(bob), 1000))
	require.NoError(t, engine.Mint(rewardAccount(authority), 10_000_000))
	require.NoError(t, engine.Mint(rewardAccount(carol), 10_000_000))

	require.NoError(t, engine.CreatePool(PoolParams{
		ID:             poolID,
		Authority:      authority,
		Nonce:          testNonce,
		StakingAsset:   stakeAsset,
		StakingVault:   stakeVault,
		RewardAsset:    rewardAsset,
		RewardVault:    rewardVault,
		RewardDuration: day,
		LockPeriod:     lockPeriod,
	}))

	return &testEnv{engine: engine, clock: clk, db: db}
}

func (env *testEnv) balance(t *testing.T, id thor.Address) uint64 {
	acc, err := env.engine.Account(id)
	require.NoError(t, err)
	return acc.Amount
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), env: env}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) CreatePosition(owner thor.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.engine.CreatePosition(owner, poolID); err != nil {
			t.Fatalf("failed to create position for %s: %v", owner, err)
		}
	})
}

func (st *TestSequence) Stake(owner thor.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.engine.Stake(owner, poolID, stakeAccount(owner), amount); err != nil {
			t.Fatalf("failed to stake %d for %s: %v", amount, owner, err)
		}
		t.Logf("staked %d for %s", amount, owner)
	})
}

func (st *TestSequence) Unstake(owner thor.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.engine.Unstake(owner, poolID, stakeAccount(owner), amount); err != nil {
			t.Fatalf("failed to unstake %d for %s: %v", amount, owner, err)
		}
		t.Logf("unstaked %d for %s", amount, owner)
	})
}

func (st *TestSequence) Claim(owner thor.Address, expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		paid, err := st.env.engine.Claim(owner, poolID, rewardAccount(owner))
		if err != nil {
			t.Fatalf("failed to claim for %s: %v", owner, err)
		}
		assert.Equal(t, expected, paid, "claim payout mismatch for %s", owner)
	})
}

func (st *TestSequence) Fund(funder thor.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.engine.Fund(funder, poolID, rewardAccount(funder), amount); err != nil {
			t.Fatalf("failed to fund %d by %s: %v", amount, funder, err)
		}
		t.Logf("funded %d by %s", amount, funder)
	})
}

func (st *TestSequence) Advance(seconds uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.env.clock.Advance(seconds)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}

type PositionAssertions struct {
	env   *testEnv
	owner thor.Address

	pending  *uint64
	balance  *uint64
	earned   *uint64
	maturity *uint64
}

func AssertPosition(env *testEnv, owner thor.Address) *PositionAssertions {
	return &PositionAssertions{env: env, owner: owner}
}

func (pa *PositionAssertions) Pending(expected uint64) *PositionAssertions {
	pa.pending = &expected
	return pa
}

func (pa *PositionAssertions) Balance(expected uint64) *PositionAssertions {
	pa.balance = &expected
	return pa
}

func (pa *PositionAssertions) Earned(expected uint64) *PositionAssertions {
	pa.earned = &expected
	return pa
}

func (pa *PositionAssertions) Maturity(expected uint64) *PositionAssertions {
	pa.maturity = &expected
	return pa
}

func (pa *PositionAssertions) Assert(t *testing.T) {
	pos, err := pa.env.engine.Position(pa.owner, poolID)
	require.NoError(t, err, "failed to get position of %s", pa.owner)

	if pa.pending != nil {
		assert.Equal(t, *pa.pending, pos.PendingReward, "position %s pending mismatch", pa.owner)
	}
	if pa.balance != nil {
		assert.Equal(t, *pa.balance, pos.BalanceStaked, "position %s balance mismatch", pa.owner)
	}
	if pa.maturity != nil {
		assert.Equal(t, *pa.maturity, pos.MaturityTime, "position %s maturity mismatch", pa.owner)
	}
	if pa.earned != nil {
		earned, err := pa.env.engine.PreviewEarned(pa.owner, poolID)
		require.NoError(t, err)
		assert.Equal(t, *pa.earned, earned, "position %s earned mismatch", pa.owner)
	}
}

type PoolAssertions struct {
	env *testEnv

	rate        *uint64
	accumulator *uint256.Int
	lastUpdate  *uint64
	durationEnd *uint64
	positions   *uint64
}

func AssertPool(env *testEnv) *PoolAssertions {
	return &PoolAssertions{env: env}
}

func (pa *PoolAssertions) Rate(expected uint64) *PoolAssertions {
	pa.rate = &expected
	return pa
}

func (pa *PoolAssertions) Accumulator(expected *uint256.Int) *PoolAssertions {
	pa.accumulator = expected
	return pa
}

func (pa *PoolAssertions) LastUpdate(expected uint64) *PoolAssertions {
	pa.lastUpdate = &expected
	return pa
}

func (pa *PoolAssertions) DurationEnd(expected uint64) *PoolAssertions {
	pa.durationEnd = &expected
	return pa
}

func (pa *PoolAssertions) Positions(expected uint64) *PoolAssertions {
	pa.positions = &expected
	return pa
}

func (pa *PoolAssertions) Assert(t *testing.T) {
	p, err := pa.env.engine.Pool(poolID)
	require.NoError(t, err, "failed to get pool")

	if pa.rate != nil {
		assert.Equal(t, *pa.rate, p.RewardRate, "pool rate mismatch")
	}
	if pa.accumulator != nil {
		assert.Equal(t, pa.accumulator, p.Accumulator(), "pool accumulator mismatch")
	}
	if pa.lastUpdate != nil {
		assert.Equal(t, *pa.lastUpdate, p.LastUpdateTime, "pool last update mismatch")
	}
	if pa.durationEnd != nil {
		assert.Equal(t, *pa.durationEnd, p.RewardDurationEnd, "pool duration end mismatch")
	}
	if pa.positions != nil {
		assert.Equal(t, *pa.positions, p.UserPositionCount, "pool position count mismatch")
	}
}
