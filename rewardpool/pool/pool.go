// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/rewardpool/funders"
	"github.com/vechain/rewardpool/thor"
)

// Pool is the record of one staking program instance.
type Pool struct {
	Authority thor.Address // permanently privileged to administer the pool
	Nonce     uint8        // seed of the vault custody signer
	Paused    bool

	StakingAsset thor.Address
	StakingVault thor.Address
	RewardAsset  thor.Address
	RewardVault  thor.Address

	RewardDuration    uint64 // length of a reward window in seconds
	RewardDurationEnd uint64 // unix time the current window ends
	LockPeriod        uint64 // seconds a stake stays locked
	LastUpdateTime    uint64 // unix time of the last accrual checkpoint
	RewardRate        uint64 // reward units distributed per second

	RewardPerTokenStored *uint256.Int // accumulator scaled by accrual.Precision
	UserPositionCount    uint64

	Funders funders.Funders
}

// Signer returns the principal custodying the vaults of pool id.
func Signer(id thor.Address, nonce uint8) thor.Address {
	return thor.DeriveAddress(id.Bytes(), []byte{nonce})
}

// Accumulator returns the stored accumulator, never nil.
func (p *Pool) Accumulator() *uint256.Int {
	if p.RewardPerTokenStored == nil {
		return new(uint256.Int)
	}
	return p.RewardPerTokenStored
}

// IsFunder reports whether addr may fund the pool.
func (p *Pool) IsFunder(addr thor.Address) bool {
	return p.Funders.IsAllowed(p.Authority, addr)
}

// WindowElapsed reports whether the reward window has ended strictly before now.
func (p *Pool) WindowElapsed(now uint64) bool {
	return p.RewardDurationEnd < now
}

// Closable reports whether the pool record may be released, given the balance of its staking vault.
func (p *Pool) Closable(now, totalStaked uint64) bool {
	return p.Paused &&
		p.RewardDurationEnd > 0 &&
		p.WindowElapsed(now) &&
		p.UserPositionCount == 0 &&
		totalStaked == 0
}
