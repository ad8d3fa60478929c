// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/thor"
)

// Position is the stake of one owner in one pool.
type Position struct {
	Pool  thor.Address // back reference, never owns the pool
	Owner thor.Address

	RewardPerTokenCheckpoint *uint256.Int // accumulator value at the last reconcile
	PendingReward            uint64
	BalanceStaked            uint64
	MaturityTime             uint64 // unix time before which unstake and claim are rejected
}

// ID derives the record id of the position of owner in pool.
func ID(owner, pool thor.Address) thor.Address {
	return thor.DeriveAddress(owner.Bytes(), pool.Bytes())
}

// Checkpoint returns the stored checkpoint, never nil.
func (p *Position) Checkpoint() *uint256.Int {
	if p.RewardPerTokenCheckpoint == nil {
		return new(uint256.Int)
	}
	return p.RewardPerTokenCheckpoint
}

// IsEmpty reports whether nothing is staked or owed, so the position may be closed.
func (p *Position) IsEmpty() bool {
	return p.BalanceStaked == 0 && p.PendingReward == 0
}

// Matured reports whether withdrawals are allowed at now.
func (p *Position) Matured(now uint64) bool {
	return now >= p.MaturityTime
}
