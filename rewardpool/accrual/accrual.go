// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual holds the reward math. Accumulator values are unsigned 128-bit
// fixed-point numbers scaled by Precision; every intermediate is checked against that width.
package accrual

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/rewardpool/reverts"
)

// MinDuration is the shortest reward window a pool may be created with, in seconds.
const MinDuration uint64 = 86400

// Precision scales the reward per token accumulator.
var Precision = uint256.NewInt(math.MaxUint64)

const maxBits = 128

func fits(z *uint256.Int) bool {
	return z.BitLen() <= maxBits
}

func mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow || !fits(z) {
		return nil, reverts.ErrOverflow
	}
	return z, nil
}

func add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow || !fits(z) {
		return nil, reverts.ErrOverflow
	}
	return z, nil
}

func sub(x, y *uint256.Int) (*uint256.Int, error) {
	if x.Lt(y) {
		return nil, reverts.ErrOverflow
	}
	return new(uint256.Int).Sub(x, y), nil
}

// TimeApplicable caps accrual at the end of the reward window.
func TimeApplicable(durationEnd, now uint64) uint64 {
	return min(now, durationEnd)
}

// RewardPerToken advances the accumulator over [lastUpdate, applicable].
// Nothing accrues while nobody is staked; that slice of the window is forfeited.
func RewardPerToken(stored *uint256.Int, rate, totalStaked, lastUpdate, applicable uint64) (*uint256.Int, error) {
	if stored == nil {
		stored = new(uint256.Int)
	}
	if totalStaked == 0 {
		return stored.Clone(), nil
	}
	if applicable < lastUpdate {
		return nil, reverts.ErrOverflow
	}

	delta, err := mul(uint256.NewInt(applicable-lastUpdate), uint256.NewInt(rate))
	if err != nil {
		return nil, err
	}
	if delta, err = mul(delta, Precision); err != nil {
		return nil, err
	}
	delta.Div(delta, uint256.NewInt(totalStaked))

	return add(stored, delta)
}

// Earned returns the pending reward of a balance after moving its checkpoint to accumulator.
// The fractional remainder of the division is dropped.
func Earned(balance uint64, accumulator, checkpoint *uint256.Int, pending uint64) (uint64, error) {
	if accumulator == nil {
		accumulator = new(uint256.Int)
	}
	if checkpoint == nil {
		checkpoint = new(uint256.Int)
	}
	diff, err := sub(accumulator, checkpoint)
	if err != nil {
		return 0, err
	}
	reward, err := mul(uint256.NewInt(balance), diff)
	if err != nil {
		return 0, err
	}
	reward.Div(reward, Precision)
	if reward, err = add(reward, uint256.NewInt(pending)); err != nil {
		return 0, err
	}
	if !reward.IsUint64() {
		return 0, reverts.ErrOverflow
	}
	return reward.Uint64(), nil
}
