// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"math/bits"

	"github.com/vechain/rewardpool/rewardpool/reverts"
)

// Window is the outcome of a funding call.
type Window struct {
	Rate           uint64
	LastUpdateTime uint64
	DurationEnd    uint64
}

// NextWindow computes the rate of a fresh window starting at now. Reward left undistributed
// by a window still running is carried into the new rate. Rates are floor divided.
func NextWindow(amount, duration, durationEnd, oldRate, now uint64) (Window, error) {
	if duration == 0 {
		return Window{}, reverts.ErrDurationTooShort
	}

	var rate uint64
	if now >= durationEnd {
		rate = amount / duration
	} else {
		hi, leftover := bits.Mul64(durationEnd-now, oldRate)
		if hi != 0 {
			return Window{}, reverts.ErrOverflow
		}
		total, carry := bits.Add64(amount, leftover, 0)
		if carry != 0 {
			return Window{}, reverts.ErrOverflow
		}
		rate = total / duration
	}

	end, carry := bits.Add64(now, duration, 0)
	if carry != 0 {
		return Window{}, reverts.ErrOverflow
	}
	return Window{Rate: rate, LastUpdateTime: now, DurationEnd: end}, nil
}
