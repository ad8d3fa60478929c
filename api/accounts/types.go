// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rewardpool/thor"
)

type Account struct {
	ID     thor.Address        `json:"id"`
	Asset  thor.Address        `json:"asset"`
	Owner  thor.Address        `json:"owner"`
	Amount math.HexOrDecimal64 `json:"amount"`
}

type CreateAccount struct {
	ID    thor.Address `json:"id"`
	Asset thor.Address `json:"asset"`
	Owner thor.Address `json:"owner"`
}

type Mint struct {
	Amount math.HexOrDecimal64 `json:"amount"`
}
