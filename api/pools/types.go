// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/rewardpool"
	"github.com/vechain/rewardpool/rewardpool/pool"
	"github.com/vechain/rewardpool/rewardpool/position"
	"github.com/vechain/rewardpool/thor"
)

type CreatePool struct {
	ID             thor.Address        `json:"id"`
	Authority      thor.Address        `json:"authority"`
	Nonce          uint8               `json:"nonce"`
	StakingAsset   thor.Address        `json:"stakingAsset"`
	StakingVault   thor.Address        `json:"stakingVault"`
	RewardAsset    thor.Address        `json:"rewardAsset"`
	RewardVault    thor.Address        `json:"rewardVault"`
	RewardDuration math.HexOrDecimal64 `json:"rewardDuration"`
	LockPeriod     math.HexOrDecimal64 `json:"lockPeriod"`
}

func (c *CreatePool) params() rewardpool.PoolParams {
	return rewardpool.PoolParams{
		ID:             c.ID,
		Authority:      c.Authority,
		Nonce:          c.Nonce,
		StakingAsset:   c.StakingAsset,
		StakingVault:   c.StakingVault,
		RewardAsset:    c.RewardAsset,
		RewardVault:    c.RewardVault,
		RewardDuration: uint64(c.RewardDuration),
		LockPeriod:     uint64(c.LockPeriod),
	}
}

type Pool struct {
	ID                   thor.Address          `json:"id"`
	Signer               thor.Address          `json:"signer"`
	Authority            thor.Address          `json:"authority"`
	Nonce                uint8                 `json:"nonce"`
	Paused               bool                  `json:"paused"`
	StakingAsset         thor.Address          `json:"stakingAsset"`
	StakingVault         thor.Address          `json:"stakingVault"`
	RewardAsset          thor.Address          `json:"rewardAsset"`
	RewardVault          thor.Address          `json:"rewardVault"`
	RewardDuration       math.HexOrDecimal64   `json:"rewardDuration"`
	RewardDurationEnd    math.HexOrDecimal64   `json:"rewardDurationEnd"`
	LockPeriod           math.HexOrDecimal64   `json:"lockPeriod"`
	LastUpdateTime       math.HexOrDecimal64   `json:"lastUpdateTime"`
	RewardRate           math.HexOrDecimal64   `json:"rewardRate"`
	RewardPerTokenStored *math.HexOrDecimal256 `json:"rewardPerTokenStored"`
	UserPositionCount    uint64                `json:"userPositionCount"`
	Funders              []thor.Address        `json:"funders"`
	TotalStaked          math.HexOrDecimal64   `json:"totalStaked"`
}

func ConvertPool(id thor.Address, p *pool.Pool, totalStaked uint64) *Pool {
	return &Pool{
		ID:                   id,
		Signer:               pool.Signer(id, p.Nonce),
		Authority:            p.Authority,
		Nonce:                p.Nonce,
		Paused:               p.Paused,
		StakingAsset:         p.StakingAsset,
		StakingVault:         p.StakingVault,
		RewardAsset:          p.RewardAsset,
		RewardVault:          p.RewardVault,
		RewardDuration:       math.HexOrDecimal64(p.RewardDuration),
		RewardDurationEnd:    math.HexOrDecimal64(p.RewardDurationEnd),
		LockPeriod:           math.HexOrDecimal64(p.LockPeriod),
		LastUpdateTime:       math.HexOrDecimal64(p.LastUpdateTime),
		RewardRate:           math.HexOrDecimal64(p.RewardRate),
		RewardPerTokenStored: toHexOrDecimal256(p.Accumulator()),
		UserPositionCount:    p.UserPositionCount,
		Funders:              p.Funders.List(),
		TotalStaked:          math.HexOrDecimal64(totalStaked),
	}
}

type Position struct {
	ID                       thor.Address          `json:"id"`
	Pool                     thor.Address          `json:"pool"`
	Owner                    thor.Address          `json:"owner"`
	RewardPerTokenCheckpoint *math.HexOrDecimal256 `json:"rewardPerTokenCheckpoint"`
	PendingReward            math.HexOrDecimal64   `json:"pendingReward"`
	BalanceStaked            math.HexOrDecimal64   `json:"balanceStaked"`
	MaturityTime             math.HexOrDecimal64   `json:"maturityTime"`
	Earned                   math.HexOrDecimal64   `json:"earned"`
}

func ConvertPosition(pos *position.Position, earned uint64) *Position {
	return &Position{
		ID:                       position.ID(pos.Owner, pos.Pool),
		Pool:                     pos.Pool,
		Owner:                    pos.Owner,
		RewardPerTokenCheckpoint: toHexOrDecimal256(pos.Checkpoint()),
		PendingReward:            math.HexOrDecimal64(pos.PendingReward),
		BalanceStaked:            math.HexOrDecimal64(pos.BalanceStaked),
		MaturityTime:             math.HexOrDecimal64(pos.MaturityTime),
		Earned:                   math.HexOrDecimal64(earned),
	}
}

func toHexOrDecimal256(v *uint256.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v.ToBig())
}

type CreatePosition struct {
	Owner thor.Address `json:"owner"`
}

type Stake struct {
	From   thor.Address        `json:"from"`
	Amount math.HexOrDecimal64 `json:"amount"`
}

type Unstake struct {
	To     thor.Address        `json:"to"`
	Amount math.HexOrDecimal64 `json:"amount"`
}

type Claim struct {
	To thor.Address `json:"to"`
}

type ClaimResult struct {
	Paid math.HexOrDecimal64 `json:"paid"`
}

type Fund struct {
	Funder thor.Address        `json:"funder"`
	From   thor.Address        `json:"from"`
	Amount math.HexOrDecimal64 `json:"amount"`
}

type Funder struct {
	Caller thor.Address `json:"caller"`
	Funder thor.Address `json:"funder"`
}

// Admin is the body of pause and unpause.
type Admin struct {
	Caller thor.Address `json:"caller"`
}

type ClosePool struct {
	Caller          thor.Address `json:"caller"`
	StakingRefundee thor.Address `json:"stakingRefundee"`
	RewardRefundee  thor.Address `json:"rewardRefundee"`
}

type ClosePoolResult struct {
	Refunded math.HexOrDecimal64 `json:"refunded"`
}
