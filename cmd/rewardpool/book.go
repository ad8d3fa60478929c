// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/rewardpool/rewardpool"
	"github.com/vechain/rewardpool/rewardpool/pool"
	"github.com/vechain/rewardpool/thor"
)

// defaultRewardDuration is one week.
const defaultRewardDuration = 3600 * 24 * 7

// PoolEntry is one pool of the book. Missing ids are derived on creation and written back.
type PoolEntry struct {
	Name           string       `yaml:"name"`
	ID             thor.Address `yaml:"id,omitempty"`
	Authority      thor.Address `yaml:"authority"`
	Nonce          uint8        `yaml:"nonce"`
	Signer         thor.Address `yaml:"signer,omitempty"`
	StakingAsset   thor.Address `yaml:"stakingAsset"`
	StakingVault   thor.Address `yaml:"stakingVault,omitempty"`
	RewardAsset    thor.Address `yaml:"rewardAsset"`
	RewardVault    thor.Address `yaml:"rewardVault,omitempty"`
	RewardDuration uint64       `yaml:"rewardDuration,omitempty"`
	LockPeriod     uint64       `yaml:"lockPeriod"`
}

// Book lists the pools an operator administers.
type Book struct {
	Pools []*PoolEntry `yaml:"pools"`
}

func loadBook(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read pool book")
	}
	var book Book
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, errors.Wrapf(err, "parse pool book %s", path)
	}
	seen := make(map[string]bool, len(book.Pools))
	for _, e := range book.Pools {
		if e.Name == "" {
			return nil, errors.New("pool book: entry without name")
		}
		if seen[e.Name] {
			return nil, errors.Errorf("pool book: duplicate pool %q", e.Name)
		}
		seen[e.Name] = true
	}
	return &book, nil
}

func (b *Book) save(path string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return errors.Wrap(err, "encode pool book")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o600), "write pool book")
}

func (b *Book) find(name string) (*PoolEntry, error) {
	for _, e := range b.Pools {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, errors.Errorf("pool %q not in book", name)
}

// complete derives the fields left blank: the pool id, both vaults, the custody signer
// and the reward duration.
func (e *PoolEntry) complete() {
	if e.ID.IsZero() {
		e.ID = thor.DeriveAddress(e.Authority.Bytes(), []byte(e.Name))
	}
	if e.StakingVault.IsZero() {
		e.StakingVault = thor.DeriveAddress(e.ID.Bytes(), []byte("staking-vault"))
	}
	if e.RewardVault.IsZero() {
		e.RewardVault = thor.DeriveAddress(e.ID.Bytes(), []byte("reward-vault"))
	}
	if e.RewardDuration == 0 {
		e.RewardDuration = defaultRewardDuration
	}
	e.Signer = pool.Signer(e.ID, e.Nonce)
}

func (e *PoolEntry) params() rewardpool.PoolParams {
	return rewardpool.PoolParams{
		ID:             e.ID,
		Authority:      e.Authority,
		Nonce:          e.Nonce,
		StakingAsset:   e.StakingAsset,
		StakingVault:   e.StakingVault,
		RewardAsset:    e.RewardAsset,
		RewardVault:    e.RewardVault,
		RewardDuration: e.RewardDuration,
		LockPeriod:     e.LockPeriod,
	}
}
