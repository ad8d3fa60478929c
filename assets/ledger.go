// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package assets is a token account ledger kept in the same state as the pool records,
// so a transfer is committed or reverted together with the operation issuing it.
package assets

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	ErrAccountNotFound   = errors.New("token account not found")
	ErrAccountExists     = errors.New("token account already exists")
	ErrAccountNotEmpty   = errors.New("token account not empty")
	ErrAssetMismatch     = errors.New("token accounts hold different assets")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotOwner          = errors.New("authorizer does not own the token account")
	ErrBalanceOverflow   = errors.New("balance overflow")
)

var slotAccounts = thor.BytesToBytes32([]byte("token-accounts"))

// Account holds Amount units of Asset on behalf of Owner.
type Account struct {
	Asset  thor.Address
	Owner  thor.Address
	Amount uint64
}

type Ledger struct {
	accounts *state.Mapping[thor.Address, *Account]
}

func New(st *state.State) *Ledger {
	return &Ledger{
		accounts: state.NewMapping[thor.Address, *Account](st, slotAccounts),
	}
}

// Account returns the token account id.
func (l *Ledger) Account(id thor.Address) (*Account, error) {
	exists, err := l.accounts.Exists(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token account")
	}
	if !exists {
		return nil, errors.Wrapf(ErrAccountNotFound, "account %v", id)
	}
	acc, err := l.accounts.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token account")
	}
	return acc, nil
}

func (l *Ledger) Balance(id thor.Address) (uint64, error) {
	acc, err := l.Account(id)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

// CreateAccount opens an empty account of asset owned by owner.
func (l *Ledger) CreateAccount(id, asset, owner thor.Address) error {
	exists, err := l.accounts.Exists(id)
	if err != nil {
		return errors.Wrap(err, "failed to get token account")
	}
	if exists {
		return errors.Wrapf(ErrAccountExists, "account %v", id)
	}
	return l.set(id, &Account{Asset: asset, Owner: owner})
}

// Mint credits amount to id out of thin air.
func (l *Ledger) Mint(id thor.Address, amount uint64) error {
	acc, err := l.Account(id)
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(acc.Amount, amount, 0)
	if carry != 0 {
		return ErrBalanceOverflow
	}
	acc.Amount = sum
	return l.set(id, acc)
}

// Transfer moves amount from one account to another. authorizer must own from.
func (l *Ledger) Transfer(from, to thor.Address, amount uint64, authorizer thor.Address) error {
	src, err := l.Account(from)
	if err != nil {
		return err
	}
	dst, err := l.Account(to)
	if err != nil {
		return err
	}
	if src.Owner != authorizer {
		return errors.Wrapf(ErrNotOwner, "account %v", from)
	}
	if src.Asset != dst.Asset {
		return ErrAssetMismatch
	}
	if src.Amount < amount {
		return errors.Wrapf(ErrInsufficientFunds, "account %v has %d, need %d", from, src.Amount, amount)
	}
	if from == to {
		return nil
	}
	sum, carry := bits.Add64(dst.Amount, amount, 0)
	if carry != 0 {
		return ErrBalanceOverflow
	}
	src.Amount -= amount
	dst.Amount = sum

	if err := l.set(from, src); err != nil {
		return err
	}
	return l.set(to, dst)
}

// Close releases an empty account.
func (l *Ledger) Close(id, authorizer thor.Address) error {
	acc, err := l.Account(id)
	if err != nil {
		return err
	}
	if acc.Owner != authorizer {
		return errors.Wrapf(ErrNotOwner, "account %v", id)
	}
	if acc.Amount != 0 {
		return errors.Wrapf(ErrAccountNotEmpty, "account %v", id)
	}
	l.accounts.Delete(id)
	return nil
}

func (l *Ledger) set(id thor.Address, acc *Account) error {
	if err := l.accounts.Set(id, acc); err != nil {
		return errors.Wrap(err, "failed to set token account")
	}
	return nil
}
