// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package assets

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
	gold  = thor.BytesToAddress([]byte("gold"))
	iron  = thor.BytesToAddress([]byte("iron"))

	aliceGold = thor.BytesToAddress([]byte("alice-gold"))
	bobGold   = thor.BytesToAddress([]byte("bob-gold"))
	bobIron   = thor.BytesToAddress([]byte("bob-iron"))
)

func newLedger(t *testing.T) (*Ledger, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater, err := state.NewStater(db, 0)
	require.NoError(t, err)
	st := stater.NewState()

	l := New(st)
	require.NoError(t, l.CreateAccount(aliceGold, gold, alice))
	require.NoError(t, l.CreateAccount(bobGold, gold, bob))
	require.NoError(t, l.CreateAccount(bobIron, iron, bob))
	return l, st
}

func TestCreateAndMint(t *testing.T) {
	l, _ := newLedger(t)

	assert.ErrorIs(t, l.CreateAccount(aliceGold, gold, alice), ErrAccountExists)

	require.NoError(t, l.Mint(aliceGold, 100))
	balance, err := l.Balance(aliceGold)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)

	assert.ErrorIs(t, l.Mint(aliceGold, math.MaxUint64), ErrBalanceOverflow)
	assert.ErrorIs(t, l.Mint(thor.BytesToAddress([]byte("nobody")), 1), ErrAccountNotFound)
}

func TestTransfer(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.Mint(aliceGold, 100))

	require.NoError(t, l.Transfer(aliceGold, bobGold, 40, alice))

	a, _ := l.Balance(aliceGold)
	b, _ := l.Balance(bobGold)
	assert.Equal(t, uint64(60), a)
	assert.Equal(t, uint64(40), b)

	assert.ErrorIs(t, l.Transfer(aliceGold, bobGold, 1, bob), ErrNotOwner)
	assert.ErrorIs(t, l.Transfer(aliceGold, bobGold, 61, alice), ErrInsufficientFunds)
	assert.ErrorIs(t, l.Transfer(bobGold, bobIron, 1, bob), ErrAssetMismatch)

	// zero and self transfers are accepted without effect
	require.NoError(t, l.Transfer(aliceGold, bobGold, 0, alice))
	require.NoError(t, l.Transfer(aliceGold, aliceGold, 60, alice))
	a, _ = l.Balance(aliceGold)
	assert.Equal(t, uint64(60), a)
}

func TestTransferReverted(t *testing.T) {
	l, st := newLedger(t)
	require.NoError(t, l.Mint(aliceGold, 100))

	chk := st.NewCheckpoint()
	require.NoError(t, l.Transfer(aliceGold, bobGold, 100, alice))
	st.RevertTo(chk)

	a, _ := l.Balance(aliceGold)
	b, _ := l.Balance(bobGold)
	assert.Equal(t, uint64(100), a)
	assert.Equal(t, uint64(0), b)
}

func TestClose(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.Mint(aliceGold, 1))

	assert.ErrorIs(t, l.Close(aliceGold, alice), ErrAccountNotEmpty)
	assert.ErrorIs(t, l.Close(bobGold, alice), ErrNotOwner)

	require.NoError(t, l.Close(bobGold, bob))
	_, err := l.Account(bobGold)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
