// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/rewardpool"
	"github.com/vechain/rewardpool/rewardpool/pool"
	"github.com/vechain/rewardpool/thor"
)

const sampleBook = `
pools:
  - name: sixty-days
    authority: 0x00000000000000000000000000000000000000aa
    nonce: 254
    stakingAsset: 0x00000000000000000000000000000000000000c1
    rewardAsset: 0x00000000000000000000000000000000000000c1
    lockPeriod: 5184000
  - name: no-lock
    id: 0x0000000000000000000000000000000000000001
    authority: 0x00000000000000000000000000000000000000aa
    nonce: 1
    stakingAsset: 0x00000000000000000000000000000000000000c1
    stakingVault: 0x0000000000000000000000000000000000000011
    rewardAsset: 0x00000000000000000000000000000000000000c2
    rewardVault: 0x0000000000000000000000000000000000000012
    rewardDuration: 86400
    lockPeriod: 0
`

func writeBook(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBook(t *testing.T) {
	book, err := loadBook(writeBook(t, sampleBook))
	require.NoError(t, err)
	require.Len(t, book.Pools, 2)

	e, err := book.find("no-lock")
	require.NoError(t, err)
	assert.Equal(t, thor.MustParseAddress("0x0000000000000000000000000000000000000001"), e.ID)
	assert.Equal(t, uint8(1), e.Nonce)
	assert.Equal(t, uint64(86400), e.RewardDuration)

	_, err = book.find("missing")
	assert.Error(t, err)
}

func TestLoadBookRejectsDuplicates(t *testing.T) {
	_, err := loadBook(writeBook(t, "pools:\n  - name: a\n  - name: a\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = loadBook(writeBook(t, "pools:\n  - lockPeriod: 1\n"))
	assert.ErrorContains(t, err, "without name")

	_, err = loadBook(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestCompleteAndSave(t *testing.T) {
	path := writeBook(t, sampleBook)
	book, err := loadBook(path)
	require.NoError(t, err)

	e, err := book.find("sixty-days")
	require.NoError(t, err)
	e.complete()

	assert.False(t, e.ID.IsZero())
	assert.Equal(t, thor.DeriveAddress(e.Authority.Bytes(), []byte("sixty-days")), e.ID)
	assert.Equal(t, pool.Signer(e.ID, 254), e.Signer)
	assert.NotEqual(t, e.StakingVault, e.RewardVault)
	assert.Equal(t, uint64(defaultRewardDuration), e.RewardDuration)
	require.NoError(t, book.save(path))

	reloaded, err := loadBook(path)
	require.NoError(t, err)
	again, err := reloaded.find("sixty-days")
	require.NoError(t, err)
	assert.Equal(t, e, again)
}

func TestBookEntryCreatesPool(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	engine, err := rewardpool.New(db, clock.NewMock(1_700_000_000), 0)
	require.NoError(t, err)

	book, err := loadBook(writeBook(t, sampleBook))
	require.NoError(t, err)
	e, err := book.find("sixty-days")
	require.NoError(t, err)
	e.complete()

	require.NoError(t, ensureAccount(engine, e.StakingVault, e.StakingAsset, e.Signer))
	require.NoError(t, ensureAccount(engine, e.RewardVault, e.RewardAsset, e.Signer))
	// idempotent for a matching account
	require.NoError(t, ensureAccount(engine, e.RewardVault, e.RewardAsset, e.Signer))
	assert.Error(t, ensureAccount(engine, e.RewardVault, e.RewardAsset, e.Authority))

	require.NoError(t, engine.CreatePool(e.params()))

	p, err := engine.Pool(e.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(5184000), p.LockPeriod)
	assert.Equal(t, e.Authority, p.Authority)

	signer, err := engine.PoolSigner(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Signer, signer)
}

func TestReadIntFromUInt64Flag(t *testing.T) {
	v, err := readIntFromUInt64Flag(3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = readIntFromUInt64Flag(^uint64(0))
	assert.Error(t, err)
}
