// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/api/pools"
	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/rewardpool"
	"github.com/vechain/rewardpool/rewardpool/pool"
	"github.com/vechain/rewardpool/thor"
)

const (
	t0    = uint64(1_700_000_000)
	nonce = uint8(3)
)

var (
	authority   = thor.BytesToAddress([]byte("authority"))
	alice       = thor.BytesToAddress([]byte("alice"))
	bob         = thor.BytesToAddress([]byte("bob"))
	poolID      = thor.BytesToAddress([]byte("pool"))
	stakeAsset  = thor.BytesToAddress([]byte("stake-asset"))
	rewardAsset = thor.BytesToAddress([]byte("reward-asset"))
	stakeVault  = thor.BytesToAddress([]byte("stake-vault"))
	rewardVault = thor.BytesToAddress([]byte("reward-vault"))
	aliceStake  = thor.BytesToAddress([]byte("alice-stake"))
	aliceReward = thor.BytesToAddress([]byte("alice-reward"))
	funding     = thor.BytesToAddress([]byte("authority-reward"))
)

type testServer struct {
	*httptest.Server
	clock *clock.Mock
}

func initPoolsServer(t *testing.T) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewMock(t0)
	engine, err := rewardpool.New(db, clk, 0)
	require.NoError(t, err)

	signer := pool.Signer(poolID, nonce)
	require.NoError(t, engine.CreateAccount(stakeVault, stakeAsset, signer))
	require.NoError(t, engine.CreateAccount(rewardVault, rewardAsset, signer))
	require.NoError(t, engine.CreateAccount(aliceStake, stakeAsset, alice))
	require.NoError(t, engine.CreateAccount(aliceReward, rewardAsset, alice))
	require.NoError(t, engine.CreateAccount(funding, rewardAsset, authority))
	require.NoError(t, engine.Mint(aliceStake, 1000))
	require.NoError(t, engine.Mint(funding, 1_000_000))

	router := mux.NewRouter()
	pools.New(engine).Mount(router, "/pools")

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, clock: clk}
}

func (ts *testServer) post(t *testing.T, path string, body any) (int, []byte) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(ts.URL+path, utils.JSONContentType, bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, out
}

func (ts *testServer) get(t *testing.T, path string) (int, []byte) {
	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, out
}

func createPoolBody() utils.M {
	return utils.M{
		"id":             poolID,
		"authority":      authority,
		"nonce":          nonce,
		"stakingAsset":   stakeAsset,
		"stakingVault":   stakeVault,
		"rewardAsset":    rewardAsset,
		"rewardVault":    rewardVault,
		"rewardDuration": 86400,
		"lockPeriod":     0,
	}
}

func poolPath(suffix string) string {
	return "/pools/" + poolID.String() + suffix
}

func positionPath(suffix string) string {
	return poolPath("/positions/" + alice.String() + suffix)
}

func TestPools(t *testing.T) {
	ts := initPoolsServer(t)

	// subtests share one server and run in order
	t.Run("createPool", func(t *testing.T) { testCreatePool(t, ts) })
	t.Run("badRequests", func(t *testing.T) { testBadRequests(t, ts) })
	t.Run("unknownPosition", func(t *testing.T) { testUnknownPosition(t, ts) })
	t.Run("stakeFundClaim", func(t *testing.T) { testStakeFundClaim(t, ts) })
	t.Run("authorization", func(t *testing.T) { testAuthorization(t, ts) })
	t.Run("pauseAndClose", func(t *testing.T) { testPauseAndClose(t, ts) })
}

func decodePool(t *testing.T, body []byte) *pools.Pool {
	var p pools.Pool
	require.NoError(t, json.Unmarshal(body, &p), string(body))
	return &p
}

func decodePosition(t *testing.T, body []byte) *pools.Position {
	var p pools.Position
	require.NoError(t, json.Unmarshal(body, &p), string(body))
	return &p
}

func testCreatePool(t *testing.T, ts *testServer) {
	code, body := ts.post(t, "/pools", createPoolBody())
	require.Equal(t, http.StatusOK, code, string(body))

	p := decodePool(t, body)
	assert.Equal(t, poolID, p.ID)
	assert.Equal(t, pool.Signer(poolID, nonce), p.Signer)
	assert.Equal(t, authority, p.Authority)
	assert.Equal(t, uint64(86400), uint64(p.RewardDuration))
	assert.Equal(t, uint64(0), uint64(p.RewardRate))
	assert.False(t, p.Paused)
	assert.Empty(t, p.Funders)

	code, body = ts.post(t, "/pools", createPoolBody())
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "pool already exists")
}

func testBadRequests(t *testing.T, ts *testServer) {
	code, _ := ts.get(t, "/pools/not-an-address")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := ts.get(t, "/pools/"+thor.BytesToAddress([]byte("nowhere")).String())
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(body), "pool not found")

	withExtra := createPoolBody()
	withExtra["color"] = "blue"
	code, _ = ts.post(t, "/pools", withExtra)
	assert.Equal(t, http.StatusBadRequest, code)
}

func testUnknownPosition(t *testing.T, ts *testServer) {
	code, _ := ts.get(t, positionPath(""))
	assert.Equal(t, http.StatusNotFound, code)
}

func testStakeFundClaim(t *testing.T, ts *testServer) {
	code, body := ts.post(t, poolPath("/positions"), utils.M{"owner": alice})
	require.Equal(t, http.StatusOK, code, string(body))
	pos := decodePosition(t, body)
	assert.Equal(t, alice, pos.Owner)
	assert.Equal(t, poolID, pos.Pool)

	code, body = ts.post(t, positionPath("/stake"), utils.M{"from": aliceStake, "amount": 100})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, uint64(100), uint64(decodePosition(t, body).BalanceStaked))

	code, body = ts.post(t, poolPath("/fund"), utils.M{"funder": authority, "from": funding, "amount": "864000"})
	require.Equal(t, http.StatusOK, code, string(body))
	p := decodePool(t, body)
	assert.Equal(t, uint64(10), uint64(p.RewardRate))
	assert.Equal(t, uint64(100), uint64(p.TotalStaked))
	assert.Equal(t, t0+86400, uint64(p.RewardDurationEnd))

	ts.clock.Advance(10)

	code, body = ts.get(t, positionPath(""))
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, uint64(100), uint64(decodePosition(t, body).Earned))

	code, body = ts.post(t, positionPath("/claim"), utils.M{"to": aliceReward})
	require.Equal(t, http.StatusOK, code, string(body))
	var claim pools.ClaimResult
	require.NoError(t, json.Unmarshal(body, &claim))
	assert.Equal(t, uint64(100), uint64(claim.Paid))

	code, body = ts.post(t, positionPath("/stake"), utils.M{"from": aliceStake, "amount": 0})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "amount must be greater than zero")
}

func testAuthorization(t *testing.T, ts *testServer) {
	code, _ := ts.post(t, poolPath("/pause"), utils.M{"caller": bob})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = ts.post(t, poolPath("/funders/authorize"), utils.M{"caller": bob, "funder": bob})
	assert.Equal(t, http.StatusForbidden, code)

	code, body := ts.post(t, poolPath("/fund"), utils.M{"funder": alice, "from": aliceReward, "amount": 0})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, string(body), "unauthorized funder")

	code, body = ts.post(t, poolPath("/funders/authorize"), utils.M{"caller": authority, "funder": bob})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, []thor.Address{bob}, decodePool(t, body).Funders)

	code, body = ts.post(t, poolPath("/funders/deauthorize"), utils.M{"caller": authority, "funder": bob})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Empty(t, decodePool(t, body).Funders)
}

func testPauseAndClose(t *testing.T, ts *testServer) {
	code, body := ts.post(t, poolPath("/pause"), utils.M{"caller": authority})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "reward window still active")

	ts.clock.Advance(86400)

	code, body = ts.post(t, poolPath("/pause"), utils.M{"caller": authority})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.True(t, decodePool(t, body).Paused)

	code, _ = ts.post(t, positionPath("/stake"), utils.M{"from": aliceStake, "amount": 1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = ts.post(t, positionPath("/unstake"), utils.M{"to": aliceStake, "amount": 100})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, uint64(0), uint64(decodePosition(t, body).BalanceStaked))

	code, body = ts.post(t, positionPath("/claim"), utils.M{"to": aliceReward})
	require.Equal(t, http.StatusOK, code, string(body))
	var claim pools.ClaimResult
	require.NoError(t, json.Unmarshal(body, &claim))
	assert.Equal(t, uint64(863900), uint64(claim.Paid))

	code, body = ts.post(t, positionPath("/close"), nil)
	require.Equal(t, http.StatusNoContent, code, string(body))

	code, body = ts.post(t, poolPath("/close"), utils.M{
		"caller":          authority,
		"stakingRefundee": aliceStake,
		"rewardRefundee":  funding,
	})
	require.Equal(t, http.StatusOK, code, string(body))
	var closed pools.ClosePoolResult
	require.NoError(t, json.Unmarshal(body, &closed))
	assert.Equal(t, uint64(0), uint64(closed.Refunded))

	code, _ = ts.get(t, poolPath(""))
	assert.Equal(t, http.StatusNotFound, code)
}
