// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/rewardpool"
	"github.com/vechain/rewardpool/thor"
)

type Accounts struct {
	engine *rewardpool.Engine
}

func New(engine *rewardpool.Engine) *Accounts {
	return &Accounts{engine: engine}
}

func (a *Accounts) writeAccount(w http.ResponseWriter, id thor.Address) error {
	acc, err := a.engine.Account(id)
	if err != nil {
		return utils.EngineError(err)
	}
	return utils.WriteJSON(w, &Account{
		ID:     id,
		Asset:  acc.Asset,
		Owner:  acc.Owner,
		Amount: math.HexOrDecimal64(acc.Amount),
	})
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return err
	}
	return a.writeAccount(w, id)
}

func (a *Accounts) handleCreateAccount(w http.ResponseWriter, req *http.Request) error {
	var body CreateAccount
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.engine.CreateAccount(body.ID, body.Asset, body.Owner); err != nil {
		return utils.EngineError(err)
	}
	return a.writeAccount(w, body.ID)
}

func (a *Accounts) handleMint(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return err
	}
	var body Mint
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.engine.Mint(id, uint64(body.Amount)); err != nil {
		return utils.EngineError(err)
	}
	return a.writeAccount(w, id)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /accounts").
		HandlerFunc(utils.WrapHandlerFunc(a.handleCreateAccount))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /accounts/{id}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{id}/mint").
		Methods(http.MethodPost).
		Name("POST /accounts/{id}/mint").
		HandlerFunc(utils.WrapHandlerFunc(a.handleMint))
}
