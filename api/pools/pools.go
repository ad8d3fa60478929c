// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/rewardpool"
	"github.com/vechain/rewardpool/thor"
)

type Pools struct {
	engine *rewardpool.Engine
}

func New(engine *rewardpool.Engine) *Pools {
	return &Pools{engine: engine}
}

func (p *Pools) handleCreatePool(w http.ResponseWriter, req *http.Request) error {
	var body CreatePool
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.engine.CreatePool(body.params()); err != nil {
		return utils.EngineError(err)
	}
	return p.writePool(w, body.ID)
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return err
	}
	return p.writePool(w, id)
}

func (p *Pools) writePool(w http.ResponseWriter, id thor.Address) error {
	rec, err := p.engine.Pool(id)
	if err != nil {
		return utils.EngineError(err)
	}
	total, err := p.engine.TotalStaked(id)
	if err != nil {
		return utils.EngineError(err)
	}
	return utils.WriteJSON(w, ConvertPool(id, rec, total))
}

func (p *Pools) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	id, owner, err := poolAndOwner(req)
	if err != nil {
		return err
	}
	return p.writePosition(w, owner, id)
}

func (p *Pools) writePosition(w http.ResponseWriter, owner, id thor.Address) error {
	pos, err := p.engine.Position(owner, id)
	if err != nil {
		return utils.EngineError(err)
	}
	earned, err := p.engine.PreviewEarned(owner, id)
	if err != nil {
		return utils.EngineError(err)
	}
	return utils.WriteJSON(w, ConvertPosition(pos, earned))
}

func (p *Pools) handleCreatePosition(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return err
	}
	var body CreatePosition
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.engine.CreatePosition(body.Owner, id); err != nil {
		return utils.EngineError(err)
	}
	return p.writePosition(w, body.Owner, id)
}

func (p *Pools) handleStake(w http.ResponseWriter, req *http.Request) error {
	id, owner, err := poolAndOwner(req)
	if err != nil {
		return err
	}
	var body Stake
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.engine.Stake(owner, id, body.From, uint64(body.Amount)); err != nil {
		return utils.EngineError(err)
	}
	return p.writePosition(w, owner, id)
}

func (p *Pools) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	id, owner, err := poolAndOwner(req)
	if err != nil {
		return err
	}
	var body Unstake
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.engine.Unstake(owner, id, body.To, uint64(body.Amount)); err != nil {
		return utils.EngineError(err)
	}
	return p.writePosition(w, owner, id)
}

func (p *Pools) handleClaim(w http.ResponseWriter, req *http.Request) error {
	id, owner, err := poolAndOwner(req)
	if err != nil {
		return err
	}
	var body Claim
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	paid, err := p.engine.Claim(owner, id, body.To)
	if err != nil {
		return utils.EngineError(err)
	}
	return utils.WriteJSON(w, &ClaimResult{Paid: math.HexOrDecimal64(paid)})
}

func (p *Pools) handleClosePosition(w http.ResponseWriter, req *http.Request) error {
	id, owner, err := poolAndOwner(req)
	if err != nil {
		return err
	}
	if err := p.engine.ClosePosition(owner, id); err != nil {
		return utils.EngineError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (p *Pools) handleFund(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return err
	}
	var body Fund
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.engine.Fund(body.Funder, id, body.From, uint64(body.Amount)); err != nil {
		return utils.EngineError(err)
	}
	return p.writePool(w, id)
}

func (p *Pools) handleFunder(authorize bool) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		id, err := utils.AddressVar(req, "id")
		if err != nil {
			return err
		}
		var body Funder
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		if authorize {
			err = p.engine.AuthorizeFunder(body.Caller, id, body.Funder)
		} else {
			err = p.engine.DeauthorizeFunder(body.Caller, id, body.Funder)
		}
		if err != nil {
			return utils.EngineError(err)
		}
		return p.writePool(w, id)
	}
}

func (p *Pools) handlePause(pause bool) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		id, err := utils.AddressVar(req, "id")
		if err != nil {
			return err
		}
		var body Admin
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		if pause {
			err = p.engine.Pause(body.Caller, id)
		} else {
			err = p.engine.Unpause(body.Caller, id)
		}
		if err != nil {
			return utils.EngineError(err)
		}
		return p.writePool(w, id)
	}
}

func (p *Pools) handleClosePool(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return err
	}
	var body ClosePool
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	refunded, err := p.engine.ClosePool(body.Caller, id, body.StakingRefundee, body.RewardRefundee)
	if err != nil {
		return utils.EngineError(err)
	}
	return utils.WriteJSON(w, &ClosePoolResult{Refunded: math.HexOrDecimal64(refunded)})
}

func poolAndOwner(req *http.Request) (thor.Address, thor.Address, error) {
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return thor.Address{}, thor.Address{}, err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return thor.Address{}, thor.Address{}, err
	}
	return id, owner, nil
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleCreatePool))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("GET /pools/{id}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{id}/fund").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/fund").
		HandlerFunc(utils.WrapHandlerFunc(p.handleFund))
	sub.Path("/{id}/funders/authorize").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/funders/authorize").
		HandlerFunc(utils.WrapHandlerFunc(p.handleFunder(true)))
	sub.Path("/{id}/funders/deauthorize").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/funders/deauthorize").
		HandlerFunc(utils.WrapHandlerFunc(p.handleFunder(false)))
	sub.Path("/{id}/pause").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/pause").
		HandlerFunc(utils.WrapHandlerFunc(p.handlePause(true)))
	sub.Path("/{id}/unpause").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/unpause").
		HandlerFunc(utils.WrapHandlerFunc(p.handlePause(false)))
	sub.Path("/{id}/close").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/close").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClosePool))

	sub.Path("/{id}/positions").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/positions").
		HandlerFunc(utils.WrapHandlerFunc(p.handleCreatePosition))
	sub.Path("/{id}/positions/{owner}").
		Methods(http.MethodGet).
		Name("GET /pools/{id}/positions/{owner}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))
	sub.Path("/{id}/positions/{owner}/stake").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/positions/{owner}/stake").
		HandlerFunc(utils.WrapHandlerFunc(p.handleStake))
	sub.Path("/{id}/positions/{owner}/unstake").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/positions/{owner}/unstake").
		HandlerFunc(utils.WrapHandlerFunc(p.handleUnstake))
	sub.Path("/{id}/positions/{owner}/claim").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/positions/{owner}/claim").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClaim))
	sub.Path("/{id}/positions/{owner}/close").
		Methods(http.MethodPost).
		Name("POST /pools/{id}/positions/{owner}/close").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClosePosition))
}
