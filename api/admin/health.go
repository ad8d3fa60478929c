// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/health"
)

type healthAPI struct {
	health *health.Health
}

func newHealthAPI(h *health.Health) *healthAPI {
	return &healthAPI{health: h}
}

func (h *healthAPI) handleGet(w http.ResponseWriter, _ *http.Request) error {
	st := h.health.Status()

	w.Header().Set("Content-Type", utils.JSONContentType)
	if !st.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	return utils.WriteJSON(w, st)
}

func (h *healthAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGet))
}
