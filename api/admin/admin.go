// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/health"
)

// New returns the operator router: log level, request logging and health.
func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool, health *health.Health) http.Handler {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	newLogLevel(logLevel).Mount(sub, "/loglevel")
	newAPILogs(apiLogs).Mount(sub, "/apilogs")
	newHealthAPI(health).Mount(sub, "/health")

	return handlers.CompressHandler(router)
}
