// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/metrics"
)

// StartMetricsServer serves the prometheus registry on addr.
func StartMetricsServer(addr string) (string, func(), error) {
	h := metrics.HTTPHandler()
	if h == nil {
		return "", nil, errors.New("metrics are not enabled")
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(h)
	handler := handlers.CompressHandler(router)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	url, closeFunc, err := serve(addr, srv)
	if err != nil {
		return "", nil, errors.WithMessage(err, "metrics")
	}
	return url + "metrics", closeFunc, nil
}
