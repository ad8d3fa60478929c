// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// StartAdminServer serves the operator handler on addr.
func StartAdminServer(addr string, handler http.Handler) (string, func(), error) {
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	url, closeFunc, err := serve(addr, srv)
	if err != nil {
		return "", nil, errors.WithMessage(err, "admin")
	}
	return url + "admin", closeFunc, nil
}
