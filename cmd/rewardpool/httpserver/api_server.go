// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/rewardpool/log"
)

var logger = log.WithContext("pkg", "httpserver")

// StartAPIServer serves handler on addr. Request bodies are capped at maxBodySize bytes and
// handlers running longer than timeout are answered with 503.
func StartAPIServer(addr string, handler http.Handler, timeout time.Duration, maxBodySize int64) (string, func(), error) {
	if maxBodySize > 0 {
		handler = requestBodyLimit(handler, maxBodySize)
	}
	if timeout > 0 {
		handler = http.TimeoutHandler(handler, timeout, "request timeout")
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	url, closeFunc, err := serve(addr, srv)
	if err != nil {
		return "", nil, errors.WithMessage(err, "api")
	}
	return url, closeFunc, nil
}

func requestBodyLimit(h http.Handler, limit int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		h.ServeHTTP(w, r)
	})
}

// serve listens on addr and runs srv until the returned close func is called.
func serve(addr string, srv *http.Server) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen addr [%v]", addr)
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		if err := g.Wait(); err != nil {
			logger.Warn("server exited", "addr", addr, "err", err)
		}
	}, nil
}
