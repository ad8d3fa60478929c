// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/assets"
	"github.com/vechain/rewardpool/rewardpool/reverts"
	"github.com/vechain/rewardpool/thor"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusForbidden,
	}
}

// NotFound convenience method to create http not found error.
func NotFound(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusNotFound,
	}
}

// EngineError maps an error returned by the engine to a response status.
// Rejected operations become 4xx, anything else is left as is and responded with 500.
func EngineError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, reverts.ErrPoolNotFound),
		errors.Is(err, reverts.ErrPositionNotFound),
		errors.Is(err, assets.ErrAccountNotFound):
		return NotFound(err)
	case reverts.KindOf(err) == reverts.KindAuthorization,
		errors.Is(err, assets.ErrNotOwner):
		return Forbidden(err)
	case reverts.IsRevertErr(err),
		errors.Is(err, assets.ErrAccountExists),
		errors.Is(err, assets.ErrAccountNotEmpty),
		errors.Is(err, assets.ErrAssetMismatch),
		errors.Is(err, assets.ErrInsufficientFunds),
		errors.Is(err, assets.ErrBalanceOverflow):
		return BadRequest(err)
	}
	return err
}

// HandlerFunc like http.HandlerFunc, bu it returns an error.
// If the returned error is httpError type, httpError.status will be responded,
// otherwise http.StatusInternalServerError responded.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err != nil {
			if he, ok := err.(*httpError); ok {
				if he.cause != nil {
					http.Error(w, he.cause.Error(), he.status)
				} else {
					w.WriteHeader(he.status)
				}
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// AddressVar parses the named route variable as an address.
func AddressVar(r *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(r)[name])
	if err != nil {
		return thor.Address{}, BadRequest(errors.New(name + ": " + err.Error()))
	}
	return *addr, nil
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any
