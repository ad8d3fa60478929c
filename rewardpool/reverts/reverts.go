// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind classifies why an operation was rejected.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindState
	KindAuthorization
	KindArithmetic
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindAuthorization:
		return "authorization"
	case KindArithmetic:
		return "arithmetic"
	}
	return "unknown"
}

// ErrRevert is a protocol level rejection. Nothing an operation wrote survives it.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert wrapped in err, or 0 when err is not a revert.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return 0
}

// validation
var (
	ErrAmountMustBeGreaterThanZero = New(KindValidation, "amount must be greater than zero")
	ErrDurationTooShort            = New(KindValidation, "duration too short")
	ErrInvalidPoolID               = New(KindValidation, "pool id must not be zero")
)

// state
var (
	ErrPoolPaused                       = New(KindState, "pool paused")
	ErrPoolNotPaused                    = New(KindState, "pool not paused")
	ErrPoolExists                       = New(KindState, "pool already exists")
	ErrPoolNotFound                     = New(KindState, "pool not found")
	ErrPoolNotClosable                  = New(KindState, "pool not closable")
	ErrRewardWindowActive               = New(KindState, "reward window still active")
	ErrPositionExists                   = New(KindState, "position already exists")
	ErrPositionNotFound                 = New(KindState, "position not found")
	ErrPositionNotEmpty                 = New(KindState, "position not empty")
	ErrInsufficientFundUnstake          = New(KindState, "insufficient funds to unstake")
	ErrCannotStakeOrClaimBeforeMaturity = New(KindState, "cannot unstake or claim before maturity time")
	ErrInvalidVault                     = New(KindState, "vault does not match pool asset or custody")
)

// authorization
var (
	ErrUnauthorized                      = New(KindAuthorization, "unauthorized")
	ErrUnauthorizedFunder                = New(KindAuthorization, "unauthorized funder")
	ErrFunderAlreadyAuthorized           = New(KindAuthorization, "funder already authorized")
	ErrMaxFunders                        = New(KindAuthorization, "maximum funders already authorized")
	ErrCannotDeauthorizePoolAuthority    = New(KindAuthorization, "cannot deauthorize the primary pool authority")
	ErrCannotDeauthorizeMissingAuthority = New(KindAuthorization, "authority not found for deauthorization")
)

// arithmetic
var (
	ErrOverflow = New(KindArithmetic, "arithmetic overflow")
)
