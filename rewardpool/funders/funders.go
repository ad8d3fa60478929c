// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package funders

import (
	"github.com/vechain/rewardpool/rewardpool/reverts"
	"github.com/vechain/rewardpool/thor"
)

// Capacity is the number of funder slots of a pool.
const Capacity = 5

// Funders is the fixed size allowlist of principals allowed to fund a pool besides its authority.
// An empty slot holds the zero address. The authority is never stored.
type Funders [Capacity]thor.Address

// Authorize fills the first empty slot with funder. The zero address is the
// empty slot marker and counts as already present.
func (f *Funders) Authorize(authority, funder thor.Address) error {
	if funder == authority || funder.IsZero() || f.Contains(funder) {
		return reverts.ErrFunderAlreadyAuthorized
	}
	for i := range f {
		if f[i].IsZero() {
			f[i] = funder
			return nil
		}
	}
	return reverts.ErrMaxFunders
}

// Deauthorize empties the slot holding funder.
func (f *Funders) Deauthorize(authority, funder thor.Address) error {
	if funder == authority {
		return reverts.ErrCannotDeauthorizePoolAuthority
	}
	if funder.IsZero() {
		return reverts.ErrCannotDeauthorizeMissingAuthority
	}
	for i := range f {
		if f[i] == funder {
			f[i] = thor.Address{}
			return nil
		}
	}
	return reverts.ErrCannotDeauthorizeMissingAuthority
}

// Contains reports whether addr occupies a slot. The zero address never does.
func (f *Funders) Contains(addr thor.Address) bool {
	if addr.IsZero() {
		return false
	}
	for _, a := range f {
		if a == addr {
			return true
		}
	}
	return false
}

// IsAllowed reports whether addr may fund a pool administered by authority.
func (f *Funders) IsAllowed(authority, addr thor.Address) bool {
	return addr == authority || f.Contains(addr)
}

// List returns the occupied slots in slot order.
func (f *Funders) List() []thor.Address {
	out := make([]thor.Address, 0, Capacity)
	for _, a := range f {
		if !a.IsZero() {
			out = append(out, a)
		}
	}
	return out
}
