// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const AddressLength = common.AddressLength

// Address identifies a principal, an asset, a token account or a record.
// The zero address stands for "none": an empty funder slot, a missing position.
type Address common.Address

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText renders the 0x-prefixed hex form used by the API and the pool book.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// ParseAddress parses a 40 digit hex string, the 0x prefix is optional.
func ParseAddress(s string) (*Address, error) {
	var addr Address
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s) != AddressLength*2 {
		return nil, errors.New("invalid length")
	}
	if _, err := hex.Decode(addr[:], []byte(s)); err != nil {
		return nil, errors.Wrap(err, "decode address")
	}
	return &addr, nil
}

func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return *addr
}

// BytesToAddress left pads b, or keeps its rightmost 20 bytes when longer.
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToAddress(b))
}

// DeriveAddress is the trailing 20 bytes of the blake2b hash of the seeds.
// Pool signers, position ids and book-derived pool ids all come from it.
func DeriveAddress(seeds ...[]byte) Address {
	h := Blake2b(seeds...)
	return BytesToAddress(h[len(h)-AddressLength:])
}
