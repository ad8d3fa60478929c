// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Bytes32 is a storage slot key.
type Bytes32 [32]byte

func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// ParseBytes32 parses a 64 digit hex string, the 0x prefix is optional.
func ParseBytes32(s string) (Bytes32, error) {
	var b Bytes32
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s) != len(b)*2 {
		return Bytes32{}, errors.New("invalid length")
	}
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return Bytes32{}, errors.Wrap(err, "decode slot")
	}
	return b, nil
}

func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesToBytes32 left pads b, or keeps its rightmost 32 bytes when longer.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
