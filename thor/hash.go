// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

// Blake2b hashes the concatenation of data with blake2b-256.
// Storage slots and derived addresses are both computed with it.
func Blake2b(data ...[]byte) (h Bytes32) {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	hasher, _ := blake2b.New256(nil)
	for _, b := range data {
		hasher.Write(b)
	}
	hasher.Sum(h[:0])
	return
}
