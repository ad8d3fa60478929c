// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes32(t *testing.T) {
	slot := BytesToBytes32([]byte("pool-1"))

	parsed, err := ParseBytes32(slot.String())
	require.NoError(t, err)
	assert.Equal(t, slot, parsed)

	parsed, err = ParseBytes32(strings.TrimPrefix(slot.String(), "0x"))
	require.NoError(t, err)
	assert.Equal(t, slot, parsed)

	_, err = ParseBytes32("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseBytes32("0x" + strings.Repeat("zz", 32))
	assert.Error(t, err)

	assert.True(t, Bytes32{}.IsZero())
	assert.False(t, MustParseBytes32("0x0000000000000000000000000000000000000000000000000000000000000001").IsZero())
}

func TestBytesToBytes32(t *testing.T) {
	long := make([]byte, 40)
	long[39] = 1
	assert.Equal(t, MustParseBytes32("0x"+strings.Repeat("00", 31)+"01"), BytesToBytes32(long))
}
