// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/rewardpool/thor"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction over the state, similar to the mapping in Solidity.
// Values are rlp encoded; an absent key decodes to the zero value.
type Mapping[K Key, V any] struct {
	state   *State
	basePos thor.Bytes32
}

func NewMapping[K Key, V any](state *State, pos thor.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{state: state, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) thor.Bytes32 {
	return thor.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.state.DecodeStorage(m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, value)
	})
	return
}

// Exists reports whether a value is stored for key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.state.GetRawStorage(m.position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.state.EncodeStorage(m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

func (m *Mapping[K, V]) Delete(key K) {
	m.state.Delete(m.position(key))
}
