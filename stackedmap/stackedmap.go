// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap

import "iter"

// Source loads a value the map has not seen a write for.
type Source[K comparable, V any] func(key K) (value V, exist bool, err error)

// StackedMap layers writes over a source. Every Push opens a layer that
// a later PopTo throws away, together with the layers above it.
type StackedMap[K comparable, V any] struct {
	src    Source[K, V]
	layers []*layer[K, V]
}

type layer[K comparable, V any] struct {
	latest map[K]V
	order  []K
	values []V
}

func (l *layer[K, V]) put(key K, value V) {
	l.latest[key] = value
	l.order = append(l.order, key)
	l.values = append(l.values, value)
}

func New[K comparable, V any](src Source[K, V]) *StackedMap[K, V] {
	return &StackedMap[K, V]{src: src}
}

func (sm *StackedMap[K, V]) Depth() int {
	return len(sm.layers)
}

// Push opens a layer and returns the depth to pass to PopTo to drop it.
func (sm *StackedMap[K, V]) Push() int {
	sm.layers = append(sm.layers, &layer[K, V]{latest: make(map[K]V)})
	return len(sm.layers) - 1
}

// PopTo drops layers until depth remain.
func (sm *StackedMap[K, V]) PopTo(depth int) {
	if depth < 0 {
		depth = 0
	}
	for i := depth; i < len(sm.layers); i++ {
		sm.layers[i] = nil
	}
	if depth < len(sm.layers) {
		sm.layers = sm.layers[:depth]
	}
}

// Get returns the newest written value of key, falling back to the source.
func (sm *StackedMap[K, V]) Get(key K) (V, bool, error) {
	for i := len(sm.layers) - 1; i >= 0; i-- {
		if v, ok := sm.layers[i].latest[key]; ok {
			return v, true, nil
		}
	}
	return sm.src(key)
}

// Put writes into the top layer. It panics when no layer is open.
func (sm *StackedMap[K, V]) Put(key K, value V) {
	if len(sm.layers) == 0 {
		panic("stackedmap: put without layer")
	}
	sm.layers[len(sm.layers)-1].put(key, value)
}

// Journal yields every surviving write in the order it was made.
func (sm *StackedMap[K, V]) Journal() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, l := range sm.layers {
			for i, k := range l.order {
				if !yield(k, l.values[i]) {
					return
				}
			}
		}
	}
}
