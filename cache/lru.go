// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// LRU is a typed golang-lru cache counting the hits and misses of Load.
type LRU[K comparable, V any] struct {
	c         *lru.Cache
	hit, miss atomic.Int64
}

// NewLRU fails unless size is positive.
func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "new lru")
	}
	return &LRU[K, V]{c: c}, nil
}

func (l *LRU[K, V]) Get(key K) (V, bool) {
	if v, ok := l.c.Get(key); ok {
		return v.(V), true
	}
	var zero V
	return zero, false
}

func (l *LRU[K, V]) Add(key K, value V) {
	l.c.Add(key, value)
}

func (l *LRU[K, V]) Len() int {
	return l.c.Len()
}

// Load returns the cached value of key, calling load and caching its
// result on a miss. Failed loads are not cached.
func (l *LRU[K, V]) Load(key K, load func(K) (V, error)) (V, error) {
	if v, ok := l.Get(key); ok {
		l.hit.Add(1)
		return v, nil
	}
	l.miss.Add(1)
	v, err := load(key)
	if err != nil {
		return v, err
	}
	l.c.Add(key, v)
	return v, nil
}

func (l *LRU[K, V]) Stats() (hit, miss int64) {
	return l.hit.Load(), l.miss.Load()
}
