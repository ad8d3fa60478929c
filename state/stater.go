// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/cache"
	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/thor"
)

// DefaultCacheSize is the number of committed records kept decoded-ready in memory.
const DefaultCacheSize = 4096

// Stater is the state creator. It owns the database and a cache of committed values.
type Stater struct {
	db    kv.GetPutter
	cache *cache.LRU[thor.Bytes32, []byte]
}

// NewStater create a new stater.
func NewStater(db kv.GetPutter, cacheSize int) (*Stater, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	c, err := cache.NewLRU[thor.Bytes32, []byte](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "new state cache")
	}
	return &Stater{db: db, cache: c}, nil
}

// NewState create a new state object on top of the committed records.
func (s *Stater) NewState() *State {
	return newState(s)
}

// CacheStats returns the hit and miss counts of the committed value cache.
func (s *Stater) CacheStats() (hit, miss int64) {
	return s.cache.Stats()
}

func (s *Stater) load(key thor.Bytes32) ([]byte, error) {
	v, err := s.cache.Load(key, func(key thor.Bytes32) ([]byte, error) {
		raw, err := s.db.Get(key.Bytes())
		if s.db.IsNotFound(err) {
			return nil, nil
		}
		return raw, err
	})
	if err != nil {
		return nil, err
	}
	return bytes.Clone(v), nil
}
