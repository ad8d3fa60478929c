// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/rewardpool/reverts"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var slotPools = thor.BytesToBytes32([]byte("pools"))

type Storage struct {
	pools *state.Mapping[thor.Address, *Pool]
}

func NewStorage(st *state.State) *Storage {
	return &Storage{
		pools: state.NewMapping[thor.Address, *Pool](st, slotPools),
	}
}

// Get returns the pool stored under id or ErrPoolNotFound.
func (s *Storage) Get(id thor.Address) (*Pool, error) {
	exists, err := s.pools.Exists(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if !exists {
		return nil, reverts.ErrPoolNotFound
	}
	p, err := s.pools.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	return p, nil
}

func (s *Storage) Exists(id thor.Address) (bool, error) {
	exists, err := s.pools.Exists(id)
	if err != nil {
		return false, errors.Wrap(err, "failed to get pool")
	}
	return exists, nil
}

func (s *Storage) Set(id thor.Address, p *Pool) error {
	if err := s.pools.Set(id, p); err != nil {
		return errors.Wrap(err, "failed to set pool")
	}
	return nil
}

func (s *Storage) Delete(id thor.Address) {
	s.pools.Delete(id)
}
