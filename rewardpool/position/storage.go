// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/rewardpool/reverts"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var slotPositions = thor.BytesToBytes32([]byte("positions"))

type Storage struct {
	positions *state.Mapping[thor.Address, *Position]
}

func NewStorage(st *state.State) *Storage {
	return &Storage{
		positions: state.NewMapping[thor.Address, *Position](st, slotPositions),
	}
}

// Get returns the position of owner in pool or ErrPositionNotFound.
func (s *Storage) Get(owner, pool thor.Address) (*Position, error) {
	id := ID(owner, pool)
	exists, err := s.positions.Exists(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	if !exists {
		return nil, reverts.ErrPositionNotFound
	}
	p, err := s.positions.Get(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	return p, nil
}

func (s *Storage) Exists(owner, pool thor.Address) (bool, error) {
	exists, err := s.positions.Exists(ID(owner, pool))
	if err != nil {
		return false, errors.Wrap(err, "failed to get position")
	}
	return exists, nil
}

func (s *Storage) Set(p *Position) error {
	if err := s.positions.Set(ID(p.Owner, p.Pool), p); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}

func (s *Storage) Delete(owner, pool thor.Address) {
	s.positions.Delete(ID(owner, pool))
}
