// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/thor"
)

// Stage abstracts the changes of a state waiting to be committed.
type Stage struct {
	stater  *Stater
	changes map[thor.Bytes32][]byte
}

// Len returns the number of changed records.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the database in one batch.
func (s *Stage) Commit() error {
	batch := s.stater.db.NewBatch()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = batch.Delete(k.Bytes())
		} else {
			err = batch.Put(k.Bytes(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{errors.Wrap(err, "write batch")}
	}

	for k, v := range s.changes {
		if len(v) == 0 {
			s.stater.cache.Add(k, []byte(nil))
		} else {
			s.stater.cache.Add(k, bytes.Clone(v))
		}
	}
	return nil
}
