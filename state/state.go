// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/rewardpool/stackedmap"
	"github.com/vechain/rewardpool/thor"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State holds the pool records between two commits.
// Every write is journaled so a failed operation can be reverted as a whole.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[thor.Bytes32, []byte]
}

func newState(stater *Stater) *State {
	sm := stackedmap.New(func(key thor.Bytes32) ([]byte, bool, error) {
		raw, err := stater.load(key)
		return raw, err == nil, err
	})
	// base layer, never popped
	sm.Push()
	return &State{stater: stater, sm: sm}
}

// GetRawStorage returns the raw value stored under key. An absent record yields an empty value.
func (s *State) GetRawStorage(key thor.Bytes32) ([]byte, error) {
	data, _, err := s.sm.Get(key)
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage sets the raw value under key. An empty value deletes the record on commit.
func (s *State) SetRawStorage(key thor.Bytes32, raw []byte) {
	s.sm.Put(key, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by State instance.
func (s *State) EncodeStorage(key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// Delete removes the record under key.
func (s *State) Delete(key thor.Bytes32) {
	s.SetRawStorage(key, nil)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo drops every write made after the checkpoint of revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(max(revision, 1))
}

// Stage collects the journaled changes so they can be committed in one batch.
func (s *State) Stage() *Stage {
	changes := make(map[thor.Bytes32][]byte)
	for k, v := range s.sm.Journal() {
		changes[k] = v
	}
	return &Stage{stater: s.stater, changes: changes}
}
