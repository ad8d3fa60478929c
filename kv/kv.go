// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter reads raw records. A missing key is reported as an error that IsNotFound recognizes.
type Getter interface {
	Get(key []byte) ([]byte, error)
	IsNotFound(error) bool
}

type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// GetPutter is what the state layer needs from a database.
type GetPutter interface {
	Getter
	Putter

	NewBatch() Batch
}

// Store is a database owned by the process, closed on shutdown.
type Store interface {
	GetPutter
	Close() error
}

// Batch collects writes that reach the database together or not at all.
type Batch interface {
	Putter

	Len() int
	Write() error
}
