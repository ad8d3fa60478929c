// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/vechain/rewardpool/kv"
)

var _ kv.Store = (*LevelDB)(nil)

// Options tunes the database. CacheSize is in MiB, both values have a floor of 16.
type Options struct {
	CacheSize              int
	OpenFilesCacheCapacity int
	// NoSync skips the fsync after a committed batch.
	NoSync bool
}

// LevelDB stores the committed records of the engine.
type LevelDB struct {
	db       *leveldb.DB
	stg      storage.Storage
	writeOpt *opt.WriteOptions
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "new persistent level db")
	}
	return open(stg, opts)
}

// NewMem opens a database living in memory only.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{NoSync: true})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	cacheSize := max(opts.CacheSize, 16)
	openFiles := max(opts.OpenFilesCacheCapacity, 16)

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: openFiles,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db, stg: stg, writeOpt: &opt.WriteOptions{Sync: !opts.NoSync}}, nil
}

func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, nil)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, ldb.writeOpt)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, ldb.writeOpt)
}

// Close releases the database and the lock on its files. Later operations fail.
func (ldb *LevelDB) Close() error {
	if err := ldb.db.Close(); err != nil {
		ldb.stg.Close()
		return err
	}
	return ldb.stg.Close()
}

func (ldb *LevelDB) NewBatch() kv.Batch {
	return &batch{ldb: ldb, b: new(leveldb.Batch)}
}

type batch struct {
	ldb *LevelDB
	b   *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int {
	return b.b.Len()
}

// Write applies every op of the batch atomically.
func (b *batch) Write() error {
	return b.ldb.db.Write(b.b, b.ldb.writeOpt)
}
