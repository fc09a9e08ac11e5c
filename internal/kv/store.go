// Package kv wraps the embedded ordered key/value engine (RocksDB, via
// grocksdb) behind a small Store interface so domainstore, urlshardstore
// and redirectstore depend on a seam rather than the concrete engine —
// the same seam the teacher's walker.Datastore interface gives fetchers
// over cassandra.Datastore.
package kv

import (
	"os"

	"github.com/linxGnu/grocksdb"

	"github.com/NEOS-AI/stract-frontier/internal/ferrors"
	"github.com/NEOS-AI/stract-frontier/internal/flog"
)

// Store is the minimal ordered KV contract the Frontier stores need:
// point get/put and prefix-ordered iteration (spec §6). Whether writes
// skip the WAL is fixed per store by Tuning.DisableWAL at Open.
type Store interface {
	Get(key []byte) (value []byte, found bool, err error)
	Put(key, value []byte) error
	NewIterator() Iterator
	Close()
}

// Iterator walks keys in order starting at Seek's argument, the same
// contract spec §4.2's DomainStore.iter relies on.
type Iterator interface {
	Seek(prefix []byte)
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

type rocksStore struct {
	db *grocksdb.DB
	wo *grocksdb.WriteOptions
	ro *grocksdb.ReadOptions
}

// Open opens (creating) a RocksDB instance at path with the given
// tuning applied. It never opens an existing, non-empty path for reuse
// across stores; each of DomainStore/UrlShardStore/RedirectStore owns
// its own subdirectory and its own rocksStore.
func Open(path string, t Tuning) (Store, error) {
	opts := grocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)
	opts.SetCreateIfMissingColumnFamilies(true)
	opts.IncreaseParallelism(4)
	opts.SetWriteBufferSize(t.WriteBufferSize)
	opts.SetAllowMmapReads(t.AllowMmapReads)
	opts.SetAllowMmapWrites(t.AllowMmapWrites)
	opts.SetCompression(grocksdb.NoCompression)

	if t.CompactionStyle == CompactionUniversal {
		opts.SetCompactionStyle(grocksdb.UniversalCompactionStyle)
	} else {
		opts.SetCompactionStyle(grocksdb.LevelCompactionStyle)
	}

	bbto := grocksdb.NewDefaultBlockBasedTableOptions()
	bbto.SetBlockCache(grocksdb.NewLRUCache(t.BlockCacheSize))
	if t.UseRibbonFilter {
		bbto.SetFilterPolicy(grocksdb.NewRibbonFilterPolicy(t.BitsPerKey))
	} else {
		bbto.SetFilterPolicy(grocksdb.NewBloomFilter(t.BitsPerKey))
	}
	opts.SetBlockBasedTableFactory(bbto)

	if t.OptimizeForPointLookup {
		opts.OptimizeForPointLookup(t.BlockCacheSize / (1024 * 1024))
	}
	if t.OptimizeFiltersForHits {
		opts.SetOptimizeFiltersForHits(true)
	}

	db, err := grocksdb.OpenDb(opts, path)
	if err != nil {
		flog.Error("Failed to open rocksdb store at %v: %v", path, err)
		return nil, ferrors.Io("kv.Open", err)
	}

	wo := grocksdb.NewDefaultWriteOptions()
	wo.DisableWAL(t.DisableWAL)
	ro := grocksdb.NewDefaultReadOptions()

	return &rocksStore{db: db, wo: wo, ro: ro}, nil
}

// pathExistsNonEmpty is used by the Frontier's open guard (spec §5
// Resource policy: "requires the target directory to not pre-exist").
func pathExistsNonEmpty(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	return len(entries) > 0
}

// PathExistsNonEmpty exposes pathExistsNonEmpty to the frontier package.
func PathExistsNonEmpty(path string) bool { return pathExistsNonEmpty(path) }

func (s *rocksStore) Get(key []byte) ([]byte, bool, error) {
	slice, err := s.db.Get(s.ro, key)
	if err != nil {
		return nil, false, ferrors.Io("kv.Get", err)
	}
	defer slice.Free()
	if !slice.Exists() {
		return nil, false, nil
	}
	out := make([]byte, slice.Size())
	copy(out, slice.Data())
	return out, true, nil
}

func (s *rocksStore) Put(key, value []byte) error {
	if err := s.db.Put(s.wo, key, value); err != nil {
		return ferrors.Io("kv.Put", err)
	}
	return nil
}

func (s *rocksStore) NewIterator() Iterator {
	it := s.db.NewIterator(s.ro)
	return &rocksIterator{it: it}
}

func (s *rocksStore) Close() {
	s.db.Close()
	s.wo.Destroy()
	s.ro.Destroy()
}

type rocksIterator struct {
	it *grocksdb.Iterator
}

func (i *rocksIterator) Seek(prefix []byte) {
	if len(prefix) == 0 {
		i.it.SeekToFirst()
		return
	}
	i.it.Seek(prefix)
}

func (i *rocksIterator) Valid() bool { return i.it.Valid() }
func (i *rocksIterator) Next()       { i.it.Next() }

func (i *rocksIterator) Key() []byte {
	s := i.it.Key()
	defer s.Free()
	out := make([]byte, s.Size())
	copy(out, s.Data())
	return out
}

func (i *rocksIterator) Value() []byte {
	s := i.it.Value()
	defer s.Free()
	out := make([]byte, s.Size())
	copy(out, s.Data())
	return out
}

func (i *rocksIterator) Close() { i.it.Close() }
