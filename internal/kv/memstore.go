package kv

import (
	"bytes"

	"github.com/tidwall/btree"
)

// memStore is an in-memory Store used by tests that exercise
// domainstore/urlshardstore/redirectstore logic without paying for a
// real RocksDB instance per test. It is ordered the same way the real
// engine is (spec §4.2 DomainStore.iter walks keys in order), backed by
// the ordered B-tree map aistore's embedded-store stack (buntdb, via
// tidwall/btree) uses for exactly this shape of problem.
//
// Production code never constructs this type; Open in store.go always
// returns a rocksStore.
type memStore struct {
	tr *btree.BTreeG[memEntry]
}

type memEntry struct {
	key, value []byte
}

func memLess(a, b memEntry) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// NewMemStore constructs an in-memory Store for tests.
func NewMemStore() Store {
	return &memStore{tr: btree.NewBTreeG(memLess)}
}

func (m *memStore) Get(key []byte) ([]byte, bool, error) {
	e, ok := m.tr.Get(memEntry{key: key})
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (m *memStore) Put(key, value []byte) error {
	k := make([]byte, len(key))
	copy(k, key)
	v := make([]byte, len(value))
	copy(v, value)
	m.tr.Set(memEntry{key: k, value: v})
	return nil
}

func (m *memStore) NewIterator() Iterator {
	return &memIterator{tr: m.tr}
}

func (m *memStore) Close() {}

type memIterator struct {
	tr      *btree.BTreeG[memEntry]
	cur     memEntry
	ok      bool
	started bool
}

func (it *memIterator) Seek(prefix []byte) {
	it.started = true
	it.ok = false
	it.tr.Ascend(memEntry{key: prefix}, func(e memEntry) bool {
		it.cur = e
		it.ok = true
		return false
	})
}

func (it *memIterator) Valid() bool { return it.started && it.ok }

func (it *memIterator) Next() {
	if !it.ok {
		return
	}
	next := it.cur
	found := false
	it.tr.Ascend(it.cur, func(e memEntry) bool {
		if bytes.Equal(e.key, it.cur.key) {
			return true // skip current key, keep scanning
		}
		next = e
		found = true
		return false
	})
	if !found {
		it.ok = false
		return
	}
	it.cur = next
}

func (it *memIterator) Key() []byte   { return it.cur.key }
func (it *memIterator) Value() []byte { return it.cur.value }
func (it *memIterator) Close()        {}
