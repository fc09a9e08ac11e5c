// Package domainstore implements spec §4.2: per-domain scheduling state
// (weight, politeness status, current max shard id), backed by an
// embedded ordered KV store tuned for point lookups.
package domainstore

import (
	"github.com/NEOS-AI/stract-frontier/domain"
	"github.com/NEOS-AI/stract-frontier/internal/ferrors"
	"github.com/NEOS-AI/stract-frontier/internal/flog"
	"github.com/NEOS-AI/stract-frontier/internal/kv"
)

// Status is a domain's politeness state (spec §3).
type Status int

const (
	Pending Status = iota
	CrawlInProgress
)

func (s Status) String() string {
	if s == CrawlInProgress {
		return "CrawlInProgress"
	}
	return "Pending"
}

// State is DomainState from spec §3.
type State struct {
	Weight     float64
	Status     Status
	MaxShardID uint64
}

// Store is DomainStore from spec §4.2.
type Store struct {
	kv kv.Store
}

// Open opens or creates a DomainStore at path with the given tuning.
func Open(path string, t kv.Tuning) (*Store, error) {
	store, err := kv.Open(path, t)
	if err != nil {
		return nil, err
	}
	return &Store{kv: store}, nil
}

// OpenWith wraps an already-open kv.Store, used by tests with an
// in-memory fake.
func OpenWith(store kv.Store) *Store {
	return &Store{kv: store}
}

func (s *Store) Close() { s.kv.Close() }

// Get returns the state for d. ferrors.ErrCorruption is returned if the
// stored record fails validation (spec §7: Get surfaces corruption,
// unlike Iter which skips it).
func (s *Store) Get(d domain.Domain) (State, bool, error) {
	raw, found, err := s.kv.Get([]byte(d))
	if err != nil {
		return State{}, false, err
	}
	if !found {
		return State{}, false, nil
	}
	st, err := decode(raw)
	if err != nil {
		flog.Warn("domainstore: corrupt record for %v: %v", d, err)
		return State{}, false, ferrors.Corruption("domainstore.Get", err)
	}
	return st, true, nil
}

// Put writes state for d.
func (s *Store) Put(d domain.Domain, st State) error {
	raw, err := encode(st)
	if err != nil {
		return ferrors.Serialization("domainstore.Put", err)
	}
	return s.kv.Put([]byte(d), raw)
}

// Entry is one (Domain, State) pair yielded by Iter.
type Entry struct {
	Domain domain.Domain
	State  State
}

// Iter performs a full scan over the store in key order. It is not
// required to be a consistent snapshot (spec §5): concurrent writers
// may be partially observed. Individually corrupt records are skipped
// rather than aborting the scan (spec §7).
func (s *Store) Iter(fn func(Entry) bool) error {
	it := s.kv.NewIterator()
	defer it.Close()

	for it.Seek(nil); it.Valid(); it.Next() {
		st, err := decode(it.Value())
		if err != nil {
			flog.Warn("domainstore: skipping corrupt record for %v during iter: %v", string(it.Key()), err)
			continue
		}
		if !fn(Entry{Domain: domain.Domain(it.Key()), State: st}) {
			return nil
		}
	}
	return nil
}
