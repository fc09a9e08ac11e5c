// Package redirectstore implements spec §4.1: the immutable-ish
// from->to URL redirect map. Writes disable the WAL because redirects
// are reconstructable from a re-crawl; a crash may lose the most recent
// redirects but never corrupt the store (spec §3 invariant 6: redirect
// writes never block the URL-state write path).
package redirectstore

import (
	"github.com/NEOS-AI/stract-frontier/domain"
	"github.com/NEOS-AI/stract-frontier/internal/ferrors"
	"github.com/NEOS-AI/stract-frontier/internal/kv"
)

// Store is RedirectStore from spec §4.1.
type Store struct {
	kv kv.Store
}

// Open opens or creates a RedirectStore at path with tuning t.
func Open(path string, t kv.Tuning) (*Store, error) {
	store, err := kv.Open(path, t)
	if err != nil {
		return nil, err
	}
	return &Store{kv: store}, nil
}

// OpenWith wraps an already-open kv.Store, used by tests.
func OpenWith(store kv.Store) *Store {
	return &Store{kv: store}
}

func (s *Store) Close() { s.kv.Close() }

// Put records that from redirects to to, last-write-wins.
func (s *Store) Put(from, to domain.UrlString) error {
	raw, err := encode(to)
	if err != nil {
		return ferrors.Serialization("redirectstore.Put", err)
	}
	return s.kv.Put([]byte(from), raw)
}

// Get returns the redirect target for from, if one is recorded.
func (s *Store) Get(from domain.UrlString) (domain.UrlString, bool, error) {
	raw, found, err := s.kv.Get([]byte(from))
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}
	to, err := decode(raw)
	if err != nil {
		return "", false, ferrors.Corruption("redirectstore.Get", err)
	}
	return to, true, nil
}
