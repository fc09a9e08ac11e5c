// Package urlshardstore implements spec §4.3: the per-(domain,shard)
// ordered mapping from URL to URL state. A shard is written and read as
// one value — the design's central tradeoff, since shards are bounded
// (at most URLSPerShard entries) so a whole-shard rewrite stays cheap
// and bulk reads beat per-URL random I/O during job preparation.
package urlshardstore

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/NEOS-AI/stract-frontier/domain"
	"github.com/NEOS-AI/stract-frontier/internal/ferrors"
	"github.com/NEOS-AI/stract-frontier/internal/flog"
	"github.com/NEOS-AI/stract-frontier/internal/kv"
)

// URLSPerShard bounds how many URLs a single shard holds before
// insert_urls rolls over to a new shard id (spec §3).
const URLSPerShard = 5000

// UrlStatus is UrlState.status from spec §3.
type UrlStatus int

const (
	Pending UrlStatus = iota
	Crawling
	Done
	Failed
)

func (s UrlStatus) String() string {
	switch s {
	case Crawling:
		return "Crawling"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Pending"
	}
}

// UrlState is UrlState from spec §3. FailedCode is only meaningful when
// Status == Failed, and 0 means "no code was recorded".
type UrlState struct {
	Weight     float64
	Status     UrlStatus
	FailedCode int
}

// Key identifies a shard: a domain's s-th bucket of URLs.
type Key struct {
	Domain  domain.Domain
	ShardID uint64
}

func (k Key) String() string { return fmt.Sprintf("%s#%d", k.Domain, k.ShardID) }

// Shard is the ordered mapping a shard key maps to. The map itself does
// not preserve iteration order in Go, but encodeShard always walks it in
// lexicographic key order so the on-disk form is deterministic (spec
// §6: "layout is endian-fixed").
type Shard map[domain.UrlString]UrlState

// Store is UrlShardStore from spec §4.3.
type Store struct {
	kv    kv.Store
	cache *lru.Cache[Key, Shard]
}

// Open opens or creates a UrlShardStore at path with tuning t (expected
// to have OptimizeFiltersForHits set, per spec §4.3) and an LRU of
// cacheSize decoded shards.
func Open(path string, t kv.Tuning, cacheSize int) (*Store, error) {
	store, err := kv.Open(path, t)
	if err != nil {
		return nil, err
	}
	return newStore(store, cacheSize), nil
}

// OpenWith wraps an already-open kv.Store, used by tests.
func OpenWith(store kv.Store, cacheSize int) *Store {
	return newStore(store, cacheSize)
}

func newStore(store kv.Store, cacheSize int) *Store {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, _ := lru.New[Key, Shard](cacheSize)
	return &Store{kv: store, cache: cache}
}

func (s *Store) Close() { s.kv.Close() }

func shardKeyBytes(k Key) []byte {
	// "<domain>\x00<shard_id big-endian>" keeps shards of the same
	// domain adjacent and ordered by id (newest shard = highest id) in
	// the engine's key order.
	b := make([]byte, 0, len(k.Domain)+1+8)
	b = append(b, k.Domain...)
	b = append(b, 0)
	b = append(b, byte(k.ShardID>>56), byte(k.ShardID>>48), byte(k.ShardID>>40), byte(k.ShardID>>32),
		byte(k.ShardID>>24), byte(k.ShardID>>16), byte(k.ShardID>>8), byte(k.ShardID))
	return b
}

// Get returns the shard at k, or an empty Shard if absent.
func (s *Store) Get(k Key) (Shard, error) {
	if sh, ok := s.cache.Get(k); ok {
		return sh, nil
	}

	raw, found, err := s.kv.Get(shardKeyBytes(k))
	if err != nil {
		return nil, err
	}
	if !found {
		return Shard{}, nil
	}

	sh, err := decodeShard(raw)
	if err != nil {
		flog.Warn("urlshardstore: corrupt shard %v: %v", k, err)
		return nil, ferrors.Corruption("urlshardstore.Get", err)
	}
	s.cache.Add(k, sh)
	return sh, nil
}

// Put writes the shard at k as a single value and replaces any cached
// decoding of it with sh.
func (s *Store) Put(k Key, sh Shard) error {
	raw, err := encodeShard(sh)
	if err != nil {
		return ferrors.Serialization("urlshardstore.Put", err)
	}
	if err := s.kv.Put(shardKeyBytes(k), raw); err != nil {
		return err
	}
	s.cache.Add(k, sh)
	return nil
}
