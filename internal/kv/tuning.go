package kv

// CompactionStyle mirrors the subset of RocksDB compaction styles the
// Frontier cares about; Universal is the default because the write
// pattern here is write-heavy: whole shards and domain states are
// rewritten under the same key on every insert.
type CompactionStyle int

const (
	CompactionUniversal CompactionStyle = iota
	CompactionLevel
)

// Tuning carries the store tuning spec §4.2/§4.3 require. DomainStore and
// UrlShardStore both start from the same defaults; UrlShardStore turns on
// OptimizeFiltersForHits on top.
type Tuning struct {
	// WriteBufferSize is the memtable size before a flush, in bytes.
	// Spec requires "large" (~512 MiB) because this store is the hot
	// path of scheduling.
	WriteBufferSize uint64

	// BlockCacheSize sizes the shared block cache used by the
	// block-based table factory.
	BlockCacheSize uint64

	// UseRibbonFilter selects a Ribbon filter policy over a classic
	// Bloom filter; both are "ribbon/Bloom-style" per spec §4.2.
	UseRibbonFilter bool

	// BitsPerKey controls the filter's false-positive rate.
	BitsPerKey float64

	// OptimizeForPointLookup engages RocksDB's point-lookup tuning
	// (larger block cache, no compression, format_version 4 tables).
	OptimizeForPointLookup bool

	// OptimizeFiltersForHits is set on UrlShardStore, where most
	// lookups are expected to hit (spec §4.3).
	OptimizeFiltersForHits bool

	CompactionStyle CompactionStyle

	// AllowMmapReads/Writes are permitted per spec §4.2; RocksDB
	// defaults to false for both.
	AllowMmapReads  bool
	AllowMmapWrites bool

	// DisableWAL applies to every write issued through this Store.
	// Spec requires this on all three stores (crash may lose the tail
	// of writes since the last memtable flush, but never corrupt).
	DisableWAL bool
}

// DefaultTuning returns the tuning spec §4.2 mandates for DomainStore;
// UrlShardStore adjusts it via WithFiltersOptimizedForHits below, and
// RedirectStore uses it unchanged.
func DefaultTuning() Tuning {
	return Tuning{
		WriteBufferSize:        512 << 20,
		BlockCacheSize:         256 << 20,
		UseRibbonFilter:        true,
		BitsPerKey:             10,
		OptimizeForPointLookup: true,
		CompactionStyle:        CompactionUniversal,
		AllowMmapReads:         true,
		AllowMmapWrites:        true,
		DisableWAL:             true,
	}
}

// WithFiltersOptimizedForHits returns a copy of t with
// OptimizeFiltersForHits set, used by UrlShardStore.
func (t Tuning) WithFiltersOptimizedForHits() Tuning {
	t.OptimizeFiltersForHits = true
	return t
}
