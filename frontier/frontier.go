// Package frontier composes DomainStore, UrlShardStore, RedirectStore
// and Sampler into the durable, politeness-aware crawl scheduler spec
// §4.5 describes. A crawl cycle drives it as:
//
//	domains := f.SampleDomains(n)
//	jobs := f.PrepareJobs(domains, k)
//	// hand jobs to fetchers, collect JobResponses
//	f.InsertUrls(responses)
//	f.SetDomainStatus(d, domainstore.Pending) // once a domain's job completes
//
// Frontier is not internally synchronized (spec §5): like walker's
// Datastore, which documents that callers must serialize ClaimNewHost
// and UnclaimHost through a single owner, a Frontier handle must be
// driven by a single goroutine or externally-mutexed caller. The
// underlying KV engine's own background compaction threads are the
// only concurrency this package's API exposes to callers.
package frontier

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/NEOS-AI/stract-frontier/domain"
	"github.com/NEOS-AI/stract-frontier/domainstore"
	"github.com/NEOS-AI/stract-frontier/internal/ferrors"
	"github.com/NEOS-AI/stract-frontier/internal/flog"
	"github.com/NEOS-AI/stract-frontier/internal/kv"
	"github.com/NEOS-AI/stract-frontier/redirectstore"
	"github.com/NEOS-AI/stract-frontier/sampler"
	"github.com/NEOS-AI/stract-frontier/urlshardstore"
)

// Tuning carries the KV-engine tuning knobs (spec §4.2/§4.3) plus the
// one Frontier-level knob that isn't a store concern: how many decoded
// shards UrlShardStore keeps warm in its LRU.
type Tuning struct {
	Domains    kv.Tuning
	Urls       kv.Tuning
	Redirects  kv.Tuning
	ShardCache int
}

// DefaultTuning returns the tuning spec §4.2/§4.3 mandate: point-lookup
// optimization, ribbon filter, 512 MiB write buffer, mmap reads/writes,
// universal compaction, no compression for all three stores, plus
// OptimizeFiltersForHits on UrlShardStore.
func DefaultTuning() Tuning {
	base := kv.DefaultTuning()
	return Tuning{
		Domains:    base,
		Urls:       base.WithFiltersOptimizedForHits(),
		Redirects:  base,
		ShardCache: 256,
	}
}

// Frontier is the façade from spec §4.5.
type Frontier struct {
	domains   *domainstore.Store
	shards    *urlshardstore.Store
	redirects *redirectstore.Store
	rng       *rand.Rand
}

// Open creates a new Frontier rooted at path. path must not exist or
// must be an empty directory (spec §5 Resource policy: "a guard against
// resuming into an unknown state"); opening twice on the same path fails with
// ferrors.ErrAlreadyExists (spec §8 Scenario F).
func Open(path string, t Tuning) (*Frontier, error) {
	if kv.PathExistsNonEmpty(path) {
		return nil, ferrors.AlreadyExists("frontier.Open", fmt.Errorf("path %q already exists", path))
	}
	return openAt(path, t)
}

// Resume reopens a Frontier previously created by Open, skipping the
// fresh-path guard. It exists for operational tools (frontierctl) that
// run one process per command against a long-lived frontier directory;
// a caller that resumes after an unclean shutdown should run
// frontier/reconcile.Sweep before trusting domain/url status again.
func Resume(path string, t Tuning) (*Frontier, error) {
	return openAt(path, t)
}

func openAt(path string, t Tuning) (*Frontier, error) {
	domainsDir := filepath.Join(path, "domains")
	urlsDir := filepath.Join(path, "urls")
	redirectsDir := filepath.Join(path, "redirects")

	for _, dir := range []string{domainsDir, urlsDir, redirectsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ferrors.Io("frontier.Open", err)
		}
	}

	ds, err := domainstore.Open(domainsDir, t.Domains)
	if err != nil {
		return nil, err
	}
	us, err := urlshardstore.Open(urlsDir, t.Urls, t.ShardCache)
	if err != nil {
		ds.Close()
		return nil, err
	}
	rs, err := redirectstore.Open(redirectsDir, t.Redirects)
	if err != nil {
		ds.Close()
		us.Close()
		return nil, err
	}

	return &Frontier{
		domains:   ds,
		shards:    us,
		redirects: rs,
		rng:       rand.New(rand.NewSource(1)),
	}, nil
}

// newForTest wires a Frontier directly over caller-supplied stores,
// bypassing the on-disk open guard; used by frontier_test.go.
func newForTest(ds *domainstore.Store, us *urlshardstore.Store, rs *redirectstore.Store) *Frontier {
	return &Frontier{domains: ds, shards: us, redirects: rs, rng: rand.New(rand.NewSource(1))}
}

// Close flushes and closes all three underlying stores.
func (f *Frontier) Close() {
	f.domains.Close()
	f.shards.Close()
	f.redirects.Close()
}

// Domains exposes the underlying DomainStore to collaborators outside
// this package (frontier/reconcile and frontierctl's stat) that need to walk
// or repair domain state directly rather than through a façade
// operation.
func (f *Frontier) Domains() *domainstore.Store { return f.domains }

// Shards exposes the underlying UrlShardStore to the same collaborators.
func (f *Frontier) Shards() *urlshardstore.Store { return f.shards }

// RedirectOf exposes RedirectStore.Get for scenario-D-style callers
// that want to resolve a redirect chain outside a crawl cycle.
func (f *Frontier) RedirectOf(from domain.UrlString) (domain.UrlString, bool, error) {
	return f.redirects.Get(from)
}

// InsertSeedUrls implements spec §4.5.1. It is idempotent on URL
// identity: repeated calls reset the domain's status to Pending and
// leave every seed URL in shard (d,0) Pending with weight 0, because
// seed state is authoritative. Other URLs already in shard (d,0) are
// kept as they are.
func (f *Frontier) InsertSeedUrls(urls []string) error {
	byDomain := make(map[domain.Domain][]domain.UrlString)
	for _, raw := range urls {
		d, u, err := domain.Parse(raw)
		if err != nil {
			flog.Warn("frontier: skipping unparseable seed url %q: %v", raw, err)
			continue
		}
		byDomain[d] = append(byDomain[d], u)
	}

	for d, urls := range byDomain {
		if err := f.domains.Put(d, domainstore.State{Weight: 0, Status: domainstore.Pending, MaxShardID: 0}); err != nil {
			return err
		}

		key := urlshardstore.Key{Domain: d, ShardID: 0}
		shard, err := f.shards.Get(key)
		if err != nil {
			return err
		}
		for _, u := range urls {
			shard[u] = urlshardstore.UrlState{Weight: 0, Status: urlshardstore.Pending}
		}
		if err := f.shards.Put(key, shard); err != nil {
			return err
		}
	}
	return nil
}

// occurrence is one discovered-URL mention, tagged with whether the
// URL's own domain differs from the domain whose fetch discovered it.
type occurrence struct {
	url         domain.UrlString
	crossDomain bool
}

// InsertUrls implements spec §4.5.2's two-pass fold of crawler results
// back into the frontier.
func (f *Frontier) InsertUrls(responses []JobResponse) error {
	byDomain := make(map[domain.Domain][]occurrence)

	for _, r := range responses {
		for _, du := range r.DiscoveredUrls {
			targetDomain, err := domain.DomainOf(du)
			if err != nil {
				flog.Warn("frontier: skipping discovered url with unresolvable domain %q: %v", du, err)
				continue
			}
			byDomain[targetDomain] = append(byDomain[targetDomain], occurrence{
				url:         du,
				crossDomain: targetDomain != r.Domain,
			})
		}

		for _, ur := range r.UrlResponses {
			if ur.Kind != Redirected {
				continue
			}
			if err := f.redirects.Put(ur.Url, ur.NewUrl); err != nil {
				return err
			}
		}
	}

	for d, occs := range byDomain {
		if err := f.insertUrlsForDomain(d, occs); err != nil {
			return err
		}
	}
	return nil
}

// insertUrlsForDomain runs spec §4.5.2 Pass 2 for a single target
// domain: load-or-create the DomainState, advance shards on overflow as
// new keys arrive (not merely once per call — a single large batch can
// roll over more than one shard boundary, spec §8 Scenario B), and
// track the domain's weight as the running max across every URL
// touched regardless of which shard it landed in.
func (f *Frontier) insertUrlsForDomain(d domain.Domain, occs []occurrence) error {
	state, found, err := f.domains.Get(d)
	if err != nil {
		return err
	}
	if !found {
		state = domainstore.State{Weight: 0, Status: domainstore.Pending, MaxShardID: 0}
	}

	shardID := state.MaxShardID
	shard, err := f.shards.Get(urlshardstore.Key{Domain: d, ShardID: shardID})
	if err != nil {
		return err
	}

	flush := func() error {
		return f.shards.Put(urlshardstore.Key{Domain: d, ShardID: shardID}, shard)
	}

	for _, occ := range occs {
		existing, ok := shard[occ.url]
		if !ok && len(shard) >= urlshardstore.URLSPerShard {
			if err := flush(); err != nil {
				return err
			}
			shardID++
			shard = urlshardstore.Shard{}
			ok = false
		}

		st := urlshardstore.UrlState{Status: urlshardstore.Pending}
		if ok {
			st = existing // edge case: Crawling/Done/Failed keep their status, only weight moves
		}
		if occ.crossDomain {
			st.Weight += 1.0
		}
		shard[occ.url] = st

		if st.Weight > state.Weight {
			state.Weight = st.Weight
		}
	}

	if err := flush(); err != nil {
		return err
	}
	state.MaxShardID = shardID
	return f.domains.Put(d, state)
}

// SetDomainStatus implements spec §4.5.3. An unknown domain is created
// with weight 0 and max_shard_id 0, carrying the new status — the
// caller is trusted, there is no status-transition validation (spec §9
// Open Questions: this is intentional, not an oversight).
func (f *Frontier) SetDomainStatus(d domain.Domain, status domainstore.Status) error {
	state, found, err := f.domains.Get(d)
	if err != nil {
		return err
	}
	if !found {
		state = domainstore.State{Weight: 0, MaxShardID: 0}
	}
	state.Status = status
	return f.domains.Put(d, state)
}

// SampleDomains implements spec §4.5.4. It is the serialization point
// for politeness: a CrawlInProgress domain is never returned again
// until SetDomainStatus flips it back to Pending.
func (f *Frontier) SampleDomains(n int) ([]domain.Domain, error) {
	var candidates []sampler.Weighted[domain.Domain]
	err := f.domains.Iter(func(e domainstore.Entry) bool {
		if e.State.Status == domainstore.Pending {
			candidates = append(candidates, sampler.Weighted[domain.Domain]{Item: e.Domain, Weight: e.State.Weight})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	picked := sampler.Sample(candidates, n, f.rng)
	for _, d := range picked {
		state, found, err := f.domains.Get(d)
		if err != nil {
			return nil, err
		}
		if !found {
			// Deleted between Iter and here; nothing left to flip.
			continue
		}
		state.Status = domainstore.CrawlInProgress
		if err := f.domains.Put(d, state); err != nil {
			return nil, err
		}
	}
	return picked, nil
}

// PrepareJobs implements spec §4.5.5, including the documented caveat:
// the domain-weight recompute in step 5 scans only the selected shard,
// not every shard of the domain. This is preserved deliberately (spec
// §9 Open Questions) rather than fixed, so DomainState.weight can
// understate the true max across a domain's other shards between calls.
func (f *Frontier) PrepareJobs(domains []domain.Domain, k int) ([]Job, error) {
	jobs := make([]Job, 0, len(domains))

	for _, d := range domains {
		state, found, err := f.domains.Get(d)
		if err != nil {
			return nil, err
		}
		if !found {
			flog.Warn("frontier: PrepareJobs skipping unknown domain %v", d)
			continue
		}

		// Uniform rotation over shards gives every URL a fair chance
		// without scanning all shards of the domain per call (spec
		// §4.5.5 rationale); weighted sampling within the chosen shard
		// restores priority among its URLs.
		shardID := uint64(f.rng.Int63n(int64(state.MaxShardID) + 1))
		key := urlshardstore.Key{Domain: d, ShardID: shardID}
		shard, err := f.shards.Get(key)
		if err != nil {
			return nil, err
		}

		var pending []sampler.Weighted[domain.UrlString]
		for u, st := range shard {
			if st.Status == urlshardstore.Pending {
				pending = append(pending, sampler.Weighted[domain.UrlString]{Item: u, Weight: st.Weight})
			}
		}

		sampled := sampler.Sample(pending, k, f.rng)
		for _, u := range sampled {
			st := shard[u]
			st.Status = urlshardstore.Crawling
			shard[u] = st
		}

		maxWeight := 0.0
		for _, st := range shard {
			if st.Status == urlshardstore.Pending && st.Weight > maxWeight {
				maxWeight = st.Weight
			}
		}
		state.Weight = maxWeight

		if err := f.domains.Put(d, state); err != nil {
			return nil, err
		}
		if err := f.shards.Put(key, shard); err != nil {
			return nil, err
		}

		jobs = append(jobs, Job{Domain: d, FetchSitemap: false, Urls: sampled})
	}

	return jobs, nil
}
