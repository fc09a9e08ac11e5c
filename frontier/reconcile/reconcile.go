// Package reconcile implements the crash-recovery sweep
// util/cleandb.go's comment promised and never built: "auto-reset
// domain segments based on claim time." A Frontier that crashes while
// a domain is CrawlInProgress, or while individual URLs are Crawling,
// leaves that state behind forever — nothing inside the frontier
// package itself ever un-claims it, by design (spec §5: Frontier is not
// responsible for detecting its own caller's death).
//
// Sweep is the explicit, operator-invoked fix: run it once at process
// start, before the first SampleDomains call, and anything left
// mid-flight by a previous crashed process is returned to Pending.
package reconcile

import (
	"github.com/NEOS-AI/stract-frontier/domainstore"
	"github.com/NEOS-AI/stract-frontier/frontier"
	"github.com/NEOS-AI/stract-frontier/internal/flog"
	"github.com/NEOS-AI/stract-frontier/urlshardstore"
)

// Sweep resets every CrawlInProgress domain to Pending, and every
// Crawling URL in every shard up to that domain's MaxShardID back to
// Pending. It returns the number of domains and URLs it reset.
//
// Sweep is not safe to run concurrently with SampleDomains or
// PrepareJobs against the same Frontier (spec §5: the whole façade is
// single-caller); it is meant to run once, before a crawl resumes.
func Sweep(f *frontier.Frontier) (domains int, urls int, err error) {
	var stale []domainstore.Entry
	err = f.Domains().Iter(func(e domainstore.Entry) bool {
		if e.State.Status == domainstore.CrawlInProgress {
			stale = append(stale, e)
		}
		return true
	})
	if err != nil {
		return 0, 0, err
	}

	for _, e := range stale {
		n, err := resetDomainUrls(f, e)
		if err != nil {
			return domains, urls, err
		}
		urls += n

		e.State.Status = domainstore.Pending
		if err := f.Domains().Put(e.Domain, e.State); err != nil {
			return domains, urls, err
		}
		domains++
	}

	flog.Info("reconcile: reset %d domains and %d urls", domains, urls)
	return domains, urls, nil
}

// resetDomainUrls walks every shard of e.Domain up to MaxShardID and
// flips any Crawling entry back to Pending, returning how many it
// changed.
func resetDomainUrls(f *frontier.Frontier, e domainstore.Entry) (int, error) {
	reset := 0
	for shardID := uint64(0); shardID <= e.State.MaxShardID; shardID++ {
		key := urlshardstore.Key{Domain: e.Domain, ShardID: shardID}
		shard, err := f.Shards().Get(key)
		if err != nil {
			return reset, err
		}
		if len(shard) == 0 {
			continue
		}

		changed := false
		for u, st := range shard {
			if st.Status == urlshardstore.Crawling {
				st.Status = urlshardstore.Pending
				shard[u] = st
				changed = true
				reset++
			}
		}
		if changed {
			if err := f.Shards().Put(key, shard); err != nil {
				return reset, err
			}
		}
	}
	return reset, nil
}
