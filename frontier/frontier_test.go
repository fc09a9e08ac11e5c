package frontier

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NEOS-AI/stract-frontier/domain"
	"github.com/NEOS-AI/stract-frontier/domainstore"
	"github.com/NEOS-AI/stract-frontier/internal/kv"
	"github.com/NEOS-AI/stract-frontier/redirectstore"
	"github.com/NEOS-AI/stract-frontier/urlshardstore"
)

func newTestFrontier(t *testing.T) *Frontier {
	t.Helper()
	ds := domainstore.OpenWith(kv.NewMemStore())
	us := urlshardstore.OpenWith(kv.NewMemStore(), 16)
	rs := redirectstore.OpenWith(kv.NewMemStore())
	f := newForTest(ds, us, rs)
	f.rng = rand.New(rand.NewSource(42))
	return f
}

func TestInsertSeedUrlsCreatesPendingDomains(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertSeedUrls([]string{
		"https://a.test/1",
		"https://a.test/2",
		"https://b.test/1",
	}))

	state, found, err := f.domains.Get(domain.Domain("a.test"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domainstore.Pending, state.Status)
	require.Equal(t, 0.0, state.Weight)
	require.Equal(t, uint64(0), state.MaxShardID)

	shard, err := f.shards.Get(urlshardstore.Key{Domain: "a.test", ShardID: 0})
	require.NoError(t, err)
	require.Len(t, shard, 2)
}

// TestInsertSeedUrlsIsIdempotent covers spec §8 Scenario A: re-seeding
// resets status to Pending even if a prior crawl had advanced it.
func TestInsertSeedUrlsIsIdempotent(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertSeedUrls([]string{"https://a.test/1"}))
	require.NoError(t, f.SetDomainStatus("a.test", domainstore.CrawlInProgress))

	require.NoError(t, f.InsertSeedUrls([]string{"https://a.test/1"}))

	state, found, err := f.domains.Get(domain.Domain("a.test"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domainstore.Pending, state.Status)
}

// TestInsertUrlsRollsOverShardOnOverflow reproduces spec §8 Scenario B:
// a domain seeded with one URL in shard 0 receives 5001 newly
// discovered cross-domain URLs; shard 0 fills to capacity and the
// overflow lands in shard 1.
func TestInsertUrlsRollsOverShardOnOverflow(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertSeedUrls([]string{"https://a.test/seed"}))

	discovered := make([]domain.UrlString, 0, 5001)
	for i := 0; i < 5001; i++ {
		discovered = append(discovered, domain.UrlString(
			"https://a.test/p"+strconv.Itoa(i)))
	}

	require.NoError(t, f.InsertUrls([]JobResponse{
		{Domain: "other.test", DiscoveredUrls: discovered},
	}))

	state, found, err := f.domains.Get(domain.Domain("a.test"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(1), state.MaxShardID)

	shard0, err := f.shards.Get(urlshardstore.Key{Domain: "a.test", ShardID: 0})
	require.NoError(t, err)
	require.Len(t, shard0, urlshardstore.URLSPerShard)

	shard1, err := f.shards.Get(urlshardstore.Key{Domain: "a.test", ShardID: 1})
	require.NoError(t, err)
	require.Len(t, shard1, 2)
}

// TestInsertUrlsTracksCrossDomainWeight covers the weight side of
// spec §4.5.2: a URL discovered from a different domain than its own
// gets weight 1, one discovered from a fetch of its own domain gets
// weight 0, and DomainState.Weight tracks the running max.
func TestInsertUrlsTracksCrossDomainWeight(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertUrls([]JobResponse{
		{Domain: "a.test", DiscoveredUrls: []domain.UrlString{"https://b.test/x"}},
		{Domain: "b.test", DiscoveredUrls: []domain.UrlString{"https://b.test/y"}},
	}))

	shard, err := f.shards.Get(urlshardstore.Key{Domain: "b.test", ShardID: 0})
	require.NoError(t, err)
	require.Equal(t, 1.0, shard["https://b.test/x"].Weight)
	require.Equal(t, 0.0, shard["https://b.test/y"].Weight)

	state, found, err := f.domains.Get(domain.Domain("b.test"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1.0, state.Weight)
}

func TestInsertUrlsRecordsRedirects(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertUrls([]JobResponse{
		{
			Domain: "a.test",
			UrlResponses: []UrlResponse{
				{Kind: Redirected, Url: "https://a.test/old", NewUrl: "https://a.test/new"},
				{Kind: Other, Url: "https://a.test/ok"},
			},
		},
	}))

	to, found, err := f.redirects.Get("https://a.test/old")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.UrlString("https://a.test/new"), to)

	_, found, err = f.redirects.Get("https://a.test/ok")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSampleDomainsOnlyReturnsPendingAndFlipsStatus(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertSeedUrls([]string{"https://a.test/1", "https://b.test/1"}))
	require.NoError(t, f.SetDomainStatus("b.test", domainstore.CrawlInProgress))

	picked, err := f.SampleDomains(5)
	require.NoError(t, err)
	require.Equal(t, []domain.Domain{"a.test"}, picked)

	state, _, err := f.domains.Get(domain.Domain("a.test"))
	require.NoError(t, err)
	require.Equal(t, domainstore.CrawlInProgress, state.Status)

	picked, err = f.SampleDomains(5)
	require.NoError(t, err)
	require.Empty(t, picked)
}

// TestSampleDomainsSizeIsBoundedByAvailableCount covers spec §8
// testable property 2: sample size == min(k, n).
func TestSampleDomainsSizeIsBoundedByAvailableCount(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertSeedUrls([]string{"https://a.test/1", "https://b.test/1", "https://c.test/1"}))

	picked, err := f.SampleDomains(2)
	require.NoError(t, err)
	require.Len(t, picked, 2)
}

func TestPrepareJobsMarksUrlsCrawlingAndOmitsThemNextTime(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertSeedUrls([]string{"https://a.test/1", "https://a.test/2"}))

	jobs, err := f.PrepareJobs([]domain.Domain{"a.test"}, 1)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Len(t, jobs[0].Urls, 1)

	shard, err := f.shards.Get(urlshardstore.Key{Domain: "a.test", ShardID: 0})
	require.NoError(t, err)
	require.Equal(t, urlshardstore.Crawling, shard[jobs[0].Urls[0]].Status)

	jobs2, err := f.PrepareJobs([]domain.Domain{"a.test"}, 5)
	require.NoError(t, err)
	require.Len(t, jobs2[0].Urls, 1)
	require.NotEqual(t, jobs[0].Urls[0], jobs2[0].Urls[0])
}

func TestPrepareJobsSkipsUnknownDomain(t *testing.T) {
	f := newTestFrontier(t)
	jobs, err := f.PrepareJobs([]domain.Domain{"ghost.test"}, 5)
	require.NoError(t, err)
	require.Empty(t, jobs)
}

// TestOpenTwiceFails covers spec §8 Scenario F.
func TestOpenTwiceFails(t *testing.T) {
	dir := t.TempDir() + "/frontier-reopen-guard"
	f, err := Open(dir, DefaultTuning())
	require.NoError(t, err)
	f.Close()

	_, err = Open(dir, DefaultTuning())
	require.Error(t, err)
}
