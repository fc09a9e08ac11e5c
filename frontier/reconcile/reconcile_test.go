package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NEOS-AI/stract-frontier/domain"
	"github.com/NEOS-AI/stract-frontier/domainstore"
	"github.com/NEOS-AI/stract-frontier/frontier"
	"github.com/NEOS-AI/stract-frontier/urlshardstore"
)

func newTestFrontier(t *testing.T) *frontier.Frontier {
	t.Helper()
	dir := t.TempDir() + "/reconcile-test"
	f, err := frontier.Open(dir, frontier.DefaultTuning())
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestSweepResetsStaleInProgressDomainsAndCrawlingUrls(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertSeedUrls([]string{"https://a.test/1", "https://a.test/2", "https://b.test/1"}))

	picked, err := f.SampleDomains(1)
	require.NoError(t, err)
	require.Equal(t, []domain.Domain{"a.test"}, picked)

	_, err = f.PrepareJobs(picked, 1)
	require.NoError(t, err)

	domains, urls, err := Sweep(f)
	require.NoError(t, err)
	require.Equal(t, 1, domains)
	require.Equal(t, 1, urls)

	state, found, err := f.Domains().Get("a.test")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domainstore.Pending, state.Status)

	shard, err := f.Shards().Get(urlshardstore.Key{Domain: "a.test", ShardID: 0})
	require.NoError(t, err)
	for _, st := range shard {
		require.Equal(t, urlshardstore.Pending, st.Status)
	}
}

func TestSweepIsNoOpWhenNothingIsInProgress(t *testing.T) {
	f := newTestFrontier(t)
	require.NoError(t, f.InsertSeedUrls([]string{"https://a.test/1"}))

	domains, urls, err := Sweep(f)
	require.NoError(t, err)
	require.Equal(t, 0, domains)
	require.Equal(t, 0, urls)
}
