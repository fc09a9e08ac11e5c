package domainstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NEOS-AI/stract-frontier/domain"
	"github.com/NEOS-AI/stract-frontier/internal/kv"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return OpenWith(kv.NewMemStore())
}

func TestGetPutRoundTrip(t *testing.T) {
	s := newTestStore(t)
	d := domain.Domain("example.com")

	_, found, err := s.Get(d)
	require.NoError(t, err)
	require.False(t, found)

	want := State{Weight: 3.5, Status: CrawlInProgress, MaxShardID: 2}
	require.NoError(t, s.Put(d, want))

	got, found, err := s.Get(d)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, want, got)
}

func TestIterSkipsCorruptRecordsAndStaysOrdered(t *testing.T) {
	mem := kv.NewMemStore()
	s := OpenWith(mem)

	require.NoError(t, s.Put(domain.Domain("a.test"), State{Weight: 1, MaxShardID: 0}))
	require.NoError(t, s.Put(domain.Domain("c.test"), State{Weight: 3, MaxShardID: 0}))
	require.NoError(t, mem.Put([]byte("b.test"), []byte("not a valid record")))

	var seen []domain.Domain
	require.NoError(t, s.Iter(func(e Entry) bool {
		seen = append(seen, e.Domain)
		return true
	}))

	require.Equal(t, []domain.Domain{"a.test", "c.test"}, seen)

	// Get on the same corrupt key surfaces Corruption rather than
	// silently skipping, per spec §7.
	_, _, err := s.Get(domain.Domain("b.test"))
	require.Error(t, err)
}

func TestIterStopsWhenCallbackReturnsFalse(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put(domain.Domain("a.test"), State{Weight: 1}))
	require.NoError(t, s.Put(domain.Domain("b.test"), State{Weight: 2}))

	count := 0
	require.NoError(t, s.Iter(func(Entry) bool {
		count++
		return false
	}))
	require.Equal(t, 1, count)
}
