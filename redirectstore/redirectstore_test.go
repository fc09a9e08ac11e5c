package redirectstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NEOS-AI/stract-frontier/internal/kv"
)

func TestGetMissing(t *testing.T) {
	s := OpenWith(kv.NewMemStore())
	_, found, err := s.Get("https://a.test/p")
	require.NoError(t, err)
	require.False(t, found)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := OpenWith(kv.NewMemStore())
	require.NoError(t, s.Put("https://a.test/p", "https://a.test/q"))

	to, found, err := s.Get("https://a.test/p")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "https://a.test/q", string(to))
}

func TestPutIsLastWriteWins(t *testing.T) {
	s := OpenWith(kv.NewMemStore())
	require.NoError(t, s.Put("https://a.test/p", "https://a.test/q"))
	require.NoError(t, s.Put("https://a.test/p", "https://a.test/r"))

	to, found, err := s.Get("https://a.test/p")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "https://a.test/r", string(to))
}
