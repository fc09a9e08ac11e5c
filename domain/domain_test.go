package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromURLStripsSubdomain(t *testing.T) {
	u, err := url.Parse("https://www.bbc.co.uk/news")
	require.NoError(t, err)
	require.Equal(t, Domain("bbc.co.uk"), FromURL(u))
}

func TestFromURLFallsBackOnUnregisteredHost(t *testing.T) {
	u, err := url.Parse("http://localhost:8080/x")
	require.NoError(t, err)
	require.Equal(t, Domain("localhost"), FromURL(u))
}

func TestCanonicalizeDropsFragment(t *testing.T) {
	u, err := url.Parse("HTTP://Example.com:80/a/../b#frag")
	require.NoError(t, err)
	got := Canonicalize(u)
	require.NotContains(t, string(got), "#frag")
}

func TestParseRoundTrip(t *testing.T) {
	d, u, err := Parse("https://sub.example.com/path?q=1")
	require.NoError(t, err)
	require.Equal(t, Domain("example.com"), d)
	require.Equal(t, UrlString("https://sub.example.com/path?q=1"), u)
}

func TestParseRejectsInvalidUrl(t *testing.T) {
	_, _, err := Parse("://not a url")
	require.Error(t, err)
}

func TestSameDomain(t *testing.T) {
	require.True(t, SameDomain(Domain("a.test"), Domain("a.test")))
	require.False(t, SameDomain(Domain("a.test"), Domain("b.test")))
}

func TestDomainOfDerivesDomainFromUrlString(t *testing.T) {
	d, err := DomainOf(UrlString("https://sub.example.com/path"))
	require.NoError(t, err)
	require.Equal(t, Domain("example.com"), d)
}
