// Package domain canonicalizes URLs into the Domain and UrlString forms
// the Frontier keys its stores by. It plays the role walker's URL type
// plays in the teacher: ToplevelDomainPlusOne there is exactly Domain
// here, and Normalize there is exactly Canonicalize here.
package domain

import (
	"net"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
	"golang.org/x/net/publicsuffix"
)

// Domain is a canonicalized registrable domain (eTLD+1 in practice).
// Equality and ordering are byte-wise on this string.
type Domain string

// UrlString is a URL's canonical string form, used as the key inside a
// shard. Ordering is lexicographic on this string.
type UrlString string

// FromURL derives the Domain a *url.URL belongs to, the way
// walker.URL.ToplevelDomainPlusOne derives "bbc.co.uk" from
// "www.bbc.co.uk". A TLD missing from the public suffix list counts as a
// one-label suffix ("www.a.test" gives "a.test"). Hosts with no label in
// front of their suffix (e.g. "localhost") and bare IPs fall back to the
// host itself so that local/test crawls still group sensibly.
func FromURL(u *url.URL) Domain {
	host := strings.ToLower(u.Hostname())
	if net.ParseIP(host) != nil {
		return Domain(host)
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return Domain(host)
	}
	return Domain(etld1)
}

// Canonicalize normalizes u the way walker.URL.Normalize does (via
// purell), then returns the canonical string form used as a shard key.
func Canonicalize(u *url.URL) UrlString {
	c := *u
	purell.NormalizeURL(&c, purell.FlagsSafe|purell.FlagRemoveFragment)
	return UrlString(c.String())
}

// Parse parses and canonicalizes ref in one step, mirroring
// walker.ParseAndNormalizeURL.
func Parse(ref string) (Domain, UrlString, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", err
	}
	return FromURL(u), Canonicalize(u), nil
}

// SameDomain reports whether two Domains are the same registrable
// domain (byte-wise equality of their canonical forms).
func SameDomain(a, b Domain) bool {
	return a == b
}

// DomainOf parses u and returns the Domain it belongs to, the
// Domain::from(&Url) collaborator from spec §6 applied to an already
// canonical UrlString.
func DomainOf(u UrlString) (Domain, error) {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return "", err
	}
	return FromURL(parsed), nil
}
