package frontier

import "github.com/NEOS-AI/stract-frontier/domain"

// UrlResponseKind enumerates the UrlResponse variants spec §6 lists.
// Only Redirected is interpreted by the Frontier; every other kind
// (e.g. a successful fetch, a fetch error) is recorded by collaborators
// outside this package and ignored here, per spec §6.
type UrlResponseKind int

const (
	Other UrlResponseKind = iota
	Redirected
)

// UrlResponse is one outcome a fetcher reports for a URL it attempted.
type UrlResponse struct {
	Kind UrlResponseKind
	// Url is the URL this response is about.
	Url domain.UrlString
	// NewUrl is the redirect target; only meaningful when Kind == Redirected.
	NewUrl domain.UrlString
}

// JobResponse is the fetcher's report back to the Frontier after
// working a Job (spec §6).
type JobResponse struct {
	Domain         domain.Domain
	DiscoveredUrls []domain.UrlString
	UrlResponses   []UrlResponse
}

// Job is one unit of fetch work handed to a fetcher (spec §6).
type Job struct {
	Domain       domain.Domain
	FetchSitemap bool
	Urls         []domain.UrlString
}
