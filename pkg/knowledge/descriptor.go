// Package knowledge holds the static catalog of upstream API-Football v3
// endpoints: required and optional parameters, the data sections each one
// returns, enrichment/replacement relations the planner uses to collapse
// redundant calls, and the caching policy the cache derives TTLs from.
// The catalog is immutable after construction and freely shareable.
package knowledge

// Freshness describes how quickly an endpoint's data goes stale.
type Freshness string

const (
	// FreshnessStatic never changes (countries, timezones).
	FreshnessStatic Freshness = "static"
	// FreshnessSeasonal changes between seasons (squads, league metadata).
	FreshnessSeasonal Freshness = "seasonal"
	// FreshnessMatchBound changes around fixtures (lineups, standings).
	FreshnessMatchBound Freshness = "match_bound"
	// FreshnessLive changes in real time during a match.
	FreshnessLive Freshness = "live"
)

// IsValid checks if the freshness value is known.
func (f Freshness) IsValid() bool {
	switch f {
	case FreshnessStatic, FreshnessSeasonal, FreshnessMatchBound, FreshnessLive:
		return true
	default:
		return false
	}
}

// CachePolicy selects the TTL rule applied when caching an endpoint's data.
type CachePolicy string

const (
	// CacheIndefinite stores without expiry.
	CacheIndefinite CachePolicy = "indefinite"
	// CacheLongTTL stores for 24 hours.
	CacheLongTTL CachePolicy = "long_ttl"
	// CacheShortTTL stores for 10 minutes.
	CacheShortTTL CachePolicy = "short_ttl"
	// CacheNone skips the cache entirely.
	CacheNone CachePolicy = "no_cache"
	// CacheMatchStatusAdaptive picks the TTL from the fixture's status:
	// seconds while live, minutes pre-match, forever once finished.
	CacheMatchStatusAdaptive CachePolicy = "match_status_adaptive"
)

// IsValid checks if the cache policy is known.
func (p CachePolicy) IsValid() bool {
	switch p {
	case CacheIndefinite, CacheLongTTL, CacheShortTTL, CacheNone, CacheMatchStatusAdaptive:
		return true
	default:
		return false
	}
}

// Descriptor identifies one upstream endpoint and its planning metadata.
type Descriptor struct {
	// Name is the unique catalog key (e.g. "fixtures_events").
	Name string
	// PathTemplate is the upstream path with {param} holes; parameters not
	// consumed by the template are sent as query parameters.
	PathTemplate string

	RequiredParams []string
	OptionalParams []string

	// ReturnedSections labels the data blocks the endpoint populates
	// (events, lineups, statistics, players, predictions, standings, ...).
	ReturnedSections []string

	// IsEnriched marks composite endpoints whose single response covers
	// sections that would otherwise require separate calls.
	IsEnriched bool
	// EnrichedSections is the subset of ReturnedSections that substitutes
	// for other endpoints. Always a subset of ReturnedSections.
	EnrichedSections []string
	// CanReplace lists endpoint names made redundant when this one is chosen.
	CanReplace []string

	Freshness   Freshness
	CachePolicy CachePolicy

	// APICost is a planning heuristic only (default 1).
	APICost int

	// UseCases is human-written search text matched by SearchByUseCase.
	UseCases []string
}

// Requires reports whether the endpoint declares param as required.
func (d *Descriptor) Requires(param string) bool {
	for _, p := range d.RequiredParams {
		if p == param {
			return true
		}
	}
	return false
}

// Returns reports whether the endpoint populates the given section.
func (d *Descriptor) Returns(section string) bool {
	for _, s := range d.ReturnedSections {
		if s == section {
			return true
		}
	}
	return false
}
