package knowledge

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEndpointNotFound indicates the endpoint is not in the catalog.
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrInvalidCatalog indicates the catalog violates a construction
	// invariant (duplicate name, dangling can_replace reference, enriched
	// sections outside returned sections). This is a programmer error.
	ErrInvalidCatalog = errors.New("invalid endpoint catalog")
)

// TTL sentinels and fixed durations, in seconds.
const (
	// TTLNone means "do not cache".
	TTLNone = 0
	// TTLForever means "store without expiry".
	TTLForever = -1

	ttlLong     = 86400
	ttlShort    = 600
	ttlLive     = 30
	ttlPreMatch = 600
	ttlDefault  = 300
)

// Match-status groups driving the adaptive TTL rules.
var (
	finishedStatuses = map[string]bool{
		"FT": true, "AET": true, "PEN": true, "CANC": true,
		"ABD": true, "AWD": true, "WO": true,
	}
	liveStatuses = map[string]bool{
		"LIVE": true, "1H": true, "2H": true, "HT": true,
		"ET": true, "BT": true, "P": true,
	}
	preMatchStatuses = map[string]bool{
		"NS": true, "TBD": true, "PST": true, "SUSP": true, "INT": true,
	}
)

// IsFinishedStatus reports whether the fixture status is terminal.
func IsFinishedStatus(status string) bool { return finishedStatuses[status] }

// IsLiveStatus reports whether the fixture is in play.
func IsLiveStatus(status string) bool { return liveStatuses[status] }

// Base is the endpoint knowledge base. Immutable after construction.
type Base struct {
	byName  map[string]*Descriptor
	ordered []*Descriptor
}

// NewBase builds a knowledge base from the given descriptors and validates
// the catalog invariants. Descriptor order is preserved: it is the final
// tie-break for planner decisions.
func NewBase(descriptors []Descriptor) (*Base, error) {
	b := &Base{
		byName:  make(map[string]*Descriptor, len(descriptors)),
		ordered: make([]*Descriptor, 0, len(descriptors)),
	}
	for i := range descriptors {
		d := descriptors[i]
		if d.Name == "" {
			return nil, fmt.Errorf("%w: descriptor %d has no name", ErrInvalidCatalog, i)
		}
		if _, exists := b.byName[d.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate endpoint %q", ErrInvalidCatalog, d.Name)
		}
		if d.APICost == 0 {
			d.APICost = 1
		}
		if !d.Freshness.IsValid() {
			return nil, fmt.Errorf("%w: endpoint %q: unknown freshness %q",
				ErrInvalidCatalog, d.Name, d.Freshness)
		}
		if !d.CachePolicy.IsValid() {
			return nil, fmt.Errorf("%w: endpoint %q: unknown cache policy %q",
				ErrInvalidCatalog, d.Name, d.CachePolicy)
		}
		if d.IsEnriched {
			for _, s := range d.EnrichedSections {
				if !d.Returns(s) {
					return nil, fmt.Errorf(
						"%w: endpoint %q: enriched section %q not in returned sections",
						ErrInvalidCatalog, d.Name, s)
				}
			}
		}
		b.byName[d.Name] = &d
		b.ordered = append(b.ordered, &d)
	}

	// can_replace may only reference catalog entries.
	for _, d := range b.ordered {
		for _, name := range d.CanReplace {
			if _, ok := b.byName[name]; !ok {
				return nil, fmt.Errorf("%w: endpoint %q replaces unknown endpoint %q",
					ErrInvalidCatalog, d.Name, name)
			}
		}
	}
	return b, nil
}

// NewDefaultBase builds the knowledge base from the built-in API-Football
// catalog. Panics on catalog errors: the built-in catalog is compiled-in data
// and a broken one cannot be recovered from at runtime.
func NewDefaultBase() *Base {
	b, err := NewBase(builtinCatalog())
	if err != nil {
		panic(err)
	}
	return b
}

// Get returns the descriptor for name.
func (b *Base) Get(name string) (*Descriptor, error) {
	d, ok := b.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEndpointNotFound, name)
	}
	return d, nil
}

// All returns every descriptor in registration order.
func (b *Base) All() []*Descriptor {
	out := make([]*Descriptor, len(b.ordered))
	copy(out, b.ordered)
	return out
}

// Len returns the catalog size.
func (b *Base) Len() int { return len(b.ordered) }

// SearchByUseCase returns descriptors whose use-case text contains the query,
// case-insensitively, unique, in registration order.
func (b *Base) SearchByUseCase(query string) []*Descriptor {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []*Descriptor
	for _, d := range b.ordered {
		for _, uc := range d.UseCases {
			if strings.Contains(strings.ToLower(uc), query) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Enriched returns the composite endpoints, in registration order.
func (b *Base) Enriched() []*Descriptor {
	var out []*Descriptor
	for _, d := range b.ordered {
		if d.IsEnriched {
			out = append(out, d)
		}
	}
	return out
}

// CacheTTLSeconds computes the effective TTL in seconds for caching the named
// endpoint's data. matchStatus may be empty when the data is not fixture
// bound. Returns TTLNone (0) for "do not cache" and TTLForever (-1) for
// "store without expiry". Unknown endpoints get a conservative default.
func (b *Base) CacheTTLSeconds(name, matchStatus string) int {
	d, ok := b.byName[name]
	if !ok {
		return ttlDefault
	}
	if d.CachePolicy == CacheNone {
		return TTLNone
	}
	// Finished matches never change again, whatever the policy says.
	if d.CachePolicy == CacheIndefinite || finishedStatuses[matchStatus] {
		return TTLForever
	}
	switch d.CachePolicy {
	case CacheLongTTL:
		return ttlLong
	case CacheShortTTL:
		return ttlShort
	case CacheMatchStatusAdaptive:
		if liveStatuses[matchStatus] {
			return ttlLive
		}
		if preMatchStatuses[matchStatus] {
			return ttlPreMatch
		}
		return ttlDefault
	default:
		return ttlDefault
	}
}

// CacheTTL is CacheTTLSeconds as a duration. The sentinels are preserved:
// 0 means "do not cache" and -1ns is never returned (-1s means no expiry).
func (b *Base) CacheTTL(name, matchStatus string) time.Duration {
	return time.Duration(b.CacheTTLSeconds(name, matchStatus)) * time.Second
}
