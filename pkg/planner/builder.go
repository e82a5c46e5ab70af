package planner

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/lucide-ai/lucide/pkg/cache"
	"github.com/lucide-ai/lucide/pkg/knowledge"
	"github.com/lucide-ai/lucide/pkg/models"
	"github.com/lucide-ai/lucide/pkg/normalize"
)

// builder accumulates one plan. Call IDs are assigned eagerly in creation
// order; since resolvers are always created before their dependents, creation
// order is a topological order.
type builder struct {
	ctx   context.Context
	kb    *knowledge.Base
	cache *cache.Cache
	sctx  *models.StructuredContext
	vr    *models.ValidationResult
	now   time.Time

	calls      []models.EndpointCall
	prefetched []models.PrefetchedResult
	// resolvers deduplicated by endpoint+literal-params signature.
	resolverIDs map[string]string
	// fixture resolution is shared by every fixture-keyed call in the plan.
	fixtureParam *models.ParamValue
	fixtureDeps  []string
}

func (b *builder) addCall(endpoint string, params map[string]models.ParamValue, deps []string) string {
	id := fmt.Sprintf("call_%d", len(b.calls))
	b.calls = append(b.calls, models.EndpointCall{
		CallID:       id,
		EndpointName: endpoint,
		Params:       params,
		DependsOn:    deps,
	})
	return id
}

// addResolver adds a dependency-free resolver call once per unique
// (endpoint, params) pair and returns its call ID.
func (b *builder) addResolver(endpoint string, params map[string]models.ParamValue) string {
	sig := endpoint
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	// Deterministic signature independent of map order.
	sort.Strings(keys)
	for _, k := range keys {
		sig += "|" + k + "=" + params[k].Placeholder()
	}
	if id, ok := b.resolverIDs[sig]; ok {
		return id
	}
	id := b.addCall(endpoint, params, nil)
	b.resolverIDs[sig] = id
	return id
}

// teamRef returns the team-id parameter for the team at position idx in the
// entity list, plus the call IDs it depends on. A caller-pinned team ID short
// circuits resolution; otherwise a teams_search resolver is injected.
func (b *builder) teamRef(idx int) (models.ParamValue, []string) {
	teams := b.vr.Entities.Teams
	// The pinned team occupies position 0 after the validator's override.
	if idx == 0 && b.sctx != nil && b.sctx.TeamID != 0 {
		return models.Literal(b.sctx.TeamID), nil
	}
	if idx >= len(teams) {
		return models.ParamValue{}, nil
	}
	id := b.addResolver(knowledge.EndpointTeamsSearch, map[string]models.ParamValue{
		"search": models.Literal(teams[idx].Canonical),
	})
	return models.Reference(id), []string{id}
}

// leagueValue resolves the league parameter: pinned ID, then the embedded
// league table, then a leagues_search resolver. ok is false when no league
// is available at all.
func (b *builder) leagueValue() (models.ParamValue, []string, bool) {
	if b.sctx != nil && b.sctx.LeagueID != 0 {
		return models.Literal(b.sctx.LeagueID), nil, true
	}
	if len(b.vr.Entities.Leagues) == 0 {
		return models.ParamValue{}, nil, false
	}
	name := b.vr.Entities.Leagues[0].Canonical
	if id, ok := normalize.LeagueID(name); ok {
		return models.Literal(id), nil, true
	}
	callID := b.addResolver(knowledge.EndpointLeaguesSearch, map[string]models.ParamValue{
		"search": models.Literal(name),
	})
	return models.Reference(callID), []string{callID}, true
}

// leagueProbe reports whether a league is resolvable without creating any
// call. Used to decide between league-scoped and league-free candidates.
func (b *builder) leagueProbe() (string, int, bool) {
	if b.sctx != nil && b.sctx.LeagueID != 0 {
		return b.sctx.League, b.sctx.LeagueID, true
	}
	if len(b.vr.Entities.Leagues) == 0 {
		return "", 0, false
	}
	name := b.vr.Entities.Leagues[0].Canonical
	if id, ok := normalize.LeagueID(name); ok {
		return name, id, true
	}
	// Resolvable through a leagues_search call.
	return name, 0, true
}

// fixtureRef resolves the fixture-id parameter: pinned fixture ID, or a
// fixtures_search resolver keyed by the teams and the question date.
func (b *builder) fixtureRef() (models.ParamValue, []string) {
	if b.sctx != nil && b.sctx.FixtureID != 0 {
		return models.Literal(b.sctx.FixtureID), nil
	}
	if b.fixtureParam != nil {
		return *b.fixtureParam, b.fixtureDeps
	}

	params := map[string]models.ParamValue{
		"date": models.Literal(b.questionDate()),
	}
	var deps []string

	teamParam, teamDeps := b.teamRef(0)
	params["team"] = teamParam
	deps = append(deps, teamDeps...)

	if len(b.vr.Entities.Teams) > 1 {
		opponentParam, opponentDeps := b.teamRef(1)
		params["opponent"] = opponentParam
		deps = append(deps, opponentDeps...)
	}

	id := b.addCall(knowledge.EndpointFixturesSearch, params, deps)
	ref := models.Reference(id)
	b.fixtureParam = &ref
	b.fixtureDeps = []string{id}
	return ref, b.fixtureDeps
}

// h2hPair builds the combined "id-id" head-to-head parameter. Both sides are
// resolver references unless team IDs are pinned; the placeholder pair is
// substituted by the orchestrator.
func (b *builder) h2hPair() (models.ParamValue, []string) {
	first, firstDeps := b.teamRef(0)
	second, secondDeps := b.teamRef(1)
	deps := append(firstDeps, secondDeps...)
	if !first.IsReference() && !second.IsReference() {
		return models.Literal(fmt.Sprintf("%v-%v", first.Value(), second.Value())), deps
	}
	return models.Literal(first.Placeholder() + "-" + second.Placeholder()), deps
}

// season returns the caller-pinned season or derives the current one with a
// July rollover (a season is named after its starting year).
func (b *builder) season() int {
	if b.sctx != nil && b.sctx.Season != 0 {
		return b.sctx.Season
	}
	year := b.now.Year()
	if b.now.Month() < time.July {
		year--
	}
	return year
}

// questionDate is the first extracted date, defaulting to today.
func (b *builder) questionDate() string {
	if len(b.vr.Entities.Dates) > 0 {
		return b.vr.Entities.Dates[0]
	}
	return b.now.Format(normalize.ISODate)
}

// literalParams converts a fully-literal param map for cache probing.
// Returns nil when any value is a reference or embeds a placeholder.
func literalParams(params map[string]models.ParamValue) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if v.IsReference() {
			return nil
		}
		if s, ok := v.Value().(string); ok {
			if _, isRef := models.ParseReference(s); isRef || containsPlaceholder(s) {
				return nil
			}
		}
		out[k] = v.Value()
	}
	return out
}

var placeholderPattern = regexp.MustCompile(`<from_[A-Za-z0-9_]+>`)

func containsPlaceholder(s string) bool {
	return placeholderPattern.MatchString(s)
}
