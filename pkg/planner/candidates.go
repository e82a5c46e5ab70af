package planner

import (
	"fmt"

	"github.com/lucide-ai/lucide/pkg/knowledge"
	"github.com/lucide-ai/lucide/pkg/models"
)

// candidate is one endpoint tentatively chosen for the plan. Materialization
// is deferred so that enrichment substitution can drop a candidate before any
// of its resolver calls are created.
type candidate struct {
	desc        *knowledge.Descriptor
	materialize func(b *builder) (map[string]models.ParamValue, []string)
}

// gather picks the naive candidate set for the validated question. The
// returned flag reports whether a fixture reference is resolvable in this
// plan (required for fixture-keyed composite substitution).
func (p *Planner) gather(b *builder) ([]candidate, bool, error) {
	vr := b.vr
	switch vr.QuestionType {
	case models.QuestionMatchLiveInfo:
		// One candidate per match section; enrichment substitution collapses
		// them into the per-fixture composite.
		sections := []string{
			"fixtures_events", "fixtures_lineups", "fixtures_statistics", "fixtures_players",
		}
		cands := make([]candidate, 0, len(sections))
		for _, name := range sections {
			desc, err := b.kb.Get(name)
			if err != nil {
				return nil, false, err
			}
			cands = append(cands, candidate{
				desc: desc,
				materialize: func(b *builder) (map[string]models.ParamValue, []string) {
					ref, deps := b.fixtureRef()
					return map[string]models.ParamValue{"fixture": ref}, deps
				},
			})
		}
		return cands, true, nil

	case models.QuestionMatchPrediction:
		h2h, err := b.kb.Get(knowledge.EndpointFixturesH2H)
		if err != nil {
			return nil, false, err
		}
		form, err := b.kb.Get(knowledge.EndpointTeamsRecentForm)
		if err != nil {
			return nil, false, err
		}
		prediction, err := b.kb.Get(knowledge.EndpointPredictionFull)
		if err != nil {
			return nil, false, err
		}
		cands := []candidate{
			{desc: h2h, materialize: materializeH2H},
			{desc: form, materialize: materializeRecentForm(0, 5)},
		}
		if len(vr.Entities.Teams) > 1 {
			cands = append(cands, candidate{desc: form, materialize: materializeRecentForm(1, 5)})
		}
		cands = append(cands, candidate{
			desc: prediction,
			materialize: func(b *builder) (map[string]models.ParamValue, []string) {
				ref, deps := b.fixtureRef()
				return map[string]models.ParamValue{"fixture": ref}, deps
			},
		})
		return cands, true, nil

	case models.QuestionTeamComparison:
		form, err := b.kb.Get(knowledge.EndpointTeamsRecentForm)
		if err != nil {
			return nil, false, err
		}
		h2h, err := b.kb.Get(knowledge.EndpointFixturesH2H)
		if err != nil {
			return nil, false, err
		}
		cands := []candidate{
			{desc: form, materialize: materializeRecentForm(0, 10)},
			{desc: form, materialize: materializeRecentForm(1, 10)},
			{desc: h2h, materialize: materializeH2H},
		}
		// With a league in scope, season statistics sharpen the comparison.
		if _, _, ok := b.leagueProbe(); ok {
			stats, err := b.kb.Get(knowledge.EndpointTeamsStatistics)
			if err != nil {
				return nil, false, err
			}
			cands = append(cands,
				candidate{desc: stats, materialize: materializeTeamStatistics(0)},
				candidate{desc: stats, materialize: materializeTeamStatistics(1)},
			)
		}
		return cands, false, nil

	case models.QuestionTeamStats:
		if _, _, ok := b.leagueProbe(); ok {
			stats, err := b.kb.Get(knowledge.EndpointTeamsStatistics)
			if err != nil {
				return nil, false, err
			}
			return []candidate{{desc: stats, materialize: materializeTeamStatistics(0)}}, false, nil
		}
		form, err := b.kb.Get(knowledge.EndpointTeamsRecentForm)
		if err != nil {
			return nil, false, err
		}
		return []candidate{{desc: form, materialize: materializeRecentForm(0, 10)}}, false, nil

	case models.QuestionPlayerInfo:
		stats, err := b.kb.Get(knowledge.EndpointPlayersStats)
		if err != nil {
			return nil, false, err
		}
		return []candidate{{
			desc: stats,
			materialize: func(b *builder) (map[string]models.ParamValue, []string) {
				params := map[string]models.ParamValue{
					"season": models.Literal(b.season()),
				}
				if b.sctx != nil && b.sctx.PlayerID != 0 {
					params["id"] = models.Literal(b.sctx.PlayerID)
					return params, nil
				}
				id := b.addResolver(knowledge.EndpointPlayersSearch, map[string]models.ParamValue{
					"search": models.Literal(b.vr.Entities.Players[0].Canonical),
				})
				params["id"] = models.Reference(id)
				return params, []string{id}
			},
		}}, false, nil

	case models.QuestionLeagueInfo:
		leagues, err := b.kb.Get(knowledge.EndpointLeaguesSearch)
		if err != nil {
			return nil, false, err
		}
		return []candidate{{
			desc: leagues,
			materialize: func(b *builder) (map[string]models.ParamValue, []string) {
				if b.sctx != nil && b.sctx.LeagueID != 0 {
					return map[string]models.ParamValue{
						"id": models.Literal(b.sctx.LeagueID),
					}, nil
				}
				return map[string]models.ParamValue{
					"search": models.Literal(b.vr.Entities.Leagues[0].Canonical),
				}, nil
			},
		}}, false, nil

	case models.QuestionHeadToHead:
		h2h, err := b.kb.Get(knowledge.EndpointFixturesH2H)
		if err != nil {
			return nil, false, err
		}
		return []candidate{{desc: h2h, materialize: materializeH2H}}, false, nil

	case models.QuestionStandings:
		standings, err := b.kb.Get(knowledge.EndpointStandings)
		if err != nil {
			return nil, false, err
		}
		return []candidate{{
			desc: standings,
			materialize: func(b *builder) (map[string]models.ParamValue, []string) {
				league, deps, _ := b.leagueValue()
				return map[string]models.ParamValue{
					"league": league,
					"season": models.Literal(b.season()),
				}, deps
			},
		}}, false, nil

	default:
		return nil, false, fmt.Errorf("%w: %s", ErrNotPlannable, vr.QuestionType)
	}
}

func materializeH2H(b *builder) (map[string]models.ParamValue, []string) {
	pair, deps := b.h2hPair()
	return map[string]models.ParamValue{"h2h": pair}, deps
}

func materializeRecentForm(teamIdx, last int) func(*builder) (map[string]models.ParamValue, []string) {
	return func(b *builder) (map[string]models.ParamValue, []string) {
		team, deps := b.teamRef(teamIdx)
		return map[string]models.ParamValue{
			"team": team,
			"last": models.Literal(last),
		}, deps
	}
}

func materializeTeamStatistics(teamIdx int) func(*builder) (map[string]models.ParamValue, []string) {
	return func(b *builder) (map[string]models.ParamValue, []string) {
		team, teamDeps := b.teamRef(teamIdx)
		league, leagueDeps, _ := b.leagueValue()
		return map[string]models.ParamValue{
			"team":   team,
			"league": league,
			"season": models.Literal(b.season()),
		}, append(teamDeps, leagueDeps...)
	}
}

// substituteEnriched applies the principal optimization: whenever two or more
// candidates' returned sections are fully covered by one enriched endpoint's
// enriched sections, and the composite costs no more than what it replaces,
// the subset collapses into the single composite call. Enriched endpoints are
// tried in catalog order.
func substituteEnriched(b *builder, cands []candidate, fixtureAvailable bool) []candidate {
	for _, enriched := range b.kb.Enriched() {
		if !compositeBuildable(enriched, fixtureAvailable) {
			continue
		}

		var covered []int
		cost := 0
		for i, c := range cands {
			if c.desc.Name == enriched.Name {
				// Already chosen: absorbing duplicates below.
				continue
			}
			if sectionsCovered(c.desc.ReturnedSections, enriched.EnrichedSections) {
				covered = append(covered, i)
				cost += c.desc.APICost
			}
		}
		alreadyChosen := containsEndpoint(cands, enriched.Name)
		if len(covered) < 2 && !(alreadyChosen && len(covered) > 0) {
			continue
		}
		if !alreadyChosen && enriched.APICost > cost {
			continue
		}

		kept := make([]candidate, 0, len(cands)-len(covered)+1)
		inserted := false
		skip := make(map[int]bool, len(covered))
		for _, i := range covered {
			skip[i] = true
		}
		for i, c := range cands {
			if skip[i] {
				// The composite takes the position of the first replaced
				// candidate to keep catalog insertion order stable.
				if !inserted && !alreadyChosen {
					kept = append(kept, compositeCandidate(enriched))
					inserted = true
				}
				continue
			}
			kept = append(kept, c)
		}
		cands = kept
	}
	return cands
}

// compositeBuildable reports whether every required parameter of the
// composite can be produced in this plan. The catalog's composites are all
// fixture-keyed.
func compositeBuildable(desc *knowledge.Descriptor, fixtureAvailable bool) bool {
	for _, param := range desc.RequiredParams {
		switch param {
		case "id", "fixture":
			if !fixtureAvailable {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func compositeCandidate(desc *knowledge.Descriptor) candidate {
	return candidate{
		desc: desc,
		materialize: func(b *builder) (map[string]models.ParamValue, []string) {
			ref, deps := b.fixtureRef()
			params := make(map[string]models.ParamValue, len(desc.RequiredParams))
			for _, param := range desc.RequiredParams {
				params[param] = ref
			}
			return params, deps
		},
	}
}

func sectionsCovered(sections, enriched []string) bool {
	if len(sections) == 0 {
		return false
	}
	for _, s := range sections {
		if !containsString(enriched, s) {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsEndpoint(cands []candidate, name string) bool {
	for _, c := range cands {
		if c.desc.Name == name {
			return true
		}
	}
	return false
}
