package planner

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucide-ai/lucide/pkg/cache"
	"github.com/lucide-ai/lucide/pkg/knowledge"
	"github.com/lucide-ai/lucide/pkg/metrics"
	"github.com/lucide-ai/lucide/pkg/models"
)

var testNow = time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)

func newTestPlanner(t *testing.T) (*Planner, *cache.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := metrics.NewForTesting()
	c, err := cache.New(rdb, knowledge.NewDefaultBase(), m)
	require.NoError(t, err)

	p, err := New(knowledge.NewDefaultBase(), c, m, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	return p, c
}

func completeResult(qt models.QuestionType, teams ...string) *models.ValidationResult {
	vr := &models.ValidationResult{
		IsComplete:   true,
		QuestionType: qt,
		Language:     models.LanguageFrench,
		Confidence:   0.8,
	}
	for _, team := range teams {
		vr.Entities.Teams = append(vr.Entities.Teams, models.Entity{Canonical: team, Raw: team})
	}
	return vr
}

func TestBuildPlan_LiveInfoCollapsesToFixtureFull(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := completeResult(models.QuestionMatchLiveInfo, "Paris Saint-Germain")
	plan, err := p.BuildPlan(context.Background(), vr, nil)
	require.NoError(t, err)

	// The four section candidates collapse into one enriched call, preceded
	// by the team and fixture resolvers.
	require.Len(t, plan.Calls, 3)
	assert.Equal(t, "call_0", plan.Calls[0].CallID)
	assert.Equal(t, knowledge.EndpointTeamsSearch, plan.Calls[0].EndpointName)
	assert.Equal(t, "call_1", plan.Calls[1].CallID)
	assert.Equal(t, knowledge.EndpointFixturesSearch, plan.Calls[1].EndpointName)
	assert.Equal(t, "call_2", plan.Calls[2].CallID)
	assert.Equal(t, knowledge.EndpointFixtureFull, plan.Calls[2].EndpointName)

	// No redundant section endpoint survives.
	for _, call := range plan.Calls {
		assert.NotContains(t,
			[]string{"fixtures_events", "fixtures_lineups", "fixtures_statistics", "fixtures_players"},
			call.EndpointName)
	}

	// Dependency chain and reference wiring.
	assert.Equal(t, []string{"call_0"}, plan.Calls[1].DependsOn)
	assert.Equal(t, "<from_call_0>", plan.Calls[1].Params["team"].Placeholder())
	assert.Equal(t, "2026-08-26", plan.Calls[1].Params["date"].Value())
	assert.Equal(t, []string{"call_1"}, plan.Calls[2].DependsOn)
	assert.Equal(t, "<from_call_1>", plan.Calls[2].Params["id"].Placeholder())

	levels, err := plan.Levels()
	require.NoError(t, err)
	assert.Len(t, levels, 3)
}

func TestBuildPlan_PredictionAbsorbsFormAndH2H(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := completeResult(models.QuestionMatchPrediction, "Paris Saint-Germain", "Real Madrid")
	plan, err := p.BuildPlan(context.Background(), vr, nil)
	require.NoError(t, err)

	// Two team resolvers, the fixture resolver, and the single composite.
	require.Len(t, plan.Calls, 4)
	assert.Equal(t, knowledge.EndpointTeamsSearch, plan.Calls[0].EndpointName)
	assert.Equal(t, knowledge.EndpointTeamsSearch, plan.Calls[1].EndpointName)
	assert.Equal(t, knowledge.EndpointFixturesSearch, plan.Calls[2].EndpointName)
	assert.Equal(t, knowledge.EndpointPredictionFull, plan.Calls[3].EndpointName)

	for _, call := range plan.Calls {
		assert.NotEqual(t, knowledge.EndpointFixturesH2H, call.EndpointName)
		assert.NotEqual(t, knowledge.EndpointTeamsRecentForm, call.EndpointName)
	}

	assert.ElementsMatch(t, []string{"call_0", "call_1"}, plan.Calls[2].DependsOn)
	assert.Equal(t, "<from_call_2>", plan.Calls[3].Params["fixture"].Placeholder())
}

func TestBuildPlan_HeadToHeadCombinedParam(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := completeResult(models.QuestionHeadToHead, "Paris Saint-Germain", "Olympique de Marseille")
	plan, err := p.BuildPlan(context.Background(), vr, nil)
	require.NoError(t, err)

	require.Len(t, plan.Calls, 3)
	h2h := plan.Calls[2]
	assert.Equal(t, knowledge.EndpointFixturesH2H, h2h.EndpointName)
	assert.ElementsMatch(t, []string{"call_0", "call_1"}, h2h.DependsOn)

	// Both resolver outputs are embedded in one combined parameter.
	assert.Equal(t, "<from_call_0>-<from_call_1>", h2h.Params["h2h"].Value())
}

func TestBuildPlan_HeadToHeadPinnedTeamLiteral(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := completeResult(models.QuestionHeadToHead, "Paris Saint-Germain", "Olympique de Marseille")
	sctx := &models.StructuredContext{Team: "psg", TeamID: 85}

	plan, err := p.BuildPlan(context.Background(), vr, sctx)
	require.NoError(t, err)

	// Only the second team needs resolving.
	require.Len(t, plan.Calls, 2)
	assert.Equal(t, knowledge.EndpointTeamsSearch, plan.Calls[0].EndpointName)
	assert.Equal(t, "85-<from_call_0>", plan.Calls[1].Params["h2h"].Value())
}

func TestBuildPlan_StandingsWithKnownLeague(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := &models.ValidationResult{
		IsComplete:   true,
		QuestionType: models.QuestionStandings,
		Entities: models.Entities{
			Leagues: []models.Entity{{Canonical: "Ligue 1", Raw: "ligue 1"}},
		},
	}
	plan, err := p.BuildPlan(context.Background(), vr, nil)
	require.NoError(t, err)

	// The embedded league table resolves the ID without a search call.
	require.Len(t, plan.Calls, 1)
	call := plan.Calls[0]
	assert.Equal(t, knowledge.EndpointStandings, call.EndpointName)
	assert.Empty(t, call.DependsOn)
	assert.Equal(t, 61, call.Params["league"].Value())
	assert.Equal(t, 2026, call.Params["season"].Value())
}

func TestBuildPlan_CachedCandidateBecomesPrefetched(t *testing.T) {
	p, c := newTestPlanner(t)
	ctx := context.Background()

	params := map[string]any{"league": 61, "season": 2026}
	c.Set(ctx, knowledge.EndpointStandings, params, "cached table", "")

	vr := &models.ValidationResult{
		IsComplete:   true,
		QuestionType: models.QuestionStandings,
		Entities: models.Entities{
			Leagues: []models.Entity{{Canonical: "Ligue 1", Raw: "ligue 1"}},
		},
	}
	plan, err := p.BuildPlan(ctx, vr, nil)
	require.NoError(t, err)

	assert.Empty(t, plan.Calls)
	require.Len(t, plan.Prefetched, 1)
	assert.Equal(t, knowledge.EndpointStandings, plan.Prefetched[0].EndpointName)
	assert.Equal(t, "cached table", plan.Prefetched[0].Data)
}

func TestBuildPlan_TeamStatsWithLeague(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := completeResult(models.QuestionTeamStats, "Paris Saint-Germain")
	vr.Entities.Leagues = []models.Entity{{Canonical: "Ligue 1", Raw: "l1"}}

	plan, err := p.BuildPlan(context.Background(), vr, nil)
	require.NoError(t, err)

	require.Len(t, plan.Calls, 2)
	stats := plan.Calls[1]
	assert.Equal(t, knowledge.EndpointTeamsStatistics, stats.EndpointName)
	assert.Equal(t, []string{"call_0"}, stats.DependsOn)
	assert.Equal(t, 61, stats.Params["league"].Value())
}

func TestBuildPlan_TeamStatsWithoutLeagueFallsBackToForm(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := completeResult(models.QuestionTeamStats, "Paris Saint-Germain")
	plan, err := p.BuildPlan(context.Background(), vr, nil)
	require.NoError(t, err)

	require.Len(t, plan.Calls, 2)
	assert.Equal(t, knowledge.EndpointTeamsRecentForm, plan.Calls[1].EndpointName)
	assert.Equal(t, 10, plan.Calls[1].Params["last"].Value())
}

func TestBuildPlan_PlayerInfo(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := &models.ValidationResult{
		IsComplete:   true,
		QuestionType: models.QuestionPlayerInfo,
		Entities: models.Entities{
			Players: []models.Entity{{Canonical: "Kylian Mbappé", Raw: "mbappe"}},
		},
	}
	plan, err := p.BuildPlan(context.Background(), vr, nil)
	require.NoError(t, err)

	require.Len(t, plan.Calls, 2)
	assert.Equal(t, knowledge.EndpointPlayersSearch, plan.Calls[0].EndpointName)
	stats := plan.Calls[1]
	assert.Equal(t, knowledge.EndpointPlayersStats, stats.EndpointName)
	assert.Equal(t, "<from_call_0>", stats.Params["id"].Placeholder())
	assert.Equal(t, 2026, stats.Params["season"].Value())
}

func TestBuildPlan_PinnedLeagueBeatsExtractedLeague(t *testing.T) {
	p, _ := newTestPlanner(t)

	vr := &models.ValidationResult{
		IsComplete:   true,
		QuestionType: models.QuestionStandings,
		Entities: models.Entities{
			Leagues: []models.Entity{{Canonical: "Premier League", Raw: "premier league"}},
		},
	}
	sctx := &models.StructuredContext{League: "Ligue 1", LeagueID: 61}

	plan, err := p.BuildPlan(context.Background(), vr, sctx)
	require.NoError(t, err)

	require.Len(t, plan.Calls, 1)
	assert.Equal(t, 61, plan.Calls[0].Params["league"].Value())
}

func TestBuildPlan_RejectsTeamlessStats(t *testing.T) {
	p, _ := newTestPlanner(t)

	// A fixture reference cannot stand in for the team the statistics are
	// about; materializing would produce a nil team parameter.
	vr := &models.ValidationResult{
		IsComplete:   true,
		QuestionType: models.QuestionTeamStats,
	}
	sctx := &models.StructuredContext{FixtureID: 1035045}

	_, err := p.BuildPlan(context.Background(), vr, sctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotPlannable)

	var planErr *PlanningError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, "materialization", planErr.Stage)
}

func TestBuildPlan_RejectsIncompleteResult(t *testing.T) {
	p, _ := newTestPlanner(t)

	_, err := p.BuildPlan(context.Background(), &models.ValidationResult{
		IsComplete:   false,
		QuestionType: models.QuestionStandings,
	}, nil)
	assert.ErrorIs(t, err, ErrNotPlannable)

	var planErr *PlanningError
	require.ErrorAs(t, err, &planErr)
	assert.Contains(t, planErr.Error(), "planning: ")
}

func TestBuildPlan_RejectsUnknownType(t *testing.T) {
	p, _ := newTestPlanner(t)

	_, err := p.BuildPlan(context.Background(), &models.ValidationResult{
		IsComplete:   true,
		QuestionType: models.QuestionUnknown,
	}, nil)
	assert.ErrorIs(t, err, ErrNotPlannable)
}

func TestBuildPlan_SeasonRollover(t *testing.T) {
	mrTime := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := metrics.NewForTesting()
	c, err := cache.New(rdb, knowledge.NewDefaultBase(), m)
	require.NoError(t, err)
	p, err := New(knowledge.NewDefaultBase(), c, m, WithClock(func() time.Time { return mrTime }))
	require.NoError(t, err)

	vr := &models.ValidationResult{
		IsComplete:   true,
		QuestionType: models.QuestionStandings,
		Entities: models.Entities{
			Leagues: []models.Entity{{Canonical: "Ligue 1", Raw: "l1"}},
		},
	}
	plan, err := p.BuildPlan(context.Background(), vr, nil)
	require.NoError(t, err)

	// In February the running season is still the previous year's.
	require.Len(t, plan.Calls, 1)
	assert.Equal(t, 2025, plan.Calls[0].Params["season"].Value())
}
