package knowledge

// Data-section labels shared between the catalog and the planner.
const (
	SectionTeam        = "team"
	SectionLeague      = "league"
	SectionSeasons     = "seasons"
	SectionFixture     = "fixture"
	SectionEvents      = "events"
	SectionLineups     = "lineups"
	SectionStatistics  = "statistics"
	SectionPlayers     = "players"
	SectionH2H         = "h2h"
	SectionForm        = "form"
	SectionPredictions = "predictions"
	SectionComparison  = "comparison"
	SectionStandings   = "standings"
	SectionPlayer      = "player"
	SectionPlayerStats = "player_statistics"
	SectionSquad       = "squad"
	SectionTopScorers  = "topscorers"
	SectionInjuries    = "injuries"
)

// Canonical endpoint names referenced by the planner.
const (
	EndpointTeamsSearch     = "teams_search"
	EndpointLeaguesSearch   = "leagues_search"
	EndpointFixturesSearch  = "fixtures_search"
	EndpointFixtureFull     = "fixture_full"
	EndpointPredictionFull  = "prediction_full"
	EndpointFixturesH2H     = "fixtures_h2h"
	EndpointTeamsRecentForm = "teams_recent_form"
	EndpointTeamsStatistics = "teams_statistics"
	EndpointStandings       = "standings"
	EndpointPlayersSearch   = "players_search"
	EndpointPlayersStats    = "players_statistics"
)

// builtinCatalog returns the compiled-in API-Football v3 endpoint catalog.
// Registration order matters: it is the planner's final tie-break.
func builtinCatalog() []Descriptor {
	return []Descriptor{
		{
			Name:             EndpointTeamsSearch,
			PathTemplate:     "/teams",
			RequiredParams:   []string{"search"},
			ReturnedSections: []string{SectionTeam},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases: []string{
				"find a team id by name",
				"team search and basic team information",
			},
		},
		{
			Name:             EndpointTeamsStatistics,
			PathTemplate:     "/teams/statistics",
			RequiredParams:   []string{"league", "season", "team"},
			ReturnedSections: []string{SectionStatistics},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases: []string{
				"season statistics of a team in a league",
				"team stats goals wins form",
			},
		},
		{
			Name:             "teams_seasons",
			PathTemplate:     "/teams/seasons",
			RequiredParams:   []string{"team"},
			ReturnedSections: []string{SectionSeasons},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases:         []string{"seasons available for a team"},
		},
		{
			Name:             EndpointLeaguesSearch,
			PathTemplate:     "/leagues",
			OptionalParams:   []string{"search", "id", "country", "season"},
			ReturnedSections: []string{SectionLeague, SectionSeasons},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases: []string{
				"find a league id by name",
				"league or competition information",
			},
		},
		{
			Name:             "leagues_seasons",
			PathTemplate:     "/leagues/seasons",
			ReturnedSections: []string{SectionSeasons},
			Freshness:        FreshnessStatic,
			CachePolicy:      CacheIndefinite,
			UseCases:         []string{"list of all seasons"},
		},
		{
			Name:             EndpointStandings,
			PathTemplate:     "/standings",
			RequiredParams:   []string{"league", "season"},
			ReturnedSections: []string{SectionStandings},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases: []string{
				"league table and rankings",
				"standings classement position",
			},
		},
		{
			Name:             EndpointFixturesSearch,
			PathTemplate:     "/fixtures",
			OptionalParams:   []string{"team", "opponent", "date", "league", "season", "next", "last", "status"},
			ReturnedSections: []string{SectionFixture},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases: []string{
				"find a fixture id for a team and date",
				"matches of a team on a given day",
			},
		},
		{
			Name:             "fixtures_by_date",
			PathTemplate:     "/fixtures",
			RequiredParams:   []string{"date"},
			ReturnedSections: []string{SectionFixture},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases:         []string{"all matches on a date"},
		},
		{
			Name:           EndpointFixtureFull,
			PathTemplate:   "/fixtures",
			RequiredParams: []string{"id"},
			ReturnedSections: []string{
				SectionFixture, SectionEvents, SectionLineups,
				SectionStatistics, SectionPlayers,
			},
			IsEnriched: true,
			EnrichedSections: []string{
				SectionEvents, SectionLineups, SectionStatistics, SectionPlayers,
			},
			CanReplace: []string{
				"fixtures_events", "fixtures_lineups",
				"fixtures_statistics", "fixtures_players",
			},
			Freshness:   FreshnessLive,
			CachePolicy: CacheMatchStatusAdaptive,
			UseCases: []string{
				"complete match detail in one call",
				"score events lineups statistics of a fixture",
			},
		},
		{
			Name:             "fixtures_events",
			PathTemplate:     "/fixtures/events",
			RequiredParams:   []string{"fixture"},
			ReturnedSections: []string{SectionEvents},
			Freshness:        FreshnessLive,
			CachePolicy:      CacheMatchStatusAdaptive,
			UseCases:         []string{"goals cards substitutions of a match"},
		},
		{
			Name:             "fixtures_lineups",
			PathTemplate:     "/fixtures/lineups",
			RequiredParams:   []string{"fixture"},
			ReturnedSections: []string{SectionLineups},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheMatchStatusAdaptive,
			UseCases:         []string{"starting eleven and formation of a match"},
		},
		{
			Name:             "fixtures_statistics",
			PathTemplate:     "/fixtures/statistics",
			RequiredParams:   []string{"fixture"},
			ReturnedSections: []string{SectionStatistics},
			Freshness:        FreshnessLive,
			CachePolicy:      CacheMatchStatusAdaptive,
			UseCases:         []string{"possession shots corners of a match"},
		},
		{
			Name:             "fixtures_players",
			PathTemplate:     "/fixtures/players",
			RequiredParams:   []string{"fixture"},
			ReturnedSections: []string{SectionPlayers},
			Freshness:        FreshnessLive,
			CachePolicy:      CacheMatchStatusAdaptive,
			UseCases:         []string{"player ratings and match stats of a fixture"},
		},
		{
			Name:             EndpointFixturesH2H,
			PathTemplate:     "/fixtures/headtohead",
			RequiredParams:   []string{"h2h"},
			OptionalParams:   []string{"last", "season"},
			ReturnedSections: []string{SectionH2H},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases: []string{
				"head to head history between two teams",
				"past confrontations h2h",
			},
		},
		{
			Name:             EndpointTeamsRecentForm,
			PathTemplate:     "/fixtures",
			RequiredParams:   []string{"team", "last"},
			ReturnedSections: []string{SectionForm},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases:         []string{"recent form last matches of a team"},
		},
		{
			Name:           EndpointPredictionFull,
			PathTemplate:   "/predictions",
			RequiredParams: []string{"fixture"},
			ReturnedSections: []string{
				SectionPredictions, SectionComparison, SectionH2H, SectionForm,
			},
			IsEnriched:       true,
			EnrichedSections: []string{SectionH2H, SectionForm},
			CanReplace:       []string{EndpointFixturesH2H, EndpointTeamsRecentForm},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases: []string{
				"match prediction with form and head to head in one call",
				"who will win prognosis",
			},
		},
		{
			Name:             "fixtures_rounds",
			PathTemplate:     "/fixtures/rounds",
			RequiredParams:   []string{"league", "season"},
			ReturnedSections: []string{"rounds"},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases:         []string{"rounds of a league season"},
		},
		{
			Name:             "fixtures_live",
			PathTemplate:     "/fixtures",
			RequiredParams:   []string{"live"},
			ReturnedSections: []string{SectionFixture},
			Freshness:        FreshnessLive,
			CachePolicy:      CacheNone,
			UseCases:         []string{"all matches currently live"},
		},
		{
			Name:             EndpointPlayersSearch,
			PathTemplate:     "/players/profiles",
			RequiredParams:   []string{"search"},
			ReturnedSections: []string{SectionPlayer},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases: []string{
				"find a player id by name",
				"player profile search",
			},
		},
		{
			Name:             EndpointPlayersStats,
			PathTemplate:     "/players",
			RequiredParams:   []string{"id", "season"},
			ReturnedSections: []string{SectionPlayer, SectionPlayerStats},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases: []string{
				"season statistics of a player",
				"player goals assists appearances",
			},
		},
		{
			Name:             "players_squads",
			PathTemplate:     "/players/squads",
			RequiredParams:   []string{"team"},
			ReturnedSections: []string{SectionSquad},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases:         []string{"squad and shirt numbers of a team"},
		},
		{
			Name:             "players_topscorers",
			PathTemplate:     "/players/topscorers",
			RequiredParams:   []string{"league", "season"},
			ReturnedSections: []string{SectionTopScorers},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases:         []string{"top scorers of a league"},
		},
		{
			Name:             "players_topassists",
			PathTemplate:     "/players/topassists",
			RequiredParams:   []string{"league", "season"},
			ReturnedSections: []string{"topassists"},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases:         []string{"top assist providers of a league"},
		},
		{
			Name:             "players_topyellowcards",
			PathTemplate:     "/players/topyellowcards",
			RequiredParams:   []string{"league", "season"},
			ReturnedSections: []string{"topyellowcards"},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases:         []string{"most yellow cards in a league"},
		},
		{
			Name:             "players_topredcards",
			PathTemplate:     "/players/topredcards",
			RequiredParams:   []string{"league", "season"},
			ReturnedSections: []string{"topredcards"},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases:         []string{"most red cards in a league"},
		},
		{
			Name:             "transfers",
			PathTemplate:     "/transfers",
			RequiredParams:   []string{"player"},
			ReturnedSections: []string{"transfers"},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases:         []string{"transfer history of a player"},
		},
		{
			Name:             "trophies",
			PathTemplate:     "/trophies",
			RequiredParams:   []string{"player"},
			ReturnedSections: []string{"trophies"},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheIndefinite,
			UseCases:         []string{"trophies won by a player"},
		},
		{
			Name:             "sidelined",
			PathTemplate:     "/sidelined",
			RequiredParams:   []string{"player"},
			ReturnedSections: []string{"sidelined"},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases:         []string{"injury and suspension history of a player"},
		},
		{
			Name:             "injuries",
			PathTemplate:     "/injuries",
			RequiredParams:   []string{"fixture"},
			OptionalParams:   []string{"league", "season", "team"},
			ReturnedSections: []string{SectionInjuries},
			Freshness:        FreshnessMatchBound,
			CachePolicy:      CacheShortTTL,
			UseCases:         []string{"players missing for a match"},
		},
		{
			Name:             "coachs",
			PathTemplate:     "/coachs",
			OptionalParams:   []string{"team", "search"},
			ReturnedSections: []string{"coach"},
			Freshness:        FreshnessSeasonal,
			CachePolicy:      CacheLongTTL,
			UseCases:         []string{"coach of a team"},
		},
		{
			Name:             "venues",
			PathTemplate:     "/venues",
			OptionalParams:   []string{"search", "city", "country"},
			ReturnedSections: []string{"venue"},
			Freshness:        FreshnessStatic,
			CachePolicy:      CacheIndefinite,
			UseCases:         []string{"stadium information"},
		},
		{
			Name:             "countries",
			PathTemplate:     "/countries",
			ReturnedSections: []string{"countries"},
			Freshness:        FreshnessStatic,
			CachePolicy:      CacheIndefinite,
			UseCases:         []string{"list of covered countries"},
		},
		{
			Name:             "timezone",
			PathTemplate:     "/timezone",
			ReturnedSections: []string{"timezone"},
			Freshness:        FreshnessStatic,
			CachePolicy:      CacheIndefinite,
			UseCases:         []string{"list of supported timezones"},
		},
	}
}
