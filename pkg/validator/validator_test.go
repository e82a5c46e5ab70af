package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucide-ai/lucide/pkg/metrics"
	"github.com/lucide-ai/lucide/pkg/models"
)

var testNow = time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(metrics.NewForTesting(), WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	return v
}

func TestNew_RequiresMetrics(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestValidate_FrenchScoreQuestion(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Quel est le score du match du PSG ce soir ?", nil, "")

	assert.True(t, result.IsComplete)
	assert.Equal(t, models.QuestionMatchLiveInfo, result.QuestionType)
	assert.Equal(t, models.LanguageFrench, result.Language)
	assert.Greater(t, result.Confidence, 0.5)

	require.Len(t, result.Entities.Teams, 1)
	assert.Equal(t, "Paris Saint-Germain", result.Entities.Teams[0].Canonical)

	// "ce soir" resolves against the injected clock.
	require.Len(t, result.Entities.Dates, 1)
	assert.Equal(t, "2026-08-26", result.Entities.Dates[0])
}

func TestValidate_StandingsWithoutLeague(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Quel est le classement ?", nil, "")

	assert.False(t, result.IsComplete)
	assert.Equal(t, models.QuestionStandings, result.QuestionType)
	assert.Equal(t, []string{SlotLeagues}, result.MissingInfo)
	require.Len(t, result.Clarifications, 1)
	assert.Equal(t, "Quelle ligue ou compétition vous intéresse ?", result.Clarifications[0])
}

func TestValidate_EnglishDetection(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("What are the standings of the Premier League this season?", nil, "")

	assert.True(t, result.IsComplete)
	assert.Equal(t, models.QuestionStandings, result.QuestionType)
	assert.Equal(t, models.LanguageEnglish, result.Language)
	require.Len(t, result.Entities.Leagues, 1)
	assert.Equal(t, "Premier League", result.Entities.Leagues[0].Canonical)
}

func TestValidate_LanguageOverride(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Quel est le classement de la Ligue 1 ?", nil, models.LanguageEnglish)
	assert.Equal(t, models.LanguageEnglish, result.Language)
}

func TestValidate_ComparisonNeedsSecondTeam(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Compare le PSG", nil, "")

	assert.False(t, result.IsComplete)
	assert.Equal(t, models.QuestionTeamComparison, result.QuestionType)
	assert.Equal(t, []string{SlotSecondTeam}, result.MissingInfo)
}

func TestValidate_ComparisonComplete(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Comparer le PSG et l'OM cette saison", nil, "")

	assert.True(t, result.IsComplete)
	assert.Equal(t, models.QuestionTeamComparison, result.QuestionType)
	require.Len(t, result.Entities.Teams, 2)
	// Question order preserved.
	assert.Equal(t, "Paris Saint-Germain", result.Entities.Teams[0].Canonical)
	assert.Equal(t, "Olympique de Marseille", result.Entities.Teams[1].Canonical)
}

func TestValidate_PlayerQuestion(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Combien de buts pour le joueur Mbappé cette saison ?", nil, "")

	require.NotEmpty(t, result.Entities.Players)
	assert.Equal(t, "Kylian Mbappé", result.Entities.Players[0].Canonical)
}

func TestValidate_UnknownQuestion(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Bonjour, comment vas-tu ?", nil, "")

	assert.False(t, result.IsComplete)
	assert.Equal(t, models.QuestionUnknown, result.QuestionType)
	assert.Equal(t, []string{SlotQuestionType}, result.MissingInfo)
	assert.NotEmpty(t, result.Clarifications)
}

func TestValidate_ContextPinnedTeamDominates(t *testing.T) {
	v := newTestValidator(t)
	sctx := &models.StructuredContext{Team: "om", TeamID: 81}

	result := v.Validate("Quel est le score du match contre le PSG ?", sctx, "")

	assert.True(t, result.IsComplete)
	require.Len(t, result.Entities.Teams, 2)
	// The pinned team takes position 0; the extracted opponent follows.
	assert.Equal(t, "Olympique de Marseille", result.Entities.Teams[0].Canonical)
	assert.Equal(t, "Paris Saint-Germain", result.Entities.Teams[1].Canonical)
}

func TestValidate_ContextPinnedLeagueSatisfiesStandings(t *testing.T) {
	v := newTestValidator(t)
	sctx := &models.StructuredContext{League: "Ligue 1", LeagueID: 61}

	result := v.Validate("Quel est le classement ?", sctx, "")

	assert.True(t, result.IsComplete)
	assert.Empty(t, result.MissingInfo)
	require.Len(t, result.Entities.Leagues, 1)
	assert.Equal(t, "Ligue 1", result.Entities.Leagues[0].Canonical)
}

func TestValidate_ContextPinnedLeagueBeatsQuestionLeague(t *testing.T) {
	v := newTestValidator(t)
	sctx := &models.StructuredContext{League: "Ligue 1", LeagueID: 61}

	result := v.Validate("What are the standings of the Premier League?", sctx, "")

	assert.True(t, result.IsComplete)
	// The pinned league replaces the extracted one entirely.
	require.Len(t, result.Entities.Leagues, 1)
	assert.Equal(t, "Ligue 1", result.Entities.Leagues[0].Canonical)
}

func TestValidate_TeamStatsNeedsTeamDespiteFixture(t *testing.T) {
	v := newTestValidator(t)
	sctx := &models.StructuredContext{FixtureID: 1035045}

	result := v.Validate("Quelles sont les statistiques cette saison ?", sctx, "")

	// A fixture identifies a match, not the team the statistics are about.
	assert.Equal(t, models.QuestionTeamStats, result.QuestionType)
	assert.False(t, result.IsComplete)
	assert.Equal(t, []string{SlotTeams}, result.MissingInfo)
}

func TestValidate_PinnedFixtureSatisfiesTeamSlot(t *testing.T) {
	v := newTestValidator(t)
	sctx := &models.StructuredContext{FixtureID: 1035045}

	result := v.Validate("Quel est le score du match ?", sctx, "")

	assert.True(t, result.IsComplete)
	assert.Equal(t, models.QuestionMatchLiveInfo, result.QuestionType)
}

func TestValidate_RelativeDates(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		question string
		want     string
	}{
		{"Qui joue demain en Ligue 1 ?", "2026-08-27"},
		{"Les matchs d'hier de la Premier League", "2026-08-25"},
		{"Who plays tomorrow in the Premier League?", "2026-08-27"},
	}
	for _, tt := range tests {
		result := v.Validate(tt.question, nil, "")
		require.NotEmpty(t, result.Entities.Dates, "question %q", tt.question)
		assert.Equal(t, tt.want, result.Entities.Dates[0], "question %q", tt.question)
	}
}

func TestValidate_AbsoluteDate(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Le score du match PSG du 15/03/2026", nil, "")
	require.NotEmpty(t, result.Entities.Dates)
	assert.Equal(t, "2026-03-15", result.Entities.Dates[0])
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, models.LanguageFrench, detectLanguage("Quel est le score du match ?"))
	assert.Equal(t, models.LanguageEnglish, detectLanguage("What is the score of the game?"))
	// Ties resolve to French.
	assert.Equal(t, models.LanguageFrench, detectLanguage("PSG OM"))
}
