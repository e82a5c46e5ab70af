// Package models defines the data carriers shared across pipeline stages:
// extracted entities, validation results, execution plans, and call results.
// These are plain structs with no behavior beyond derived views; all stage
// logic lives in the stage packages.
package models

// Language is a detected or caller-overridden question language.
type Language string

const (
	// LanguageFrench is the default language (detection ties resolve to French).
	LanguageFrench Language = "fr"
	// LanguageEnglish is used when English keywords dominate the question.
	LanguageEnglish Language = "en"
)

// IsValid checks if the language is supported.
func (l Language) IsValid() bool {
	return l == LanguageFrench || l == LanguageEnglish
}

// QuestionType classifies the user's intent into a closed set of tags.
type QuestionType string

const (
	// QuestionMatchLiveInfo asks about an ongoing or recent match (score, events).
	QuestionMatchLiveInfo QuestionType = "match_live_info"
	// QuestionMatchPrediction asks for a pre-match prognosis.
	QuestionMatchPrediction QuestionType = "match_prediction"
	// QuestionTeamComparison compares two teams.
	QuestionTeamComparison QuestionType = "team_comparison"
	// QuestionTeamStats asks about one team's statistics or form.
	QuestionTeamStats QuestionType = "team_stats"
	// QuestionPlayerInfo asks about a player.
	QuestionPlayerInfo QuestionType = "player_info"
	// QuestionLeagueInfo asks about a league or competition.
	QuestionLeagueInfo QuestionType = "league_info"
	// QuestionHeadToHead asks for the history between two teams.
	QuestionHeadToHead QuestionType = "head_to_head"
	// QuestionStandings asks for a league table.
	QuestionStandings QuestionType = "standings"
	// QuestionUnknown is emitted when no class scores above the threshold.
	QuestionUnknown QuestionType = "unknown"
)

// IsValid checks if the question type is part of the closed set.
func (q QuestionType) IsValid() bool {
	switch q {
	case QuestionMatchLiveInfo, QuestionMatchPrediction, QuestionTeamComparison,
		QuestionTeamStats, QuestionPlayerInfo, QuestionLeagueInfo,
		QuestionHeadToHead, QuestionStandings, QuestionUnknown:
		return true
	default:
		return false
	}
}

// Entity is one extracted value, kept both in canonical form (normalized,
// alias-resolved) and as originally matched in the question text.
type Entity struct {
	Canonical string `json:"canonical"`
	Raw       string `json:"raw"`
}

// Entities is the bundle of values extracted from a question, after any
// caller-supplied context override has been applied.
type Entities struct {
	Teams   []Entity `json:"teams,omitempty"`
	Players []Entity `json:"players,omitempty"`
	Leagues []Entity `json:"leagues,omitempty"`
	// Dates are normalized to ISO YYYY-MM-DD.
	Dates []string `json:"dates,omitempty"`
}

// ValidationResult is the validator's verdict on a question.
type ValidationResult struct {
	IsComplete bool `json:"is_complete"`
	// MissingInfo lists slot names still unfilled (teams, second_team,
	// players, leagues, dates, question_type).
	MissingInfo []string `json:"missing_info,omitempty"`
	// Clarifications holds one localized question per missing slot.
	Clarifications []string     `json:"clarification_questions,omitempty"`
	QuestionType   QuestionType `json:"question_type"`
	Confidence     float64      `json:"confidence"`
	Entities       Entities     `json:"entities"`
	Language       Language     `json:"detected_language"`
}
