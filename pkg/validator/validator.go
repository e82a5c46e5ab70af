// Package validator turns a raw user question, plus any caller-pinned
// structured context, into a validation result: detected language, extracted
// entities, question classification, and — when the question is incomplete —
// localized clarification requests. Recognition is dictionary and pattern
// based by design; there is no statistical model.
package validator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lucide-ai/lucide/pkg/metrics"
	"github.com/lucide-ai/lucide/pkg/models"
	"github.com/lucide-ai/lucide/pkg/normalize"
)

// Validator is stateless apart from its clock and is safe for concurrent use.
type Validator struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
	// now anchors relative dates; injectable for tests.
	now func() time.Time
}

// Option customizes a Validator.
type Option func(*Validator)

// WithClock overrides the time source used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New creates a validator. Metrics are required.
func New(m *metrics.Metrics, opts ...Option) (*Validator, error) {
	if m == nil {
		return nil, fmt.Errorf("metrics cannot be nil - observability is required")
	}
	v := &Validator{
		metrics: m,
		logger:  slog.With("component", "validator"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Validate never fails: any internal panic degrades to an incomplete result
// with a generic clarification, so the pipeline can always answer the caller.
func (v *Validator) Validate(
	question string,
	sctx *models.StructuredContext,
	langOverride models.Language,
) (result *models.ValidationResult) {
	lang := langOverride
	if !lang.IsValid() {
		lang = detectLanguage(question)
	}

	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("Validator failure, degrading to clarification",
				"panic", r, "question_len", len(question))
			v.metrics.ValidationsTotal.WithLabelValues("error").Inc()
			result = &models.ValidationResult{
				IsComplete:     false,
				QuestionType:   models.QuestionUnknown,
				Language:       lang,
				MissingInfo:    []string{SlotQuestionType},
				Clarifications: []string{genericClarification[lang]},
			}
		}
	}()

	entities := extractEntities(question, v.now())
	entities = applyContextOverride(entities, sctx)

	questionType, confidence := classify(question, entities)

	missing := missingSlots(questionType, entities, sctx)
	result = &models.ValidationResult{
		IsComplete:   len(missing) == 0,
		QuestionType: questionType,
		Confidence:   confidence,
		Entities:     entities,
		Language:     lang,
		MissingInfo:  missing,
	}
	for _, slot := range missing {
		result.Clarifications = append(result.Clarifications, clarificationFor(slot, lang))
	}

	v.metrics.QuestionsByLanguage.WithLabelValues(string(lang)).Inc()
	if result.IsComplete {
		v.metrics.ValidationsTotal.WithLabelValues("complete").Inc()
	} else {
		v.metrics.ValidationsTotal.WithLabelValues("incomplete").Inc()
		v.metrics.ClarificationsTotal.Inc()
	}
	return result
}

// applyContextOverride makes caller-pinned values dominate extraction. A
// pinned league or player replaces the extracted list of the same kind; a
// pinned team takes position 0 and extracted teams of a different club keep
// following positions, so two-team intents stay expressible.
func applyContextOverride(entities models.Entities, sctx *models.StructuredContext) models.Entities {
	if sctx.IsEmpty() {
		return entities
	}
	if sctx.League != "" {
		canonical := sctx.League
		if resolved, ok := normalize.CanonicalLeague(sctx.League); ok {
			canonical = resolved.Name
		}
		entities.Leagues = []models.Entity{{Canonical: canonical, Raw: sctx.League}}
	}
	if sctx.Player != "" {
		canonical := sctx.Player
		if resolved, ok := normalize.CanonicalPlayer(sctx.Player); ok {
			canonical = resolved
		}
		entities.Players = []models.Entity{{Canonical: canonical, Raw: sctx.Player}}
	}
	if sctx.Team != "" {
		canonical := sctx.Team
		if resolved, ok := normalize.CanonicalTeam(sctx.Team); ok {
			canonical = resolved
		}
		pinned := models.Entity{Canonical: canonical, Raw: sctx.Team}
		teams := []models.Entity{pinned}
		for _, t := range entities.Teams {
			if t.Canonical != pinned.Canonical {
				teams = append(teams, t)
			}
		}
		entities.Teams = teams
	}
	return entities
}

// missingSlots applies the per-class slot requirements. Pinned IDs satisfy
// their slot even without a name: a caller-supplied team_id or fixture_id
// needs no resolution from the question text.
func missingSlots(qt models.QuestionType, entities models.Entities, sctx *models.StructuredContext) []string {
	teamCount := len(entities.Teams)
	if teamCount == 0 && sctx.HasTeam() {
		teamCount = 1
	}
	hasLeague := len(entities.Leagues) > 0 || sctx.HasLeague()
	hasPlayer := len(entities.Players) > 0 || sctx.HasPlayer()
	// A pinned fixture already identifies the match; no team resolution needed.
	fixturePinned := sctx.HasFixture()

	var missing []string
	switch qt {
	case models.QuestionMatchLiveInfo, models.QuestionMatchPrediction:
		if teamCount < 1 && !fixturePinned {
			missing = append(missing, SlotTeams)
		}
	case models.QuestionTeamStats:
		// Unlike the match classes, a fixture does not identify the subject:
		// statistics are about a team, so the team slot must be filled.
		if teamCount < 1 {
			missing = append(missing, SlotTeams)
		}
	case models.QuestionTeamComparison, models.QuestionHeadToHead:
		switch {
		case teamCount == 0:
			missing = append(missing, SlotTeams)
		case teamCount == 1:
			missing = append(missing, SlotSecondTeam)
		}
	case models.QuestionPlayerInfo:
		if !hasPlayer {
			missing = append(missing, SlotPlayers)
		}
	case models.QuestionLeagueInfo, models.QuestionStandings:
		if !hasLeague {
			missing = append(missing, SlotLeagues)
		}
	case models.QuestionUnknown:
		missing = append(missing, SlotQuestionType)
	}
	return missing
}
