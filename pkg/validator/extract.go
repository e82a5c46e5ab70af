package validator

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/lucide-ai/lucide/pkg/models"
	"github.com/lucide-ai/lucide/pkg/normalize"
)

// Generic player pattern: a capitalized name (one or two words) preceded by
// "joueur" or "player", for players outside the dictionary.
var playerPattern = regexp.MustCompile(
	`(?:[Jj]oueur|[Pp]layer)\s+([A-ZÀ-Þ][\wà-þ'-]+(?:\s+[A-ZÀ-Þ][\wà-þ'-]+)?)`)

// Absolute date formats accepted in questions.
var absoluteDatePattern = regexp.MustCompile(
	`\b(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}|\d{2}-\d{2}-\d{4})\b`)

// Relative date tokens, keyed by day offset.
var relativeDateTokens = map[string]int{
	"aujourd'hui": 0, "aujourd hui": 0, "today": 0, "ce soir": 0, "tonight": 0,
	"demain": 1, "tomorrow": 1,
	"hier": -1, "yesterday": -1,
}

// match is one dictionary hit with its position in the slugged question,
// used to keep entities in question order.
type match struct {
	entity models.Entity
	pos    int
}

// extractEntities runs every recognizer over the question. now anchors
// relative dates.
func extractEntities(question string, now time.Time) models.Entities {
	slugged := normalize.Slug(question)
	return models.Entities{
		Teams:   extractTeams(slugged),
		Players: extractPlayers(question, slugged),
		Leagues: extractLeagues(slugged),
		Dates:   extractDates(question, now),
	}
}

// aliasPos locates the slug of form in the slugged question on token
// boundaries. Returns -1 when absent.
func aliasPos(slugged, form string) int {
	needle := normalize.Slug(form)
	if needle == "" {
		return -1
	}
	from := 0
	for {
		i := strings.Index(slugged[from:], needle)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(needle)
		if (start == 0 || slugged[start-1] == '_') && (end == len(slugged) || slugged[end] == '_') {
			return start
		}
		from = start + 1
	}
}

func extractTeams(slugged string) []models.Entity {
	var found []match
	seen := make(map[string]bool)
	for _, team := range normalize.Teams() {
		for _, form := range team.AliasForms() {
			pos := aliasPos(slugged, form)
			if pos < 0 {
				continue
			}
			if !seen[team.Name] {
				seen[team.Name] = true
				found = append(found, match{
					entity: models.Entity{Canonical: team.Name, Raw: form},
					pos:    pos,
				})
			}
			break
		}
	}
	return inQuestionOrder(found)
}

func extractLeagues(slugged string) []models.Entity {
	var found []match
	seen := make(map[string]bool)
	for _, league := range normalize.Leagues() {
		for _, form := range league.AliasForms() {
			pos := aliasPos(slugged, form)
			if pos < 0 {
				continue
			}
			if !seen[league.Name] {
				seen[league.Name] = true
				found = append(found, match{
					entity: models.Entity{Canonical: league.Name, Raw: form},
					pos:    pos,
				})
			}
			break
		}
	}
	return inQuestionOrder(found)
}

func extractPlayers(question, slugged string) []models.Entity {
	var found []match
	seen := make(map[string]bool)
	for _, player := range normalize.Players() {
		for _, form := range player.AliasForms() {
			pos := aliasPos(slugged, form)
			if pos < 0 {
				continue
			}
			if !seen[player.Name] {
				seen[player.Name] = true
				found = append(found, match{
					entity: models.Entity{Canonical: player.Name, Raw: form},
					pos:    pos,
				})
			}
			break
		}
	}
	entities := inQuestionOrder(found)

	// Generic "joueur X" / "player X" capture for unknown players.
	for _, m := range playerPattern.FindAllStringSubmatch(question, -1) {
		raw := strings.TrimSpace(m[1])
		canonical := raw
		if resolved, ok := normalize.CanonicalPlayer(raw); ok {
			canonical = resolved
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		entities = append(entities, models.Entity{Canonical: canonical, Raw: raw})
	}
	return entities
}

func extractDates(question string, now time.Time) []string {
	var dates []string
	seen := make(map[string]bool)

	for _, m := range absoluteDatePattern.FindAllStringSubmatch(question, -1) {
		if iso, ok := normalize.NormalizeDate(m[1]); ok && !seen[iso] {
			seen[iso] = true
			dates = append(dates, iso)
		}
	}

	lowered := strings.ToLower(normalize.FoldAccents(question))
	for token, offset := range relativeDateTokens {
		if strings.Contains(lowered, token) {
			iso := now.AddDate(0, 0, offset).Format(normalize.ISODate)
			if !seen[iso] {
				seen[iso] = true
				dates = append(dates, iso)
			}
		}
	}
	return dates
}

func inQuestionOrder(found []match) []models.Entity {
	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	entities := make([]models.Entity, 0, len(found))
	for _, m := range found {
		entities = append(entities, m.entity)
	}
	return entities
}
