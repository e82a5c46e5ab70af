package validator

import "github.com/lucide-ai/lucide/pkg/models"

// Missing-slot names surfaced in ValidationResult.MissingInfo.
const (
	SlotTeams        = "teams"
	SlotSecondTeam   = "second_team"
	SlotPlayers      = "players"
	SlotLeagues      = "leagues"
	SlotDates        = "dates"
	SlotQuestionType = "question_type"
)

// clarificationTemplates holds one localized question per missing slot.
// Adding a language means adding a column here, nothing else.
var clarificationTemplates = map[string]map[models.Language]string{
	SlotTeams: {
		models.LanguageFrench:  "Quelle équipe vous intéresse ?",
		models.LanguageEnglish: "Which team are you interested in?",
	},
	SlotSecondTeam: {
		models.LanguageFrench:  "Quelle est la deuxième équipe ?",
		models.LanguageEnglish: "Which is the second team?",
	},
	SlotPlayers: {
		models.LanguageFrench:  "Quel joueur vous intéresse ?",
		models.LanguageEnglish: "Which player are you interested in?",
	},
	SlotLeagues: {
		models.LanguageFrench:  "Quelle ligue ou compétition vous intéresse ?",
		models.LanguageEnglish: "Which league or competition are you interested in?",
	},
	SlotDates: {
		models.LanguageFrench:  "Pour quelle date ?",
		models.LanguageEnglish: "For which date?",
	},
	SlotQuestionType: {
		models.LanguageFrench:  "Pouvez-vous préciser votre question ? Par exemple : le score d'un match, les statistiques d'une équipe, ou le classement d'une ligue.",
		models.LanguageEnglish: "Could you clarify your question? For example: a match score, a team's statistics, or league standings.",
	},
}

// genericClarification is used when the validator itself fails.
var genericClarification = map[models.Language]string{
	models.LanguageFrench:  "Je n'ai pas compris votre question. Pouvez-vous la reformuler ?",
	models.LanguageEnglish: "I could not understand your question. Could you rephrase it?",
}

// clarificationFor returns the localized question for a missing slot.
func clarificationFor(slot string, lang models.Language) string {
	templates, ok := clarificationTemplates[slot]
	if !ok {
		return genericClarification[lang]
	}
	if q, ok := templates[lang]; ok {
		return q
	}
	return templates[models.LanguageFrench]
}
