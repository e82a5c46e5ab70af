package validator

import (
	"strings"

	"github.com/lucide-ai/lucide/pkg/models"
	"github.com/lucide-ai/lucide/pkg/normalize"
)

// Question-word and stopword sets used for language scoring. Membership is
// tested on accent-folded lower-case tokens, so "équipe" and "equipe" both
// count for French.
var (
	frenchWords = wordSet(
		"quel", "quelle", "quels", "quelles", "qui", "quoi", "comment",
		"pourquoi", "ou", "combien", "quand", "est", "sont", "sera",
		"le", "la", "les", "un", "une", "des", "du", "de", "et",
		"contre", "entre", "pour", "avec", "dans",
		"equipe", "joueur", "classement", "resultat", "prochain", "dernier",
		"aujourd", "demain", "hier", "but", "buts", "ligue", "championnat",
	)
	englishWords = wordSet(
		"what", "which", "who", "how", "why", "where", "when",
		"is", "are", "was", "will", "does", "did",
		"the", "a", "an", "of", "and", "for", "with", "in",
		"against", "between", "versus",
		"team", "player", "standings", "result", "next", "last",
		"today", "tomorrow", "yesterday", "goal", "goals", "league", "score",
	)
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// detectLanguage scores the question against both keyword sets; the higher
// count wins and ties default to French.
func detectLanguage(question string) models.Language {
	var fr, en int
	for _, token := range strings.Split(normalize.Slug(question), "_") {
		if frenchWords[token] {
			fr++
		}
		if englishWords[token] {
			en++
		}
	}
	if en > fr {
		return models.LanguageEnglish
	}
	return models.LanguageFrench
}
