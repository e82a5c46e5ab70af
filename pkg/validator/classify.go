package validator

import (
	"github.com/lucide-ai/lucide/pkg/models"
	"github.com/lucide-ai/lucide/pkg/normalize"
)

// unknownThreshold is the minimum winning score; below it the question is
// classified Unknown.
const unknownThreshold = 0.15

// entityBonus is added when the class's minimum required entity is present.
const entityBonus = 0.2

// classRule scores one question class: FR+EN keywords (matched accent-folded
// on token boundaries) and a predicate for the entity bonus.
type classRule struct {
	questionType models.QuestionType
	keywords     []string
	hasEntity    func(models.Entities) bool
}

// classRules order is the tie-break: first maximal score wins.
var classRules = []classRule{
	{
		questionType: models.QuestionMatchLiveInfo,
		keywords: []string{
			"score", "resultat", "result", "en direct", "live", "but", "buts",
			"goal", "goals", "mi-temps", "halftime", "match",
		},
		hasEntity: func(e models.Entities) bool { return len(e.Teams) >= 1 },
	},
	{
		questionType: models.QuestionMatchPrediction,
		keywords: []string{
			"prediction", "prono", "pronostic", "predire", "gagner", "va gagner",
			"win", "winner", "forecast", "cote", "odds", "favori", "favorite", "chances",
		},
		hasEntity: func(e models.Entities) bool { return len(e.Teams) >= 1 },
	},
	{
		questionType: models.QuestionTeamComparison,
		keywords: []string{
			"comparer", "comparaison", "compare", "comparison", "versus",
			"mieux", "better", "plus fort", "stronger", "difference",
		},
		hasEntity: func(e models.Entities) bool { return len(e.Teams) >= 2 },
	},
	{
		questionType: models.QuestionTeamStats,
		keywords: []string{
			"statistiques", "stats", "forme", "form", "performance",
			"saison", "season", "bilan", "serie", "attaque", "defense",
		},
		hasEntity: func(e models.Entities) bool { return len(e.Teams) >= 1 },
	},
	{
		questionType: models.QuestionPlayerInfo,
		keywords: []string{
			"joueur", "player", "buteur", "scorer", "profil", "profile",
			"carriere", "career", "transfert", "transfer", "blessure", "injury",
		},
		hasEntity: func(e models.Entities) bool { return len(e.Players) >= 1 },
	},
	{
		// Before league_info: a standings question almost always names the
		// league, which would otherwise tie the two classes.
		questionType: models.QuestionStandings,
		keywords: []string{
			"classement", "standings", "table", "position", "rang",
			"ranking", "leader", "premier de la ligue", "relegation",
		},
		hasEntity: func(e models.Entities) bool { return len(e.Leagues) >= 1 },
	},
	{
		questionType: models.QuestionLeagueInfo,
		keywords: []string{
			"ligue", "league", "championnat", "competition", "division",
			"saison de la ligue", "clubs",
		},
		hasEntity: func(e models.Entities) bool { return len(e.Leagues) >= 1 },
	},
	{
		questionType: models.QuestionHeadToHead,
		keywords: []string{
			"h2h", "head to head", "historique", "confrontation",
			"confrontations", "face a face", "history", "precedents",
		},
		hasEntity: func(e models.Entities) bool { return len(e.Teams) >= 2 },
	},
}

// classify scores every class and returns the winner with its confidence.
// score = min(keyword_matches/3, 1) + 0.2 entity bonus, capped at 1.
func classify(question string, entities models.Entities) (models.QuestionType, float64) {
	slugged := normalize.Slug(question)

	best := models.QuestionUnknown
	bestScore := 0.0
	for _, rule := range classRules {
		matches := 0
		for _, kw := range rule.keywords {
			if aliasPos(slugged, kw) >= 0 {
				matches++
			}
		}
		score := float64(matches) / 3.0
		if score > 1 {
			score = 1
		}
		if rule.hasEntity(entities) {
			score += entityBonus
		}
		if score > 1 {
			score = 1
		}
		if score > bestScore {
			bestScore = score
			best = rule.questionType
		}
	}

	if bestScore < unknownThreshold {
		return models.QuestionUnknown, bestScore
	}
	return best, bestScore
}
