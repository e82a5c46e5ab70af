// Package normalize provides the text canonicalization shared by the cache
// (key normalization) and the validator (entity recognition): accent folding,
// slug building, alias resolution for teams, leagues and players, and date
// normalization. Alias dictionaries are data, not code — they ship as an
// embedded YAML table.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentFolder strips combining marks: decompose, drop marks, recompose.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldAccents removes diacritics ("Sait-Étienne" → "Sait-Etienne").
// Returns the input unchanged if the transform fails.
func FoldAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}

// Slug lower-cases, strips accents, reduces punctuation and whitespace runs
// to single underscores, and trims leading/trailing underscores.
// "Paris Saint-Germain" → "paris_saint_germain".
func Slug(s string) string {
	s = strings.ToLower(FoldAccents(s))
	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := true // swallow leading separators
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// TeamKey maps a team name, in any known alias form, to its canonical slug.
// Unknown names fall through to the generic slug.
func TeamKey(name string) string {
	if canonical, ok := CanonicalTeam(name); ok {
		return Slug(canonical)
	}
	return Slug(name)
}

// LeagueKey maps a league name, in any known alias form, to its canonical slug.
func LeagueKey(name string) string {
	if l, ok := CanonicalLeague(name); ok {
		return Slug(l.Name)
	}
	return Slug(name)
}

// PlayerKey maps a player name, in any known alias form, to its canonical slug.
func PlayerKey(name string) string {
	if canonical, ok := CanonicalPlayer(name); ok {
		return Slug(canonical)
	}
	return Slug(name)
}

// H2HKey normalizes a head-to-head pair ("PSG-Lyon", "lyon - psg", "33-34")
// so both orderings collide: each side is team-normalized, then the pair is
// sorted. The separator is "-" as in the upstream h2h parameter.
func H2HKey(pair string) string {
	parts := strings.Split(pair, "-")
	if len(parts) != 2 {
		return Slug(pair)
	}
	a := TeamKey(strings.TrimSpace(parts[0]))
	b := TeamKey(strings.TrimSpace(parts[1]))
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}
