package normalize

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// TeamAlias is one club with its recognized alias forms.
type TeamAlias struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// LeagueAlias is one competition with its recognized alias forms and the
// upstream league identifier.
type LeagueAlias struct {
	Name    string   `yaml:"name"`
	ID      int      `yaml:"id"`
	Aliases []string `yaml:"aliases"`
}

// PlayerAlias is one well-known player with alias forms.
type PlayerAlias struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

type aliasTable struct {
	Teams   []TeamAlias   `yaml:"teams"`
	Leagues []LeagueAlias `yaml:"leagues"`
	Players []PlayerAlias `yaml:"players"`
}

var (
	table aliasTable

	// Lookup maps keyed by Slug of each alias (and of the canonical name).
	teamByAlias   map[string]string
	leagueByAlias map[string]LeagueAlias
	playerByAlias map[string]string
)

func init() {
	if err := yaml.Unmarshal(aliasesYAML, &table); err != nil {
		// Embedded data is compiled in; failure to parse it is a build defect.
		panic(fmt.Sprintf("normalize: bad embedded aliases.yaml: %v", err))
	}

	teamByAlias = make(map[string]string)
	for _, t := range table.Teams {
		teamByAlias[Slug(t.Name)] = t.Name
		for _, a := range t.Aliases {
			teamByAlias[Slug(a)] = t.Name
		}
	}
	leagueByAlias = make(map[string]LeagueAlias)
	for _, l := range table.Leagues {
		leagueByAlias[Slug(l.Name)] = l
		for _, a := range l.Aliases {
			leagueByAlias[Slug(a)] = l
		}
	}
	playerByAlias = make(map[string]string)
	for _, p := range table.Players {
		playerByAlias[Slug(p.Name)] = p.Name
		for _, a := range p.Aliases {
			playerByAlias[Slug(a)] = p.Name
		}
	}
}

// CanonicalTeam resolves any alias form to the canonical club name.
func CanonicalTeam(name string) (string, bool) {
	canonical, ok := teamByAlias[Slug(name)]
	return canonical, ok
}

// CanonicalLeague resolves any alias form to the canonical league entry.
func CanonicalLeague(name string) (LeagueAlias, bool) {
	l, ok := leagueByAlias[Slug(name)]
	return l, ok
}

// LeagueID returns the upstream identifier for a league in any alias form.
func LeagueID(name string) (int, bool) {
	l, ok := leagueByAlias[Slug(name)]
	if !ok || l.ID == 0 {
		return 0, false
	}
	return l.ID, true
}

// CanonicalPlayer resolves any alias form to the canonical player name.
func CanonicalPlayer(name string) (string, bool) {
	canonical, ok := playerByAlias[Slug(name)]
	return canonical, ok
}

// Teams returns the full team dictionary for entity scanning.
func Teams() []TeamAlias { return table.Teams }

// Leagues returns the full league dictionary for entity scanning.
func Leagues() []LeagueAlias { return table.Leagues }

// Players returns the full player dictionary for entity scanning.
func Players() []PlayerAlias { return table.Players }

// AliasForms returns every recognized surface form of a team dictionary
// entry, longest first, for greedy matching in question text.
func (t TeamAlias) AliasForms() []string {
	forms := append([]string{t.Name}, t.Aliases...)
	sortByLengthDesc(forms)
	return forms
}

// AliasForms returns every recognized surface form of a league entry,
// longest first.
func (l LeagueAlias) AliasForms() []string {
	forms := append([]string{l.Name}, l.Aliases...)
	sortByLengthDesc(forms)
	return forms
}

// AliasForms returns every recognized surface form of a player entry,
// longest first.
func (p PlayerAlias) AliasForms() []string {
	forms := append([]string{p.Name}, p.Aliases...)
	sortByLengthDesc(forms)
	return forms
}

func sortByLengthDesc(forms []string) {
	sort.SliceStable(forms, func(i, j int) bool { return len(forms[i]) > len(forms[j]) })
}

// ContainsAlias reports whether text (pre-slugged with Slug) contains the
// slug of form as a token-bounded substring.
func ContainsAlias(sluggedText, form string) bool {
	needle := Slug(form)
	if needle == "" {
		return false
	}
	idx := 0
	for {
		i := strings.Index(sluggedText[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || sluggedText[start-1] == '_'
		afterOK := end == len(sluggedText) || sluggedText[end] == '_'
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}
