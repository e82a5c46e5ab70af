package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Saint-Etienne", FoldAccents("Saint-Étienne"))
	assert.Equal(t, "Mbappe", FoldAccents("Mbappé"))
	assert.Equal(t, "plain", FoldAccents("plain"))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Paris Saint-Germain", "paris_saint_germain"},
		{"  PSG!!  ", "psg"},
		{"Ligue 1", "ligue_1"},
		{"Bayern München", "bayern_munchen"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.input), "input %q", tt.input)
	}
}

func TestTeamKey_AliasesCollide(t *testing.T) {
	// Every alias form of the same club must produce the same key.
	forKey := TeamKey("Paris Saint-Germain")
	assert.Equal(t, forKey, TeamKey("PSG"))
	assert.Equal(t, forKey, TeamKey("psg"))
	assert.Equal(t, forKey, TeamKey("paris sg"))

	// Unknown teams fall through to the plain slug.
	assert.Equal(t, "red_star", TeamKey("Red Star"))
}

func TestLeagueKey(t *testing.T) {
	assert.Equal(t, LeagueKey("Ligue 1"), LeagueKey("L1"))
	assert.Equal(t, LeagueKey("championnat de france"), LeagueKey("ligue 1"))
}

func TestLeagueID(t *testing.T) {
	id, ok := LeagueID("Ligue 1")
	require.True(t, ok)
	assert.Equal(t, 61, id)

	id, ok = LeagueID("premier league")
	require.True(t, ok)
	assert.Equal(t, 39, id)

	_, ok = LeagueID("Kreisliga B")
	assert.False(t, ok)
}

func TestPlayerKey(t *testing.T) {
	assert.Equal(t, PlayerKey("Kylian Mbappé"), PlayerKey("mbappe"))
	assert.Equal(t, "john_doe", PlayerKey("John Doe"))
}

func TestH2HKey_OrderInsensitive(t *testing.T) {
	assert.Equal(t, H2HKey("PSG-Lyon"), H2HKey("lyon - psg"))
	assert.Equal(t, H2HKey("33-34"), H2HKey("34-33"))
	// Malformed pairs degrade to a slug instead of panicking.
	assert.Equal(t, "psg", H2HKey("psg"))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		ok    bool
	}{
		{name: "iso", input: "2026-08-26", want: "2026-08-26", ok: true},
		{name: "french", input: "26/08/2026", want: "2026-08-26", ok: true},
		{name: "time value", input: time.Date(2026, 8, 26, 21, 0, 0, 0, time.UTC), want: "2026-08-26", ok: true},
		{name: "not a date", input: "psg", ok: false},
		{name: "number", input: 61, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCanonicalTeam(t *testing.T) {
	name, ok := CanonicalTeam("om")
	require.True(t, ok)
	assert.Equal(t, "Olympique de Marseille", name)

	_, ok = CanonicalTeam("inconnu fc")
	assert.False(t, ok)
}
