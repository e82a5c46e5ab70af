package models

// StructuredContext carries values the caller has pinned out-of-band (e.g.
// via a selector in the chat UI). Pinned values satisfy the corresponding
// completeness slot and take precedence over entities extracted from the
// question text.
type StructuredContext struct {
	Zone      string `json:"zone,omitempty"`
	League    string `json:"league,omitempty"`
	LeagueID  int    `json:"league_id,omitempty"`
	Team      string `json:"team,omitempty"`
	TeamID    int    `json:"team_id,omitempty"`
	Player    string `json:"player,omitempty"`
	PlayerID  int    `json:"player_id,omitempty"`
	Fixture   string `json:"fixture,omitempty"`
	FixtureID int    `json:"fixture_id,omitempty"`
	Season    int    `json:"season,omitempty"`
}

// HasLeague reports whether the caller pinned a league by name or ID.
func (c *StructuredContext) HasLeague() bool {
	return c != nil && (c.League != "" || c.LeagueID != 0)
}

// HasTeam reports whether the caller pinned a team by name or ID.
func (c *StructuredContext) HasTeam() bool {
	return c != nil && (c.Team != "" || c.TeamID != 0)
}

// HasPlayer reports whether the caller pinned a player by name or ID.
func (c *StructuredContext) HasPlayer() bool {
	return c != nil && (c.Player != "" || c.PlayerID != 0)
}

// HasFixture reports whether the caller pinned a fixture.
func (c *StructuredContext) HasFixture() bool {
	return c != nil && (c.Fixture != "" || c.FixtureID != 0)
}

// IsEmpty reports whether no context value is set at all.
func (c *StructuredContext) IsEmpty() bool {
	if c == nil {
		return true
	}
	return *c == StructuredContext{}
}
