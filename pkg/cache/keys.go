package cache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucide-ai/lucide/pkg/normalize"
)

// keyPrefix namespaces every cache entry so Invalidate/ClearAll patterns can
// never touch foreign keys in a shared redis.
const keyPrefix = "lucide:cache"

// Key builds the normalized cache key for (endpoint, params). Logically
// equivalent requests must collapse to the same key:
//   - nil/absent parameter values are dropped,
//   - team/league/player names are alias-normalized and slugged,
//   - dates are rendered YYYY-MM-DD whatever their input form,
//   - h2h pairs are sorted so both orderings collide,
//   - remaining parameters serialize in sorted key order.
func Key(endpoint string, params map[string]any) string {
	kvs := make([]string, 0, len(params))
	for name, value := range params {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		kvs = append(kvs, name+"="+normalizeValue(endpoint, name, value))
	}
	sort.Strings(kvs)
	return keyPrefix + ":" + endpoint + ":" + strings.Join(kvs, "|")
}

// normalizeValue canonicalizes one parameter value based on its name (and,
// for the generic "search" parameter, the endpoint it belongs to).
func normalizeValue(endpoint, name string, value any) string {
	// Dates normalize regardless of the parameter name they travel under.
	if iso, ok := normalize.NormalizeDate(value); ok {
		return iso
	}

	raw := fmt.Sprintf("%v", value)

	switch name {
	case "h2h":
		return normalize.H2HKey(raw)
	case "team", "opponent", "home", "away":
		if !isNumeric(raw) {
			return normalize.TeamKey(raw)
		}
	case "league":
		if !isNumeric(raw) {
			return normalize.LeagueKey(raw)
		}
	case "player":
		if !isNumeric(raw) {
			return normalize.PlayerKey(raw)
		}
	case "search":
		// The search parameter's domain depends on the endpoint.
		switch {
		case strings.Contains(endpoint, "player"), strings.Contains(endpoint, "coach"):
			return normalize.PlayerKey(raw)
		case strings.Contains(endpoint, "league"):
			return normalize.LeagueKey(raw)
		default:
			return normalize.TeamKey(raw)
		}
	}
	return normalize.Slug(raw)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
