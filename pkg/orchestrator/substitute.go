package orchestrator

import (
	"fmt"
	"regexp"

	"github.com/lucide-ai/lucide/pkg/models"
)

var placeholderPattern = regexp.MustCompile(`<from_([A-Za-z0-9_]+)>`)

// substituteParams resolves a call's parameters against the data collected so
// far: whole-value references become the ID extracted from the source call's
// output, and placeholders embedded inside literal strings (the combined
// "id-id" head-to-head form) are replaced in place. An unresolvable
// placeholder is left as-is; the upstream rejects it and the call takes the
// normal retry/error path, counting against the breaker.
func substituteParams(params map[string]models.ParamValue, collected map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for name, value := range params {
		if value.IsReference() {
			if id, ok := resolveSource(value.Source(), collected); ok {
				out[name] = id
			} else {
				out[name] = value.Placeholder()
			}
			continue
		}

		if s, ok := value.Value().(string); ok && placeholderPattern.MatchString(s) {
			out[name] = placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
				source := placeholderPattern.FindStringSubmatch(m)[1]
				id, ok := resolveSource(source, collected)
				if !ok {
					return m
				}
				return fmt.Sprintf("%v", id)
			})
			continue
		}

		out[name] = value.Value()
	}
	return out
}

// resolveSource pulls the identifier out of a prior call's output. The source
// is a call ID or an endpoint name; both alias the same entry in collected.
func resolveSource(source string, collected map[string]any) (any, bool) {
	data, ok := collected[source]
	if !ok {
		return nil, false
	}
	return extractID(data)
}

// Entity wrappers the upstream nests IDs under, in lookup order.
var idWrappers = []string{"team", "league", "fixture", "player"}

// extractID finds the primary identifier in an API response envelope. It
// takes the first element of the response array, then tries the known entity
// wrappers before falling back to a top-level id.
func extractID(data any) (any, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}

	first := firstResponseItem(m)
	if first == nil {
		// Bare object without an envelope.
		first = m
	}

	for _, wrapper := range idWrappers {
		if nested, ok := first[wrapper].(map[string]any); ok {
			if id, ok := nested["id"]; ok && id != nil {
				return id, true
			}
		}
	}
	if id, ok := first["id"]; ok && id != nil {
		return id, true
	}
	return nil, false
}

func firstResponseItem(m map[string]any) map[string]any {
	items, ok := m["response"].([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return nil
	}
	return first
}

// extractMatchStatus digs the short match status (NS, 1H, FT, ...) out of a
// fixture response so the cache can pick an adaptive TTL. Empty when the
// payload has no fixture status.
func extractMatchStatus(data any) string {
	m, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	first := firstResponseItem(m)
	if first == nil {
		return ""
	}
	fixture, ok := first["fixture"].(map[string]any)
	if !ok {
		return ""
	}
	status, ok := fixture["status"].(map[string]any)
	if !ok {
		return ""
	}
	short, _ := status["short"].(string)
	return short
}
