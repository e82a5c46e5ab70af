package normalize

import (
	"fmt"
	"regexp"
	"time"
)

// ISODate is the canonical date rendering used in cache keys, entity
// bundles, and upstream parameters.
const ISODate = "2006-01-02"

// Accepted absolute input formats, tried in order. DD/MM/YYYY before
// MM-DD-YYYY: the separator disambiguates the two.
var dateLayouts = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "02/01/2006"},
	{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), "01-02-2006"},
}

// NormalizeDate renders a date value as YYYY-MM-DD. Accepts time.Time,
// *time.Time, and strings in YYYY-MM-DD, DD/MM/YYYY or MM-DD-YYYY form.
func NormalizeDate(v any) (string, bool) {
	switch d := v.(type) {
	case time.Time:
		return d.Format(ISODate), true
	case *time.Time:
		if d == nil {
			return "", false
		}
		return d.Format(ISODate), true
	case string:
		for _, dl := range dateLayouts {
			if dl.pattern.MatchString(d) {
				t, err := time.Parse(dl.layout, d)
				if err != nil {
					return "", false
				}
				return t.Format(ISODate), true
			}
		}
		return "", false
	case fmt.Stringer:
		return NormalizeDate(d.String())
	default:
		return "", false
	}
}

// LooksLikeDate reports whether s is in one of the accepted absolute formats.
func LooksLikeDate(s string) bool {
	for _, dl := range dateLayouts {
		if dl.pattern.MatchString(s) {
			return true
		}
	}
	return false
}
