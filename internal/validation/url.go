package validation

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// NormalizeURL coerces a user-supplied link to a canonical https URL.
// Scheme-less input gets https prepended; http is upgraded. Input that
// still fails to parse is returned unchanged rather than rejected, matching
// the lenient write path for profile links.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Scheme == "http" {
		u.Scheme = "https"
	}

	normalized, err := purell.NormalizeURLString(u.String(), purell.FlagsUsuallySafeGreedy)
	if err != nil {
		return raw
	}
	return normalized
}
