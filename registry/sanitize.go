// registry/sanitize.go
package registry

import (
	"regexp"
	"strings"
)

var unsafeTokenRe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

const (
	tokenMaxLen   = 48
	fallbackToken = "ASSET"
)

// SanitizeToken normalizes free text into an identifier fragment: spaces
// become underscores, anything outside [A-Za-z0-9_-] is stripped, the
// result is capped at 48 characters and falls back to "ASSET" when
// nothing survives. Always returns a usable token.
func SanitizeToken(s string) string {
	base := strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	out := unsafeTokenRe.ReplaceAllString(base, "")
	if len(out) > tokenMaxLen {
		out = out[:tokenMaxLen]
	}
	if out == "" {
		return fallbackToken
	}
	return out
}
