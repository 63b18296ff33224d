// registry/regnum.go
package registry

import (
	"fmt"
	"regexp"
	"time"
)

const regTimestampLayout = "20060102150405" // YYYYMMDDHHMMSS

// RegistrationRe matches a well-formed registration number:
// <name-token>/<14-digit-timestamp>/<5-digit-seq>.
var RegistrationRe = regexp.MustCompile(`^[A-Za-z0-9_-]+/\d{14}/\d{5}$`)

// RegPrefix builds the shared part of a batch's registration numbers from
// the sanitized asset name and a second-precision timestamp captured once
// per batch.
func RegPrefix(assetName string, at time.Time) string {
	return fmt.Sprintf("%s/%s", SanitizeToken(assetName), at.Format(regTimestampLayout))
}

// RegWithSeq appends the 1-based, zero-padded batch sequence index.
func RegWithSeq(prefix string, idx int) string {
	return fmt.Sprintf("%s/%05d", prefix, idx)
}
