package keychain

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeUUID returns the container spelling of an item UUID: 32 upper-case hex
// digits without dashes. Dashed, braced and urn forms are accepted. Strings that are
// not UUIDs are only trimmed and upper-cased.
func NormalizeUUID(s string) string {
	s = strings.TrimSpace(s)
	parsed, err := uuid.Parse(s)
	if err != nil {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(strings.ReplaceAll(parsed.String(), "-", ""))
}
