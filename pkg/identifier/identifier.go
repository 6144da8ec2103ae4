package identifier

import "github.com/google/uuid"

// canonical UUID length, 8-4-4-4-12 hex groups
const canonicalLen = 36

// IsValidUUID reports whether s is a well-formed UUID in canonical
// 8-4-4-4-12 form, case-insensitive. Braced, URN and bare-hex variants
// are rejected.
func IsValidUUID(s string) bool {
	if len(s) != canonicalLen {
		return false
	}

	_, err := uuid.Parse(s)

	return err == nil
}
