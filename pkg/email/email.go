// Package email derives human-facing display names from email addresses.
// Group administrators are registered by email only, so notification
// salutations are built from the address itself.
package email

import (
	"strings"
	"unicode"
)

// DisplayName extracts a greeting name from an email address: the first
// word of the local part, capitalized. Falls back to "Administrator" when
// the local part yields nothing usable.
func DisplayName(address string) string {
	localPart := address
	if at := strings.IndexByte(address, '@'); at > 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Administrator"
	}
	return capitalize(parts[0])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
