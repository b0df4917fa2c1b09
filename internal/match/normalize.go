package match

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and drops separators, so "Drop_Table", "drop table"
// and "DropTable" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.TrimSpace(s) {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
