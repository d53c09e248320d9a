package helper

import (
	"strings"
	"unicode"
)

// Underscore converts a StructField name like "DisplayOrder" to the
// "display_order" key used in validation error payloads. Acronym runs stay
// together, so "TopicID" becomes "topic_id" rather than "topic_i_d".
func Underscore(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !unicode.IsUpper(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
