package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases a name and replaces runs of non-alphanumeric characters
// with single hyphens ("Maruti Suzuki" -> "maruti-suzuki").
func Slugify(name string) string {
	var sb strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
