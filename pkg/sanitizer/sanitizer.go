// Package sanitizer provides filename sanitization for tag-derived names.
// It produces path components that are legal on every filesystem the
// sorted library may land on, including FAT32 and exFAT.
package sanitizer

import (
	"strings"
	"unicode"
)

// reservedNames are Windows/FAT32 device names that are invalid as filenames.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

const deletedChars = `:*?"<>|`

// Sanitize converts arbitrary text into a safe filename component:
// path separators become hyphens, forbidden punctuation and control
// characters are removed, whitespace runs collapse to a single space,
// and leading/trailing dots and spaces are trimmed. Non-ASCII text
// passes through unchanged. The result is never empty ("Unknown" is
// returned instead) and reserved device names are prefixed with an
// underscore. Sanitize is idempotent.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('-')
		case strings.ContainsRune(deletedChars, r):
			// deleted, not replaced
		case unicode.IsControl(r):
			// deleted, not replaced
		default:
			b.WriteRune(r)
		}
	}

	out := strings.Join(strings.Fields(b.String()), " ")
	out = strings.Trim(out, ". ")

	if out == "" {
		return "Unknown"
	}

	if _, ok := reservedNames[strings.ToUpper(out)]; ok {
		return "_" + out
	}

	return out
}
