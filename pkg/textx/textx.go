// Package textx provides small text utilities for free-text profile fields.
package textx

import (
	"strings"
	"unicode"
)

// SanitizeText removes control characters except tab/newline/CR and trims
// spaces. Use it for multi-line fields such as health or task notes.
func SanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SanitizeLine is SanitizeText for single-line fields: names, contacts and
// tags. Runs of whitespace, line breaks included, collapse to one space.
func SanitizeLine(s string) string {
	return strings.Join(strings.FieldsFunc(SanitizeText(s), unicode.IsSpace), " ")
}

// SanitizeList cleans every entry with SanitizeLine and drops empty and
// repeated ones, keeping first-seen order. The result is never nil.
func SanitizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = SanitizeLine(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
