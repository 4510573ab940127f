// Package credits normalizes actor and director names for matching.
package credits

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDelimiter separates names inside a credit field.
const DefaultDelimiter = ","

// Canonical title-cases a name and collapses inner whitespace.
// Two names match when their canonical forms are equal.
func Canonical(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(fields, " "))
}

// Split breaks a credit field into canonical names. Empty entries are
// dropped and duplicates within one field are kept once.
func Split(field, delimiter string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	parts := strings.Split(field, delimiter)
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		c := Canonical(p)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
