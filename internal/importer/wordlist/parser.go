package wordlist

import (
	"fmt"
	"strings"
)

// ParseList parses a plain word list: one word per line, blank lines
// skipped, # starts a comment that runs to end of line. Words are
// lowercased. Lines still holding whitespace after trimming are not
// single words and come back as warnings instead.
//
// Postcondition: every returned word is non-empty, lowercase, and free
// of whitespace.
func ParseList(data []byte) (words []string, warnings []string) {
	for i, line := range strings.Split(string(data), "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			warnings = append(warnings, fmt.Sprintf("line %d: %q is not a single word", i+1, line))
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	return words, warnings
}
