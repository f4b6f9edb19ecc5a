package importer

import (
	"strings"
	"unicode/utf8"

	"github.com/inkhollow/wordwraith/internal/content"
)

// NameToID converts a display name to a stable snake_case identifier.
//
// Postcondition: result is lowercase, contains only [a-z0-9_], and is
// idempotent (NameToID(NameToID(s)) == NameToID(s)).
func NameToID(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TierFor bands a word into a difficulty tier by rune length. Three
// letters band to tier 1 and each extra letter adds a tier.
//
// Postcondition: result is within [content.MinTier, content.MaxTier].
func TierFor(word string) int {
	tier := utf8.RuneCountInString(word) - 2
	if tier < content.MinTier {
		return content.MinTier
	}
	if tier > content.MaxTier {
		return content.MaxTier
	}
	return tier
}

// Band assembles the output document. With a theme name the whole list
// becomes that theme's pool; otherwise words band into tiers by length,
// shifted by tierOffset and clamped back into the valid range. Duplicates
// are dropped, first occurrence wins.
func Band(words []string, theme string, tierOffset int) *WordsDoc {
	doc := &WordsDoc{}
	if theme != "" {
		doc.Words.Themes = map[string][]string{NameToID(theme): union(nil, words)}
		return doc
	}
	doc.Words.Tiers = make(map[int][]string)
	for _, w := range words {
		tier := TierFor(w) + tierOffset
		if tier < content.MinTier {
			tier = content.MinTier
		}
		if tier > content.MaxTier {
			tier = content.MaxTier
		}
		doc.Words.Tiers[tier] = append(doc.Words.Tiers[tier], w)
	}
	for tier, pool := range doc.Words.Tiers {
		doc.Words.Tiers[tier] = union(nil, pool)
	}
	return doc
}

// union appends the entries of add that base does not already hold,
// preserving order.
func union(base, add []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, w := range base {
		seen[w] = struct{}{}
	}
	out := base
	for _, w := range add {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
