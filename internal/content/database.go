// Package content provides the word and sentence databases that feed typing
// encounters. Difficulty tiers run 1 to 10; draws clamp into that range and
// fall back to the nearest populated lower tier, and load-time validation
// guarantees every draw returns a non-empty string.
package content

import (
	"sort"
	"strconv"
)

// Tier bounds for words and sentences.
const (
	MinTier = 1
	MaxTier = 10
)

// themeChance is how often a themed draw replaces a tier draw when a theme
// view is active.
const themeChance = 0.3

// Source is the randomness the database needs. Any implementation from the
// rng package satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Database serves words and sentences by difficulty tier. It satisfies the
// combat engine's WordSource.
//
// Invariant: tier 1 is populated for both words and sentences, so every draw
// returns a non-empty string.
type Database struct {
	words     map[int][]string
	sentences map[int][]string
	themes    map[string][]string
	theme     []string
	src       Source
}

// Word returns a word at or below the requested difficulty. When a theme
// view is active, themed words mix in at a fixed rate regardless of tier.
func (d *Database) Word(difficulty int) string {
	if len(d.theme) > 0 && d.src.Float64() < themeChance {
		return d.theme[d.src.Intn(len(d.theme))]
	}
	return pick(d.words, difficulty, d.src)
}

// Sentence returns a sentence at or below the requested difficulty.
func (d *Database) Sentence(difficulty int) string {
	return pick(d.sentences, difficulty, d.src)
}

// ForTheme returns a view of the database that mixes words from the named
// theme into Word draws. An unknown or empty theme returns the receiver
// unchanged.
func (d *Database) ForTheme(theme string) *Database {
	pool, ok := d.themes[theme]
	if !ok || len(pool) == 0 {
		return d
	}
	view := *d
	view.theme = pool
	return &view
}

// Themes returns the known theme names in sorted order.
func (d *Database) Themes() []string {
	names := make([]string, 0, len(d.themes))
	for name := range d.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WordCount returns the total number of tiered words.
func (d *Database) WordCount() int {
	return countEntries(d.words)
}

// SentenceCount returns the total number of tiered sentences.
func (d *Database) SentenceCount() int {
	return countEntries(d.sentences)
}

func countEntries(tiers map[int][]string) int {
	n := 0
	for _, pool := range tiers {
		n += len(pool)
	}
	return n
}

// clampTier forces difficulty into [MinTier, MaxTier].
func clampTier(difficulty int) int {
	if difficulty < MinTier {
		return MinTier
	}
	if difficulty > MaxTier {
		return MaxTier
	}
	return difficulty
}

// pick draws from the highest populated tier at or below difficulty.
//
// Precondition: tier 1 is populated (enforced at load).
func pick(tiers map[int][]string, difficulty int, src Source) string {
	difficulty = clampTier(difficulty)
	for t := difficulty; t >= MinTier; t-- {
		pool := tiers[t]
		if len(pool) > 0 {
			return pool[src.Intn(len(pool))]
		}
	}
	panic("content: no populated tier at or below " + strconv.Itoa(difficulty))
}
