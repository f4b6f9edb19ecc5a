package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File names Load looks for inside a content directory.
const (
	WordsFileName     = "words.yaml"
	SentencesFileName = "sentences.yaml"
)

// wordsFile is the YAML schema for a word database file.
type wordsFile struct {
	Words wordsSection `yaml:"words"`
}

type wordsSection struct {
	Tiers  map[int][]string    `yaml:"tiers"`
	Themes map[string][]string `yaml:"themes"`
}

// sentencesFile is the YAML schema for a sentence database file.
type sentencesFile struct {
	Sentences sentencesSection `yaml:"sentences"`
}

type sentencesSection struct {
	Tiers map[int][]string `yaml:"tiers"`
}

// NewDatabase builds a database from the compiled-in defaults.
//
// Postcondition: the returned database passes full validation, so Word and
// Sentence never return an empty string.
func NewDatabase(src Source) (*Database, error) {
	if src == nil {
		return nil, errors.New("content database requires a randomness source")
	}
	words, err := parseWords([]byte(defaultWordsYAML))
	if err != nil {
		return nil, fmt.Errorf("parsing built-in words: %w", err)
	}
	sentences, err := parseSentences([]byte(defaultSentencesYAML))
	if err != nil {
		return nil, fmt.Errorf("parsing built-in sentences: %w", err)
	}
	d := &Database{
		words:     words.Tiers,
		sentences: sentences.Tiers,
		themes:    words.Themes,
		src:       src,
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("built-in content: %w", err)
	}
	return d, nil
}

// Load builds a database from the compiled-in defaults and then overlays
// words.yaml and sentences.yaml from dir when they exist. Overlay files
// replace whole tiers and themes by key; tiers they do not mention keep the
// default entries. An empty dir returns the defaults untouched.
func Load(dir string, src Source) (*Database, error) {
	d, err := NewDatabase(src)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return d, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory %s: %w", dir, err)
	}

	wordsPath := filepath.Join(dir, WordsFileName)
	data, err := os.ReadFile(wordsPath)
	switch {
	case err == nil:
		section, err := parseWords(data)
		if err != nil {
			return nil, fmt.Errorf("loading words from %s: %w", wordsPath, err)
		}
		overlayTiers(d.words, section.Tiers)
		for name, pool := range section.Themes {
			d.themes[name] = pool
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("loading words from %s: %w", wordsPath, err)
	}

	sentencesPath := filepath.Join(dir, SentencesFileName)
	data, err = os.ReadFile(sentencesPath)
	switch {
	case err == nil:
		section, err := parseSentences(data)
		if err != nil {
			return nil, fmt.Errorf("loading sentences from %s: %w", sentencesPath, err)
		}
		overlayTiers(d.sentences, section.Tiers)
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("loading sentences from %s: %w", sentencesPath, err)
	}

	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("content from %s: %w", dir, err)
	}
	return d, nil
}

// ValidateWordsFile checks that data is a loadable words file.
//
// Postcondition: returns nil exactly when Load would accept the file.
func ValidateWordsFile(data []byte) error {
	_, err := parseWords(data)
	return err
}

// parseWords decodes and validates a single words file.
func parseWords(data []byte) (wordsSection, error) {
	var file wordsFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return wordsSection{}, fmt.Errorf("parsing words file: %w", err)
	}
	if err := validateTiers("words", file.Words.Tiers); err != nil {
		return wordsSection{}, err
	}
	for name, pool := range file.Words.Themes {
		if strings.TrimSpace(name) == "" {
			return wordsSection{}, errors.New("theme name cannot be empty")
		}
		if len(pool) == 0 {
			return wordsSection{}, fmt.Errorf("theme %q has no entries", name)
		}
		for i, entry := range pool {
			if strings.TrimSpace(entry) == "" {
				return wordsSection{}, fmt.Errorf("theme %q entry %d is empty", name, i)
			}
		}
	}
	return file.Words, nil
}

// parseSentences decodes and validates a single sentences file.
func parseSentences(data []byte) (sentencesSection, error) {
	var file sentencesFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return sentencesSection{}, fmt.Errorf("parsing sentences file: %w", err)
	}
	if err := validateTiers("sentences", file.Sentences.Tiers); err != nil {
		return sentencesSection{}, err
	}
	return file.Sentences, nil
}

// validateTiers checks that every supplied tier is in range, populated, and
// free of blank entries.
func validateTiers(kind string, tiers map[int][]string) error {
	for tier, pool := range tiers {
		if tier < MinTier || tier > MaxTier {
			return fmt.Errorf("%s tier %d is out of range [%d, %d]", kind, tier, MinTier, MaxTier)
		}
		if len(pool) == 0 {
			return fmt.Errorf("%s tier %d has no entries", kind, tier)
		}
		for i, entry := range pool {
			if strings.TrimSpace(entry) == "" {
				return fmt.Errorf("%s tier %d entry %d is empty", kind, tier, i)
			}
		}
	}
	return nil
}

// overlayTiers replaces whole tiers in dst with the pools from src.
func overlayTiers(dst, src map[int][]string) {
	for tier, pool := range src {
		dst[tier] = pool
	}
}

// validate checks the cross-file invariants a merged database must hold.
func (d *Database) validate() error {
	if len(d.words[MinTier]) == 0 {
		return fmt.Errorf("words tier %d must be populated", MinTier)
	}
	if len(d.sentences[MinTier]) == 0 {
		return fmt.Errorf("sentences tier %d must be populated", MinTier)
	}
	return nil
}
