// Package enemy provides enemy template definitions and live spawn scaling.
package enemy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier ranks a template's menace. Elite and boss templates scale harder and
// pay better; an empty tier means normal.
type Tier string

const (
	TierNormal Tier = "normal"
	TierElite  Tier = "elite"
	TierBoss   Tier = "boss"
)

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	BaseHP      int    `yaml:"base_hp"`
	BaseAttack  int    `yaml:"base_attack"`
	XPReward    int    `yaml:"xp_reward"`
	GoldReward  int    `yaml:"gold_reward"`
	// TypingTheme selects a themed word list; empty means untouched tiers.
	TypingTheme string `yaml:"typing_theme"`
	Tier        Tier   `yaml:"tier"`
	// AttackMessages are drawn by the combat engine during enemy turns.
	AttackMessages []string `yaml:"attack_messages"`
	BattleCry      string   `yaml:"battle_cry"`
	DefeatMessage  string   `yaml:"defeat_message"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, BaseHP >= 1,
// BaseAttack >= 1, rewards are non-negative, and Tier is a known value;
// returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	if t.BaseHP < 1 {
		return fmt.Errorf("enemy template %q: base_hp must be >= 1", t.ID)
	}
	if t.BaseAttack < 1 {
		return fmt.Errorf("enemy template %q: base_attack must be >= 1", t.ID)
	}
	if t.XPReward < 0 {
		return fmt.Errorf("enemy template %q: xp_reward must not be negative", t.ID)
	}
	if t.GoldReward < 0 {
		return fmt.Errorf("enemy template %q: gold_reward must not be negative", t.ID)
	}
	switch t.Tier {
	case "", TierNormal, TierElite, TierBoss:
	default:
		return fmt.Errorf("enemy template %q: unknown tier %q", t.ID, t.Tier)
	}
	return nil
}

// EffectiveTier returns the template's tier with the empty default resolved.
func (t *Template) EffectiveTier() Tier {
	if t.Tier == "" {
		return TierNormal
	}
	return t.Tier
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing enemy template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplateFromFile reads path and parses it as a single Template.
func LoadTemplateFromFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	tmpl, err := LoadTemplateFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		tmpl, err := LoadTemplateFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
