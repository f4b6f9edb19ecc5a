// Package player defines the player-side state for Wordwraith runs: the
// class roster and the mutable combatant the session feeds into encounters.
package player

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Class defines a starting loadout. FleeBonus is added to the base flee
// chance when an encounter is built.
//
// Precondition: ID, Name, and BaseHP must be non-zero after loading.
type Class struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	BaseHP       int     `yaml:"base_hp"`
	BaseShield   int     `yaml:"base_shield"`
	StartingGold int     `yaml:"starting_gold"`
	FleeBonus    float64 `yaml:"flee_bonus"`
}

// Validate checks the class for structural problems.
//
// Postcondition: A nil return means the class is safe to register.
func (c Class) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("class has no id")
	}
	if c.Name == "" {
		return fmt.Errorf("class %q has no name", c.ID)
	}
	if c.BaseHP <= 0 {
		return fmt.Errorf("class %q has non-positive base HP %d", c.ID, c.BaseHP)
	}
	if c.BaseShield < 0 {
		return fmt.Errorf("class %q has negative base shield %d", c.ID, c.BaseShield)
	}
	if c.StartingGold < 0 {
		return fmt.Errorf("class %q has negative starting gold %d", c.ID, c.StartingGold)
	}
	if c.FleeBonus < 0 || c.FleeBonus > 0.4 {
		return fmt.Errorf("class %q flee bonus %v outside [0, 0.4]", c.ID, c.FleeBonus)
	}
	return nil
}

// DefaultClasses returns the built-in roster. The game is playable with no
// class files on disk; LoadClasses entries override these by ID.
func DefaultClasses() []Class {
	return []Class{
		{
			ID:           "vanguard",
			Name:         "Vanguard",
			Description:  "Front-line duelist who outlasts the enemy word for word.",
			BaseHP:       120,
			BaseShield:   10,
			StartingGold: 15,
		},
		{
			ID:           "scribe",
			Name:         "Scribe",
			Description:  "Scholar of the broken lexicon; frail but well funded.",
			BaseHP:       90,
			BaseShield:   5,
			StartingGold: 30,
			FleeBonus:    0.05,
		},
		{
			ID:           "shadow",
			Name:         "Shadow",
			Description:  "Escape artist who slips out of fights that turn sour.",
			BaseHP:       80,
			StartingGold: 25,
			FleeBonus:    0.2,
		},
		{
			ID:           "warden",
			Name:         "Warden",
			Description:  "Shielded sentinel built to absorb enemy turns.",
			BaseHP:       110,
			BaseShield:   25,
			StartingGold: 10,
		},
		{
			ID:           "drifter",
			Name:         "Drifter",
			Description:  "Wanderer with deep pockets and a knack for leaving.",
			BaseHP:       95,
			BaseShield:   5,
			StartingGold: 50,
			FleeBonus:    0.1,
		},
	}
}

// LoadClasses reads every *.yaml file in dir, parsing each as one Class.
//
// Precondition: dir must be a readable directory.
// Postcondition: Every returned class passes Validate.
func LoadClasses(dir string) ([]Class, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading class dir %q: %w", dir, err)
	}
	classes := make([]Class, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var c Class
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("parsing class file %q: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("class file %q: %w", path, err)
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// Registry holds all known classes keyed by ID.
type Registry struct {
	classes map[string]Class
}

// NewRegistry builds a registry from classes.
//
// Precondition: every class must pass Validate.
// Postcondition: Returns a non-nil Registry; later entries override earlier
// ones with the same ID.
func NewRegistry(classes []Class) (*Registry, error) {
	r := &Registry{classes: make(map[string]Class, len(classes))}
	for _, c := range classes {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		r.classes[c.ID] = c
	}
	return r, nil
}

// Class returns the class for the given ID, if registered.
func (r *Registry) Class(id string) (Class, bool) {
	c, ok := r.classes[id]
	return c, ok
}

// IDs returns all registered class IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.classes))
	for id := range r.classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
