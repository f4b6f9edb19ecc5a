package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inkhollow/wordwraith/internal/content"
)

// Importer orchestrates word import from a Source to a content directory.
type Importer struct {
	source Source
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source) *Importer {
	return &Importer{source: source}
}

// Run loads words from inPath, bands them, and writes them into
// outDir/words.yaml. When that file already exists its entries are kept
// and the new words merge in after them. With a theme name the list
// becomes that theme's pool instead of tier bands; tierOffset shifts the
// computed band.
//
// Precondition: inPath must satisfy the source's layout requirements;
// outDir must exist or be creatable.
// Postcondition: outDir/words.yaml is written and loadable, or an error
// is returned.
func (imp *Importer) Run(inPath, outDir, theme string, tierOffset int) error {
	overall := time.Now()

	t0 := time.Now()
	words, err := imp.source.Load(inPath)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}
	fmt.Printf("load    %d word(s) in %s\n", len(words), time.Since(t0).Round(time.Millisecond))

	doc := Band(words, theme, tierOffset)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}
	outPath := filepath.Join(outDir, content.WordsFileName)

	t1 := time.Now()
	merged, err := mergeExisting(doc, outPath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("serialising word database: %w", err)
	}

	// Validate output is loadable before writing.
	if err := content.ValidateWordsFile(data); err != nil {
		return fmt.Errorf("output failed validation: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Printf("wrote   %s  (%d tiers, %d themes)  in %s\n",
		outPath, len(merged.Words.Tiers), len(merged.Words.Themes), time.Since(t1).Round(time.Millisecond))
	fmt.Printf("total   %s\n", time.Since(overall).Round(time.Millisecond))
	return nil
}

// mergeExisting layers doc onto the words file already at outPath, if
// any. Existing entries keep their position; new entries append after.
func mergeExisting(doc *WordsDoc, outPath string) (*WordsDoc, error) {
	data, err := os.ReadFile(outPath)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading existing %s: %w", outPath, err)
	}
	if err := content.ValidateWordsFile(data); err != nil {
		return nil, fmt.Errorf("existing %s: %w", outPath, err)
	}

	var existing WordsDoc
	if err := yaml.Unmarshal(data, &existing); err != nil {
		return nil, fmt.Errorf("parsing existing %s: %w", outPath, err)
	}

	for tier, pool := range doc.Words.Tiers {
		if existing.Words.Tiers == nil {
			existing.Words.Tiers = make(map[int][]string)
		}
		existing.Words.Tiers[tier] = union(existing.Words.Tiers[tier], pool)
	}
	for name, pool := range doc.Words.Themes {
		if existing.Words.Themes == nil {
			existing.Words.Themes = make(map[string][]string)
		}
		existing.Words.Themes[name] = union(existing.Words.Themes[name], pool)
	}
	return &existing, nil
}
