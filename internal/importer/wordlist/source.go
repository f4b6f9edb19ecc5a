package wordlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkhollow/wordwraith/internal/importer"
)

var _ importer.Source = (*ListSource)(nil)

// ListSource implements importer.Source for plain text word lists.
// path may be a single list file or a directory holding .txt lists,
// which load in name order.
type ListSource struct{}

// NewSource constructs a ListSource.
func NewSource() *ListSource { return &ListSource{} }

// Load reads the word lists rooted at path. Warnings for lines that are
// not single words are printed to stderr and the lines skipped.
//
// Precondition: path must be a readable file or directory.
// Postcondition: returns at least one word or a non-nil error.
func (s *ListSource) Load(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("word list source %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = listFiles(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no .txt word lists found in %s", path)
		}
	}

	var words []string
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading word list %s: %w", f, err)
		}
		parsed, warnings := ParseList(data)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "WARNING: %s: %s\n", f, w)
		}
		words = append(words, parsed...)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no words found in %s", path)
	}
	return words, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".txt") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
