package importer

// WordsDoc is the document the importer writes. Its YAML tags match the
// word database schema exactly, so it can be marshalled directly and
// loaded by content.Load.
type WordsDoc struct {
	Words WordsBody `yaml:"words"`
}

// WordsBody holds tier bands and theme pools.
type WordsBody struct {
	Tiers  map[int][]string    `yaml:"tiers,omitempty"`
	Themes map[string][]string `yaml:"themes,omitempty"`
}

// Source loads words from a format-specific path and returns them in
// input order, normalized to lowercase.
//
// Precondition: path must exist and contain the expected layout for the
// format.
// Postcondition: returns at least one word, or a non-nil error.
type Source interface {
	Load(path string) ([]string, error)
}
