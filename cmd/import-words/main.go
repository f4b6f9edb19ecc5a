package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/inkhollow/wordwraith/internal/importer"
	"github.com/inkhollow/wordwraith/internal/importer/wordlist"
)

func main() {
	in := flag.String("in", "", "path to a word list file or a directory of .txt lists")
	out := flag.String("out", "", "path to the output content directory")
	theme := flag.String("theme", "", "import the list as this theme's pool instead of tier bands")
	tierOffset := flag.Int("tier-offset", 0, "shift the computed tier band by this amount")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: import-words -in <file|dir> -out <dir> [-theme <name>] [-tier-offset <n>]")
		os.Exit(1)
	}

	start := time.Now()
	imp := importer.New(wordlist.NewSource())
	if err := imp.Run(*in, *out, *theme, *tierOffset); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("import complete in %s\n", time.Since(start).Round(time.Millisecond))
}
