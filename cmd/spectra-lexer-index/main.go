// Command spectra-lexer-index builds a rule examples index from one or more
// steno translation dictionaries: for every rule in the rule set (the bundled
// default unless -rules names a file), the translations that pass the -size
// filter and whose analysis exercises that rule.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	spectralexer "github.com/fourshade/spectra-lexer-sub003"
	"github.com/fourshade/spectra-lexer-sub003/index"
	"github.com/fourshade/spectra-lexer-sub003/keys"
	"github.com/fourshade/spectra-lexer-sub003/rule"
)

// status reports progress and errors to stderr; result writes only the
// final completion line to stdout, so it survives a caller's `2>/dev/null`.
var (
	status = log.New(os.Stderr, "", 0)
	result = log.New(os.Stdout, "", 0)
)

func main() {
	size := flag.Int("size", 0, "index size, 1 (nothing) to 20 (everything); 0 selects the default")
	processes := flag.Int("processes", 0, "worker goroutines to use; 0 auto-detects from GOMAXPROCS")
	rulesPath := flag.String("rules", "", "rule declarations JSON file; empty uses the bundled default set")
	out := flag.String("out", "examples.json", "output examples index path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] translations.json [translations2.json ...]\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		for _, d := range index.NewSizeFilter(0).SizeDescriptions() {
			fmt.Fprintln(os.Stderr, d)
		}
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	start := time.Now()
	if err := run(*rulesPath, *out, *size, *processes, flag.Args()); err != nil {
		status.Fatal(err)
	}
	result.Printf("Operation done in %.3f seconds.", time.Since(start).Seconds())
}

func run(rulesPath, outPath string, size, processes int, translationPaths []string) error {
	raw, err := loadDeclarations(rulesPath)
	if err != nil {
		return fmt.Errorf("loading rule declarations: %w", err)
	}
	layout := keys.DefaultLayout()
	db, err := rule.Load(raw, layout)
	if err != nil {
		return fmt.Errorf("building rule database: %w", err)
	}
	analyzer := spectralexer.NewAnalyzer(layout, db)

	translations, err := index.LoadTranslations(translationPaths...)
	if err != nil {
		return err
	}
	status.Printf("Loaded %d translations from %d file(s).", len(translations), len(translationPaths))

	if processes <= 0 {
		processes = runtime.GOMAXPROCS(0)
	}
	builder := &index.Builder{Analyzer: analyzer, Size: size, Processes: processes}
	examples := builder.Build(context.Background(), translations)
	status.Printf("Indexed %d rule(s).", len(examples))

	if err := index.SaveExamplesIndex(outPath, examples); err != nil {
		return err
	}
	status.Printf("Wrote index to %s.", outPath)
	return nil
}

func loadDeclarations(rulesPath string) (map[string]rule.RawRule, error) {
	if rulesPath == "" {
		return rule.DefaultDeclarations()
	}
	data, err := os.ReadFile(rulesPath)
	if err != nil {
		return nil, err
	}
	return rule.DecodeDeclarations(data)
}
