package index

import (
	"context"

	"github.com/fourshade/spectra-lexer-sub003/parallel"
)

// Analyzer is the subset of spectralexer.Analyzer the index builder needs;
// an interface so this package never imports the analyzer package; the
// parallel result type stays strictly plain data.
type Analyzer interface {
	ParallelQuery(keysOuter, letters string) []string
}

// Builder applies a size filter to a translations dictionary, runs the
// analyzer across it in parallel, and inverts the (translation -> rule ids)
// results into (rule id -> translations).
type Builder struct {
	Analyzer  Analyzer
	Size      int
	Processes int
}

// item is the ParallelQuery-bound tuple for one translation.
type item struct {
	keysOuter string
	letters   string
}

// Build runs the full index-generation pipeline and returns
// { rule_id -> { keys_outer -> letters } }. Later-seen entries for the same
// keys in the same rule bucket overwrite earlier ones, a dict-of-dicts
// accumulation.
func (b *Builder) Build(ctx context.Context, translations map[string]string) map[string]map[string]string {
	filtered := NewSizeFilter(b.Size).Filter(translations)
	items := make([]item, 0, len(filtered))
	for k, v := range filtered {
		items = append(items, item{keysOuter: k, letters: v})
	}
	mapper := parallel.New(func(it item) []string {
		return b.Analyzer.ParallelQuery(it.keysOuter, it.letters)
	}, b.Processes, true, nil)
	results := mapper.StarMap(ctx, items)

	out := map[string]map[string]string{}
	for _, r := range results {
		if len(r) < 2 {
			continue
		}
		keysOuter, letters := r[0], r[1]
		for _, id := range r[2:] {
			bucket, ok := out[id]
			if !ok {
				bucket = map[string]string{}
				out[id] = bucket
			}
			bucket[keysOuter] = letters
		}
	}
	return out
}
