package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubAnalyzer returns fixed rule ids for each translation, bypassing the
// real lexer so the builder's filtering/inversion plumbing can be tested in
// isolation.
type stubAnalyzer struct {
	byKeys map[string][]string
}

func (s stubAnalyzer) ParallelQuery(keysOuter, letters string) []string {
	ids, ok := s.byKeys[keysOuter]
	if !ok {
		return []string{keysOuter, letters}
	}
	out := []string{keysOuter, letters}
	return append(out, ids...)
}

func TestBuilderInvertsRuleIDsToTranslations(t *testing.T) {
	analyzer := stubAnalyzer{byKeys: map[string][]string{
		"HEL/LOE": {"HEL", "LOE"},
		"TEFT":    {"TEFT"},
	}}
	b := &Builder{Analyzer: analyzer, Size: 20, Processes: 1}
	out := b.Build(context.Background(), map[string]string{
		"HEL/LOE": "hello",
		"TEFT":    "test",
	})
	assert.Equal(t, "hello", out["HEL"]["HEL/LOE"])
	assert.Equal(t, "hello", out["LOE"]["HEL/LOE"])
	assert.Equal(t, "test", out["TEFT"]["TEFT"])
}

func TestBuilderDropsUnmatchedTranslations(t *testing.T) {
	analyzer := stubAnalyzer{byKeys: map[string][]string{}} // always returns no rule ids
	b := &Builder{Analyzer: analyzer, Size: 20, Processes: 1}
	out := b.Build(context.Background(), map[string]string{"XYZ": "???"})
	assert.Empty(t, out)
}

func TestBuilderRespectsSizeFilter(t *testing.T) {
	analyzer := stubAnalyzer{byKeys: map[string][]string{
		"HEL": {"HEL"},
	}}
	b := &Builder{Analyzer: analyzer, Size: 1, Processes: 1} // size 1 == minimum, drops everything
	out := b.Build(context.Background(), map[string]string{"HEL": "hi"})
	assert.Empty(t, out, "expected the minimum size filter to drop everything")
}
