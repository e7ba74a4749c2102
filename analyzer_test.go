package spectralexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourshade/spectra-lexer-sub003/keys"
	"github.com/fourshade/spectra-lexer-sub003/rule"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	layout := keys.DefaultLayout()
	raw, err := rule.DefaultDeclarations()
	require.NoError(t, err)
	db, err := rule.Load(raw, layout)
	require.NoError(t, err)
	return NewAnalyzer(layout, db)
}

func TestQueryPrefixFragments(t *testing.T) {
	a := newTestAnalyzer(t)
	res := a.Query("HEL/LOE", "hello", false)
	require.Len(t, res.Connections, 2)
	assert.Equal(t, "HEL", res.Connections[0].RuleID)
	assert.Equal(t, "LOE", res.Connections[1].RuleID)
	for _, c := range res.Connections {
		assert.NotEqual(t, UnmatchedID, c.RuleID, "did not expect an unmatched span, got %+v", res.Connections)
	}
}

func TestQueryWholeStrokeWord(t *testing.T) {
	a := newTestAnalyzer(t)
	res := a.Query("TEFT", "test", false)
	require.Len(t, res.Connections, 1)
	assert.Equal(t, "TEFT", res.Connections[0].RuleID)
}

func TestQueryTwoStrokeWords(t *testing.T) {
	a := newTestAnalyzer(t)
	res := a.Query("PHROFR/TEFT", "plover test", false)
	require.Len(t, res.Connections, 2)
	assert.Equal(t, "PHROFR", res.Connections[0].RuleID)
	assert.Equal(t, "TEFT", res.Connections[1].RuleID)
}

func TestQueryPrefixPairForFn(t *testing.T) {
	a := newTestAnalyzer(t)
	res := a.Query("TP-PB", "fn", false)
	require.Len(t, res.Connections, 2)
	assert.Equal(t, "TP", res.Connections[0].RuleID)
	assert.Equal(t, "-PB", res.Connections[1].RuleID)
}

func TestQueryInvalidKeysYieldUnmatchedSpan(t *testing.T) {
	a := newTestAnalyzer(t)
	res := a.Query("XYZ", "???", false)
	require.Len(t, res.Connections, 1)
	assert.Equal(t, UnmatchedID, res.Connections[0].RuleID)
	assert.Equal(t, "XYZ", res.Connections[0].Keys)
}

func TestQueryUnknownStrokeFallsBackToFallbackRule(t *testing.T) {
	a := newTestAnalyzer(t)
	// "SKWR" is a well-formed stroke under the default layout with no
	// registered rule, so the FALLBACK special rule should absorb it.
	res := a.Query("SKWR", "???", false)
	require.Len(t, res.Connections, 1)
	assert.Equal(t, rule.Fallback, res.Connections[0].RuleID)
}

func TestParallelQueryOmitsSpecialRuleIDs(t *testing.T) {
	a := newTestAnalyzer(t)
	out := a.ParallelQuery("HEL/LOE", "hello")
	require.Len(t, out, 4, "expected [keys, letters, HEL, LOE], got %v", out)
	assert.Equal(t, "HEL/LOE", out[0])
	assert.Equal(t, "hello", out[1])
	// "SKWR" is only covered by the FALLBACK special rule, whose id is dropped.
	assert.Equal(t, []string{"SKWR", "???"}, a.ParallelQuery("SKWR", "???"))
}

func TestParallelQueryEmptyOnUnmatched(t *testing.T) {
	a := newTestAnalyzer(t)
	out := a.ParallelQuery("XYZ", "???")
	assert.Len(t, out, 2, "expected just [keys, letters] for an invalid stroke")
}

func TestBestTranslationPrefersFullyMatchedOutline(t *testing.T) {
	a := newTestAnalyzer(t)
	best := a.BestTranslation([]Translation{
		{Keys: "XYZ", Letters: "test"},  // invalid keys, fully unmatched
		{Keys: "TEFT", Letters: "test"}, // whole-stroke match
	})
	assert.Equal(t, "TEFT", best.Keys)
}
