package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourshade/spectra-lexer-sub003/keys"
	"github.com/fourshade/spectra-lexer-sub003/rule"
)

func TestSpecialMatcherAbbreviation(t *testing.T) {
	layout := keys.DefaultLayout()
	m := NewSpecialMatcher(layout)
	m.AddAbbreviation(newRule(rule.Abbreviation, "", ""))

	matches := m.Match("TEft", "NASA rocket", "TEft", "NASA rocket")
	require.Len(t, matches, 1)
	assert.Equal(t, rule.Abbreviation, matches[0].Rule.ID)
	assert.Equal(t, "nasa", matches[0].Rule.Letters)
}

func TestSpecialMatcherProperNoun(t *testing.T) {
	layout := keys.DefaultLayout()
	m := NewSpecialMatcher(layout)
	m.AddProperNoun(newRule(rule.ProperNoun, "", ""))

	matches := m.Match("TEft", "Paris is nice", "TEft", "Paris is nice")
	require.Len(t, matches, 1)
	assert.Equal(t, "paris", matches[0].Rule.Letters)
}

func TestSpecialMatcherAffixSuffixSentinel(t *testing.T) {
	layout := keys.DefaultLayout()
	m := NewSpecialMatcher(layout)
	// leading "^" marks the rest as a literal suffix fragment; SKeys is
	// already in inner form, as rule.Load would produce it.
	m.AddAffix(newRule(rule.Affix, "s", "^s"))

	// Head is what's left after an earlier matcher consumed "test".
	matches := m.Match("s", "s", "TEfts", "tests")
	affix := findAffix(matches)
	require.NotNil(t, affix, "expected an affix match, got %v", matches)
	assert.Equal(t, "", affix.Remaining)
}

func TestSpecialMatcherAffixSuffixMatchesMidPhraseWord(t *testing.T) {
	layout := keys.DefaultLayout()
	m := NewSpecialMatcher(layout)
	m.AddAffix(newRule(rule.Affix, "s", "^s"))

	// "s" ends the current word ("tests") but is followed by another word,
	// not the end of the whole query; the suffix must still match.
	matches := m.Match("s", "s outline", "TEfts outline", "tests outline")
	affix := findAffix(matches)
	require.NotNil(t, affix, "expected an affix match for a mid-phrase suffix, got %v", matches)
	assert.Equal(t, "", affix.Remaining)
}

func TestSpecialMatcherAffixSuffixRejectsPartialWord(t *testing.T) {
	layout := keys.DefaultLayout()
	m := NewSpecialMatcher(layout)
	m.AddAffix(newRule(rule.Affix, "s", "^s"))

	// "s" is only part of the current word ("sing"), not its entire tail.
	matches := m.Match("s", "sing outline", "TEfts outline", "tests outline")
	assert.Nil(t, findAffix(matches), "expected no affix match mid-word")
}

func findAffix(matches []Match) *Match {
	for i := range matches {
		if matches[i].Rule.ID == rule.Affix {
			return &matches[i]
		}
	}
	return nil
}

func TestSpecialMatcherFallbackConsumesWholeStroke(t *testing.T) {
	layout := keys.DefaultLayout()
	m := NewSpecialMatcher(layout)
	m.AddFallback(newRule(rule.Fallback, "", ""))

	matches := m.Match("XYZ/TEft", "??", "XYZ/TEft", "??")
	require.Len(t, matches, 1)
	assert.Equal(t, "/TEft", matches[0].Remaining)
	assert.Equal(t, "", matches[0].Rule.Letters)
}

func TestSynthesizeFallback(t *testing.T) {
	r := SynthesizeFallback("XYZ")
	assert.Equal(t, rule.Fallback, r.ID)
	assert.Equal(t, "XYZ", r.SKeys)
	assert.Equal(t, "", r.Letters)
}
