package match

import (
	"strings"

	"github.com/fourshade/spectra-lexer-sub003/rule"
)

// WordMatcher matches rules against an entire whitespace-delimited word. It
// only activates at a word boundary and emits at most one match.
type WordMatcher struct {
	byWord map[string]*rule.Rule
}

// NewWordMatcher builds an empty matcher.
func NewWordMatcher() *WordMatcher {
	return &WordMatcher{byWord: map[string]*rule.Rule{}}
}

// Add registers a rule under its full lowercase word.
func (m *WordMatcher) Add(r *rule.Rule) {
	m.byWord[r.Letters] = r
}

func (m *WordMatcher) Match(skeysHead, lettersHead, _, allLetters string) []Match {
	if !atWordBoundary(lettersHead, allLetters) {
		return nil
	}
	lower := strings.ToLower(lettersHead)
	word := firstWord(lower)
	if word == "" {
		return nil
	}
	r, ok := m.byWord[word]
	if !ok {
		return nil
	}
	if !strings.HasPrefix(skeysHead, r.SKeys) {
		return nil
	}
	offset := strings.Index(lower, word)
	return []Match{{Rule: r, Remaining: skeysHead[len(r.SKeys):], LetterOffset: offset}}
}
