package match

import (
	"strings"

	"github.com/fourshade/spectra-lexer-sub003/keys"
	"github.com/fourshade/spectra-lexer-sub003/rule"
)

// StrokeMatcher matches rules against an entire stroke at once. It only
// activates at a stroke boundary and emits at most one match.
type StrokeMatcher struct {
	layout  *keys.Layout
	byStrok map[string]*rule.Rule
}

// NewStrokeMatcher builds an empty matcher.
func NewStrokeMatcher(layout *keys.Layout) *StrokeMatcher {
	return &StrokeMatcher{layout: layout, byStrok: map[string]*rule.Rule{}}
}

// Add registers a rule under its full-stroke s-keys.
func (m *StrokeMatcher) Add(r *rule.Rule) {
	m.byStrok[r.SKeys] = r
}

func (m *StrokeMatcher) Match(skeysHead, lettersHead, allSKeys, _ string) []Match {
	if !atStrokeBoundary(skeysHead, allSKeys, m.layout.Separator) {
		return nil
	}
	stroke, rest := firstStroke(skeysHead, m.layout.Separator)
	r, ok := m.byStrok[stroke]
	if !ok {
		return nil
	}
	lower := strings.ToLower(lettersHead)
	offset := strings.Index(lower, r.Letters)
	if offset < 0 {
		return nil
	}
	return []Match{{Rule: r, Remaining: rest, LetterOffset: offset}}
}
