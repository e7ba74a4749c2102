package match

import (
	"strings"

	"github.com/fourshade/spectra-lexer-sub003/keys"
	"github.com/fourshade/spectra-lexer-sub003/rule"
)

// SpecialMatcher implements the four hard-coded special-rule behaviors
// Each behavior is registered at most once, under the
// rule with the matching hard-coded id; an unregistered behavior never
// fires. SpecialMatcher is consulted by the search only when every other
// matcher produced nothing for the current head.
type SpecialMatcher struct {
	layout   *keys.Layout
	abbr     *rule.Rule
	prop     *rule.Rule
	pfsf     *rule.Rule
	fallback *rule.Rule
}

// NewSpecialMatcher builds an empty matcher.
func NewSpecialMatcher(layout *keys.Layout) *SpecialMatcher {
	return &SpecialMatcher{layout: layout}
}

// AddAbbreviation registers the ABBR behavior's rule template.
func (m *SpecialMatcher) AddAbbreviation(r *rule.Rule) { m.abbr = r }

// AddProperNoun registers the PROP behavior's rule template.
func (m *SpecialMatcher) AddProperNoun(r *rule.Rule) { m.prop = r }

// AddAffix registers the PFSF behavior's rule template. The template rule's
// Letters field encodes, by convention, which side of the fragment is
// literal and which is open: a leading "^" marks a suffix fragment (the
// text after "^" must match the head of the remaining letters through the
// end of the current word, not necessarily the end of the whole query), a
// trailing "^" marks a prefix fragment (the text before "^" must match the
// head of the remaining letters). This direction is read dynamically from
// the rule data, rather than hard-coded per rule id.
func (m *SpecialMatcher) AddAffix(r *rule.Rule) { m.pfsf = r }

// AddFallback registers the FALLBACK behavior's rule template.
func (m *SpecialMatcher) AddFallback(r *rule.Rule) { m.fallback = r }

func (m *SpecialMatcher) Match(skeysHead, lettersHead, allSKeys, allLetters string) []Match {
	var out []Match
	if m.abbr != nil {
		if n := abbreviationSpan(lettersHead); n > 0 && atStrokeBoundary(skeysHead, allSKeys, m.layout.Separator) {
			stroke, rest := firstStroke(skeysHead, m.layout.Separator)
			if stroke != "" {
				out = append(out, Match{
					Rule:         synth(rule.Abbreviation, stroke, strings.ToLower(lettersHead[:n])),
					Remaining:    rest,
					LetterOffset: 0,
				})
			}
		}
	}
	if m.prop != nil {
		if n := properSpan(lettersHead); n > 0 && atStrokeBoundary(skeysHead, allSKeys, m.layout.Separator) {
			stroke, rest := firstStroke(skeysHead, m.layout.Separator)
			if stroke != "" {
				out = append(out, Match{
					Rule:         synth(rule.ProperNoun, stroke, strings.ToLower(lettersHead[:n])),
					Remaining:    rest,
					LetterOffset: 0,
				})
			}
		}
	}
	if match, ok := m.matchAffix(skeysHead, lettersHead); ok {
		out = append(out, match)
	}
	if m.fallback != nil {
		stroke, rest := firstStroke(skeysHead, m.layout.Separator)
		if stroke != "" {
			out = append(out, Match{
				Rule:         synth(rule.Fallback, stroke, ""),
				Remaining:    rest,
				LetterOffset: 0,
			})
		}
	}
	return out
}

func (m *SpecialMatcher) matchAffix(skeysHead, lettersHead string) (Match, bool) {
	if m.pfsf == nil || !strings.HasPrefix(skeysHead, m.pfsf.SKeys) {
		return Match{}, false
	}
	lower := strings.ToLower(lettersHead)
	letters := m.pfsf.Letters
	switch {
	case strings.HasPrefix(letters, "^"):
		text := letters[1:]
		if !strings.HasPrefix(lower, text) {
			return Match{}, false
		}
		// text must reach the end of the current word, not necessarily the
		// end of the whole (possibly multi-word) query.
		if rest := lower[len(text):]; rest != "" && rest[0] != ' ' {
			return Match{}, false
		}
		return Match{
			Rule:         synth(rule.Affix, m.pfsf.SKeys, text),
			Remaining:    skeysHead[len(m.pfsf.SKeys):],
			LetterOffset: 0,
		}, true
	case strings.HasSuffix(letters, "^"):
		text := letters[:len(letters)-1]
		if !strings.HasPrefix(lower, text) {
			return Match{}, false
		}
		return Match{
			Rule:         synth(rule.Affix, m.pfsf.SKeys, text),
			Remaining:    skeysHead[len(m.pfsf.SKeys):],
			LetterOffset: 0,
		}, true
	default:
		return Match{}, false
	}
}

// synth builds a transient rule for a special match whose keys/letters are
// discovered dynamically from the query rather than fixed in the database.
func synth(id, skeys, letters string) *rule.Rule {
	return &rule.Rule{
		ID:      id,
		SKeys:   skeys,
		Letters: letters,
		Flags:   rule.ParseFlags(rule.FlagSpecial),
		Weight:  0,
	}
}

// SynthesizeFallback builds a transient FALLBACK rule consuming the given
// s-keys and no letters. It is exported for use by the search package's
// no-match safety net.
func SynthesizeFallback(skeys string) *rule.Rule {
	return synth(rule.Fallback, skeys, "")
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

// abbreviationSpan returns the length of an abbreviation at the start of s:
// either a run of 2+ uppercase letters, or a single capital followed by '.'.
func abbreviationSpan(s string) int {
	i := 0
	for i < len(s) && isUpper(s[i]) {
		i++
	}
	if i >= 2 {
		return i
	}
	if i == 1 && i < len(s) && s[i] == '.' {
		return 2
	}
	return 0
}

// properSpan returns the length of a leading-capital word at the start of s.
func properSpan(s string) int {
	if s == "" || !isUpper(s[0]) {
		return 0
	}
	return len(firstWord(s))
}
