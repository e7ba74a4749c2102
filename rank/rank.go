// Package rank implements the total order over lexer terminal states used to
// select the single best decomposition of a query, and the related
// best-of-translations comparison.
package rank

import "github.com/fourshade/spectra-lexer-sub003/rule"

// RuleEntry pairs a matched rule with the offset into the query's letters
// where its letters begin.
type RuleEntry struct {
	Rule        *rule.Rule
	LetterStart int
}

// State is the lexer's state at some point during search: the s-keys not
// yet matched, paired with the ordered sequence of rules matched so far.
type State struct {
	UnmatchedSKeys string
	Rules          []RuleEntry
}

// Complete reports whether the state has consumed every key.
func (s State) Complete() bool { return s.UnmatchedSKeys == "" }

// LettersMatched is the sum of matched-rule letter lengths.
func (s State) LettersMatched() int {
	n := 0
	for _, e := range s.Rules {
		n += len(e.Rule.Letters)
	}
	return n
}

func rareCount(s State) int {
	n := 0
	for _, e := range s.Rules {
		if e.Rule.IsRare() {
			n++
		}
	}
	return n
}

// Prefer reports whether a is preferred over b under the four-criterion
// total order: fewer unmatched keys, then more letters
// matched, then fewer rare rules, then fewer rules overall. Ties are left to
// the caller's own insertion-order stability.
func Prefer(a, b State) bool {
	if d := len(b.UnmatchedSKeys) - len(a.UnmatchedSKeys); d != 0 {
		return d > 0
	}
	if d := a.LettersMatched() - b.LettersMatched(); d != 0 {
		return d > 0
	}
	if d := rareCount(b) - rareCount(a); d != 0 {
		return d > 0
	}
	if d := len(b.Rules) - len(a.Rules); d != 0 {
		return d > 0
	}
	return false
}

// Best returns the most preferred state in states. states must be
// non-empty. Ties keep the earliest (stable insertion order).
func Best(states []State) State {
	best := states[0]
	for _, s := range states[1:] {
		if Prefer(s, best) {
			best = s
		}
	}
	return best
}

// Candidate is one translation's best terminal state, used by BestOf to pick
// the most plausible outline when several outlines share a word.
type Candidate struct {
	Index int
	Best  State
}

// BestOf compares each candidate's best terminal state, with each
// candidate's unmatched-key count first clamped to {0, 1} so translations
// with *any* unmatched keys compete equally on the other criteria. It
// returns the index of the winning candidate.
func BestOf(candidates []Candidate) int {
	bestIdx := candidates[0].Index
	bestClamped := clamp(candidates[0].Best)
	for _, c := range candidates[1:] {
		clamped := clamp(c.Best)
		if Prefer(clamped, bestClamped) {
			bestClamped = clamped
			bestIdx = c.Index
		}
	}
	return bestIdx
}

func clamp(s State) State {
	if len(s.UnmatchedSKeys) > 1 {
		return State{UnmatchedSKeys: "x", Rules: s.Rules}
	}
	return s
}
