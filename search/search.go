// Package search implements the depth-first exploration of partial
// steno matches: it expands a state by consulting the configured matchers in
// order and keeps exploring until every branch is terminal, then returns the
// best complete (or most-complete) decomposition.
package search

import (
	"github.com/fourshade/spectra-lexer-sub003/keys"
	"github.com/fourshade/spectra-lexer-sub003/match"
	"github.com/fourshade/spectra-lexer-sub003/rank"
)

// Matchers bundles the four matchers consulted in the fixed attempt order:
// prefix, stroke, word, then special (special only if the first three
// produced nothing for the current head).
type Matchers struct {
	Prefix  match.Matcher
	Stroke  match.Matcher
	Word    match.Matcher
	Special match.Matcher
}

// Run explores every admissible expansion of the query (allSKeys,
// allLetters) and returns the best terminal state found. If matchAllKeys is
// true and the best state still has unmatched keys, a fully-unmatched
// result is returned instead.
func Run(allSKeys, allLetters string, m Matchers, layout *keys.Layout, matchAllKeys bool) rank.State {
	var terminals []rank.State
	var walk func(s rank.State, letterCursor int)
	walk = func(s rank.State, letterCursor int) {
		skeysHead := s.UnmatchedSKeys
		if len(skeysHead) > 0 && skeysHead[0] == layout.Separator {
			skeysHead = skeysHead[1:]
		}
		lettersHead := allLetters[letterCursor:]
		for len(lettersHead) > 0 && lettersHead[0] == ' ' {
			letterCursor++
			lettersHead = lettersHead[1:]
		}

		matches := m.Prefix.Match(skeysHead, lettersHead, allSKeys, allLetters)
		matches = append(matches, m.Stroke.Match(skeysHead, lettersHead, allSKeys, allLetters)...)
		matches = append(matches, m.Word.Match(skeysHead, lettersHead, allSKeys, allLetters)...)
		if len(matches) == 0 {
			matches = m.Special.Match(skeysHead, lettersHead, allSKeys, allLetters)
		}

		expanded := false
		for _, mt := range matches {
			if len(mt.Remaining) > len(skeysHead) {
				continue
			}
			newCursor := letterCursor + mt.LetterOffset + len(mt.Rule.Letters)
			if newCursor > len(allLetters) {
				continue
			}
			if mt.Remaining == skeysHead && newCursor == letterCursor {
				continue // no progress; guards against degenerate zero-width rules
			}
			rules := make([]rank.RuleEntry, len(s.Rules)+1)
			copy(rules, s.Rules)
			rules[len(s.Rules)] = rank.RuleEntry{Rule: mt.Rule, LetterStart: letterCursor + mt.LetterOffset}
			expanded = true
			walk(rank.State{UnmatchedSKeys: mt.Remaining, Rules: rules}, newCursor)
		}
		if !expanded {
			terminals = append(terminals, s)
		}
	}
	walk(rank.State{UnmatchedSKeys: allSKeys}, 0)

	if len(terminals) == 0 {
		terminals = []rank.State{{UnmatchedSKeys: allSKeys}}
	}
	best := rank.Best(terminals)

	if matchAllKeys && best.UnmatchedSKeys != "" {
		return rank.State{UnmatchedSKeys: allSKeys}
	}
	if len(best.Rules) == 0 && best.UnmatchedSKeys != "" {
		best = rank.State{
			UnmatchedSKeys: "",
			Rules:          []rank.RuleEntry{{Rule: match.SynthesizeFallback(best.UnmatchedSKeys), LetterStart: 0}},
		}
	}
	return best
}
