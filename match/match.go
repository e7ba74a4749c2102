// Package match implements the four concrete rule matchers consulted by the
// lexer search: prefix, stroke, word, and special.
package match

import (
	"strings"

	"github.com/fourshade/spectra-lexer-sub003/rule"
)

// Match is one candidate consumption of a rule against a query head.
type Match struct {
	Rule *rule.Rule
	// Remaining is the s-keys left over after removing the rule's keys
	// from the head (including any untouched trailing strokes).
	Remaining string
	// LetterOffset is the position of the rule's letters within the
	// letters head that was passed to Match.
	LetterOffset int
}

// Matcher is implemented by every concrete rule matcher.
type Matcher interface {
	Match(skeysHead, lettersHead, allSKeys, allLetters string) []Match
}

// firstStroke returns the portion of skeysHead up to (not including) the
// next stroke separator, and the rest of skeysHead starting at that
// separator ("" if there is none).
func firstStroke(skeysHead string, sep byte) (stroke string, rest string) {
	if idx := strings.IndexByte(skeysHead, sep); idx >= 0 {
		return skeysHead[:idx], skeysHead[idx:]
	}
	return skeysHead, ""
}

// atStrokeBoundary reports whether skeysHead begins a stroke: either it is
// the very start of the query, or the character preceding it in allSKeys is
// the stroke separator.
func atStrokeBoundary(skeysHead, allSKeys string, sep byte) bool {
	if len(skeysHead) == len(allSKeys) {
		return true
	}
	precedingIdx := len(allSKeys) - len(skeysHead) - 1
	return precedingIdx >= 0 && allSKeys[precedingIdx] == sep
}

// atWordBoundary reports whether lettersHead begins a word: either it is the
// very start of the query, or it is preceded by whitespace.
func atWordBoundary(lettersHead, allLetters string) bool {
	if len(lettersHead) == len(allLetters) {
		return true
	}
	precedingIdx := len(allLetters) - len(lettersHead) - 1
	return precedingIdx >= 0 && allLetters[precedingIdx] == ' '
}

func firstWord(s string) string {
	if idx := strings.IndexByte(s, ' '); idx >= 0 {
		return s[:idx]
	}
	return s
}
