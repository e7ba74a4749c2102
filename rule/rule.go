// Package rule defines the steno rule data model and the loader that builds
// an immutable RuleDatabase from declarative input.
package rule

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"
)

// Hard-coded identifiers for rules with special-cased matcher behavior.
// These are the only rule IDs the SpecialMatcher ever dispatches on.
const (
	Abbreviation = "ABBR"
	ProperNoun   = "PROP"
	Affix        = "PFSF"
	Fallback     = "FALLBACK"
)

// Flag names recognized in a rule's pipe-delimited flag string.
const (
	FlagSpecial   = "special"
	FlagStroke    = "stroke"
	FlagWord      = "word"
	FlagRare      = "rare"
	FlagReference = "reference"
)

// Flags is the parsed set of a rule's flags.
type Flags struct {
	set stringset.Set
}

// ParseFlags splits a pipe-delimited flag string into a Flags set.
// An empty string yields an empty set.
func ParseFlags(s string) Flags {
	return Flags{set: stringset.New(splitPipe(s)...)}
}

func splitPipe(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '|' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

// Has reports whether the set contains the named flag.
func (f Flags) Has(name string) bool { return f.set.Contains(name) }

// Category classifies a rule for matcher dispatch. Mutually exclusive,
// determined from Flags: special wins over stroke, which wins over word;
// anything else is Prefix (the default).
type Category int

const (
	CategoryPrefix Category = iota
	CategoryStroke
	CategoryWord
	CategorySpecial
)

func (f Flags) Category() Category {
	switch {
	case f.Has(FlagSpecial):
		return CategorySpecial
	case f.Has(FlagStroke):
		return CategoryStroke
	case f.Has(FlagWord):
		return CategoryWord
	default:
		return CategoryPrefix
	}
}

// Rule is an immutable record describing one named mapping from a key
// fragment to an English letter fragment.
type Rule struct {
	ID          string
	KeysRTFCRE  string
	Letters     string
	Flags       Flags
	Description string

	// SKeys and Weight are derived during Load.
	SKeys  string
	Weight int
}

// IsRare reports whether the rule is flagged rare, the sole bit that affects
// ranking tie-breaks.
func (r *Rule) IsRare() bool { return r.Flags.Has(FlagRare) }

// Category reports the rule's matcher category.
func (r *Rule) Category() Category { return r.Flags.Category() }

// Weigh computes the rule's ranking weight: ten points per letter matched,
// minus one if the rule is rare.
func weigh(letters string, rare bool) int {
	w := 10 * len(letters)
	if rare {
		w--
	}
	return w
}

// RuleError reports a failure building a RuleDatabase: an unknown or
// unterminated reference, a duplicate id, a malformed declaration, a
// dependency cycle, or keys outside the layout's alphabet. Flag strings are
// not validated: any pipe-delimited string is accepted. It is fatal at
// startup and is never produced once a Database has been built.
type RuleError struct {
	RuleID string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %s", e.RuleID, e.Reason)
}
