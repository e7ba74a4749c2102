// Package spectralexer is a thin adapter over the lexer: it converts
// user-facing RTFCRE key strings into the lexer's internal s-keys form,
// invokes the search, and re-assembles a result tree with annotated
// unmatched spans.
package spectralexer

import (
	"github.com/fourshade/spectra-lexer-sub003/keys"
	"github.com/fourshade/spectra-lexer-sub003/match"
	"github.com/fourshade/spectra-lexer-sub003/rank"
	"github.com/fourshade/spectra-lexer-sub003/rule"
	"github.com/fourshade/spectra-lexer-sub003/search"
)

// UnmatchedID is the synthetic connection id used for a trailing span of
// keys that no rule could account for.
const UnmatchedID = "UNMATCHED"

// Connection is one edge of an AnalysisResult: the rule responsible for
// letters[Start:Start+Length], or an UNMATCHED span carrying the outer-form
// keys left over.
type Connection struct {
	RuleID string
	Start  int
	Length int
	Keys   string // only set for UnmatchedID connections
}

// AnalysisResult is the root of a query's result tree: it spans the full
// letters range and lists its child connections in match order.
type AnalysisResult struct {
	KeysRTFCRE  string
	Letters     string
	Connections []Connection
}

// Translation is a single (outline, word) pair, the unit BestTranslation
// operates over.
type Translation struct {
	Keys    string
	Letters string
}

// Analyzer wraps the lexer search and ranking behind key-format conversion.
// Built once from a rule.Database; safe for concurrent use by any number of
// Query/ParallelQuery/BestTranslation calls, since the lexer never mutates
// shared state.
type Analyzer struct {
	layout   *keys.Layout
	matchers search.Matchers
}

// NewAnalyzer distributes the database's rules among the four matchers and
// returns a ready-to-query Analyzer.
func NewAnalyzer(layout *keys.Layout, db *rule.Database) *Analyzer {
	prefixM := match.NewPrefixMatcher(layout)
	strokeM := match.NewStrokeMatcher(layout)
	wordM := match.NewWordMatcher()
	specialM := match.NewSpecialMatcher(layout)
	for _, r := range db.All() {
		switch r.Category() {
		case rule.CategorySpecial:
			switch r.ID {
			case rule.Abbreviation:
				specialM.AddAbbreviation(r)
			case rule.ProperNoun:
				specialM.AddProperNoun(r)
			case rule.Affix:
				specialM.AddAffix(r)
			case rule.Fallback:
				specialM.AddFallback(r)
			}
		case rule.CategoryStroke:
			strokeM.Add(r)
		case rule.CategoryWord:
			wordM.Add(r)
		default:
			prefixM.Add(r)
		}
	}
	prefixM.Compile()
	return &Analyzer{
		layout: layout,
		matchers: search.Matchers{
			Prefix:  prefixM,
			Stroke:  strokeM,
			Word:    wordM,
			Special: specialM,
		},
	}
}

// Query analyzes a single (keys, letters) translation. Conversion failures
// (InvalidKey) are never fatal: they surface as a result with no matches and
// the original keys annotated as a single unmatched span.
func (a *Analyzer) Query(keysOuter, letters string, matchAllKeys bool) AnalysisResult {
	skeys, err := a.layout.FromRTFCRE(keysOuter)
	if err != nil {
		return AnalysisResult{
			KeysRTFCRE:  keysOuter,
			Letters:     letters,
			Connections: []Connection{{RuleID: UnmatchedID, Start: 0, Length: len(letters), Keys: keysOuter}},
		}
	}
	st := search.Run(skeys, letters, a.matchers, a.layout, matchAllKeys)
	result := AnalysisResult{KeysRTFCRE: keysOuter, Letters: letters}
	lastEnd := 0
	for _, e := range st.Rules {
		length := len(e.Rule.Letters)
		result.Connections = append(result.Connections, Connection{RuleID: e.Rule.ID, Start: e.LetterStart, Length: length})
		lastEnd = e.LetterStart + length
	}
	if st.UnmatchedSKeys != "" {
		result.Connections = append(result.Connections, Connection{
			RuleID: UnmatchedID,
			Start:  lastEnd,
			Length: len(letters) - lastEnd,
			Keys:   a.layout.ToRTFCRE(st.UnmatchedSKeys),
		})
	}
	return result
}

// ParallelQuery runs a query and returns only rule identifiers, and only if
// the state is complete; special-matcher rules are filtered out. Designed
// to survive process/goroutine boundaries: the result is strictly
// [keys, letters, rule_id...], never a rule reference.
func (a *Analyzer) ParallelQuery(keysOuter, letters string) []string {
	out := []string{keysOuter, letters}
	skeys, err := a.layout.FromRTFCRE(keysOuter)
	if err != nil {
		return out
	}
	st := search.Run(skeys, letters, a.matchers, a.layout, false)
	if st.UnmatchedSKeys != "" {
		return out
	}
	for _, e := range st.Rules {
		if isSpecialID(e.Rule.ID) {
			continue
		}
		out = append(out, e.Rule.ID)
	}
	return out
}

func isSpecialID(id string) bool {
	switch id {
	case rule.Abbreviation, rule.ProperNoun, rule.Affix, rule.Fallback:
		return true
	default:
		return false
	}
}

// BestTranslation returns the most plausible of several translations that
// share a word, using rank.BestOf over each candidate's best terminal state.
func (a *Analyzer) BestTranslation(translations []Translation) Translation {
	candidates := make([]rank.Candidate, len(translations))
	for i, t := range translations {
		skeys, err := a.layout.FromRTFCRE(t.Keys)
		var st rank.State
		if err != nil {
			st = rank.State{UnmatchedSKeys: t.Keys}
		} else {
			st = search.Run(skeys, t.Letters, a.matchers, a.layout, false)
		}
		candidates[i] = rank.Candidate{Index: i, Best: st}
	}
	return translations[rank.BestOf(candidates)]
}
