package match

import (
	"strings"

	"github.com/fourshade/spectra-lexer-sub003/internal/trie"
	"github.com/fourshade/spectra-lexer-sub003/keys"
	"github.com/fourshade/spectra-lexer-sub003/rule"
)

// PrefixMatcher matches rules keyed by a key prefix of the current stroke,
// with unordered keys (e.g. "*") permitted to appear anywhere within that
// stroke. It is the default category for rules with no stroke/word/special
// flag.
type PrefixMatcher struct {
	layout *keys.Layout
	tree   *trie.Tree[*rule.Rule]
}

// NewPrefixMatcher builds an empty matcher. Call Add for every prefix rule,
// then Compile once before the first Match.
func NewPrefixMatcher(layout *keys.Layout) *PrefixMatcher {
	return &PrefixMatcher{layout: layout, tree: trie.New[*rule.Rule]()}
}

// Add registers a rule keyed by its s-keys, normalized so unordered keys
// sort to the back.
func (m *PrefixMatcher) Add(r *rule.Rule) {
	m.tree.Insert(m.layout.NormalizeUnordered(r.SKeys), r)
}

// Compile finalizes the underlying prefix tree. Must be called after all
// rules have been added and before the first Match.
func (m *PrefixMatcher) Compile() {
	m.tree.Compile()
}

func (m *PrefixMatcher) Match(skeysHead, lettersHead, _, _ string) []Match {
	stroke, rest := firstStroke(skeysHead, m.layout.Separator)
	normStroke := m.layout.NormalizeUnordered(stroke)
	candidates := m.tree.Lookup(normStroke)
	if len(candidates) == 0 {
		return nil
	}
	lower := strings.ToLower(lettersHead)
	var out []Match
	for _, r := range candidates {
		newStroke, ok := consume(stroke, r.SKeys, m.layout)
		if !ok {
			continue
		}
		offset := strings.Index(lower, r.Letters)
		if offset < 0 {
			continue
		}
		out = append(out, Match{
			Rule:         r,
			Remaining:    newStroke + rest,
			LetterOffset: offset,
		})
	}
	return out
}

// consume removes ruleKeys from stroke, reconciling unordered keys: if
// ruleKeys contains an unordered key, its first occurrence is removed from
// anywhere in stroke; the rest of ruleKeys (its ordered keys) must then be a
// literal prefix of what remains. If ruleKeys has no unordered key, it must
// be a literal prefix of stroke outright.
func consume(stroke, ruleKeys string, layout *keys.Layout) (string, bool) {
	ordered := make([]byte, 0, len(ruleKeys))
	hasUnordered := false
	for i := 0; i < len(ruleKeys); i++ {
		if layout.IsUnordered(ruleKeys[i]) {
			hasUnordered = true
		} else {
			ordered = append(ordered, ruleKeys[i])
		}
	}
	if !hasUnordered {
		if !strings.HasPrefix(stroke, ruleKeys) {
			return "", false
		}
		return stroke[len(ruleKeys):], true
	}
	idx := -1
	for i := 0; i < len(stroke); i++ {
		if layout.IsUnordered(stroke[i]) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	without := stroke[:idx] + stroke[idx+1:]
	if !strings.HasPrefix(without, string(ordered)) {
		return "", false
	}
	return without[len(ordered):], true
}
