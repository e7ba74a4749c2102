package rule

import (
	"sort"
	"strings"

	"github.com/fourshade/spectra-lexer-sub003/keys"
)

// RawRule is one entry of the declarative rule format: a flat
// mapping of rule id to [keys_rtfcre, pattern, flag_string?, description?].
// Pattern may contain literal letters and "{other_rule_id}" references that
// are resolved against the rest of the map before the rule is usable.
type RawRule struct {
	KeysRTFCRE  string
	Pattern     string
	FlagString  string
	Description string
}

// Database is an immutable, ordered collection of fully resolved rules.
type Database struct {
	order []string
	byID  map[string]*Rule
}

// Len returns the number of rules in the database.
func (d *Database) Len() int { return len(d.order) }

// Get looks up a rule by id.
func (d *Database) Get(id string) (*Rule, bool) {
	r, ok := d.byID[id]
	return r, ok
}

// All iterates the database in deterministic load order.
func (d *Database) All() []*Rule {
	out := make([]*Rule, len(d.order))
	for i, id := range d.order {
		out[i] = d.byID[id]
	}
	return out
}

// Load builds a Database from raw declarations. It resolves pattern
// references in two passes: parse each pattern into literal spans and
// reference tokens, topologically sort by reference, then flatten letters.
// Cycles, unknown or unterminated references, and keys outside the layout's
// alphabet are reported as *RuleError. raw is a map, so it cannot hold
// duplicate ids; DecodeDeclarations rejects those before Load is reached.
func Load(raw map[string]RawRule, layout *keys.Layout) (*Database, error) {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic base order before dependency resolution

	parsed := make(map[string][]patternToken, len(raw))
	for _, id := range ids {
		toks, err := parsePattern(raw[id].Pattern)
		if err != nil {
			return nil, &RuleError{RuleID: id, Reason: err.Error()}
		}
		parsed[id] = toks
	}

	order, err := topoSort(ids, parsed)
	if err != nil {
		return nil, err
	}

	letters := make(map[string]string, len(raw))
	for _, id := range order {
		var b strings.Builder
		for _, tok := range parsed[id] {
			if tok.isRef {
				if _, ok := raw[tok.text]; !ok {
					return nil, &RuleError{RuleID: id, Reason: "unknown rule reference " + tok.text}
				}
				b.WriteString(letters[tok.text])
			} else {
				b.WriteString(tok.text)
			}
		}
		letters[id] = b.String()
	}

	db := &Database{order: order, byID: make(map[string]*Rule, len(order))}
	for _, id := range order {
		rr := raw[id]
		flags := ParseFlags(rr.FlagString)
		skeys, convErr := layout.FromRTFCRE(rr.KeysRTFCRE)
		if convErr != nil {
			return nil, &RuleError{RuleID: id, Reason: convErr.Error()}
		}
		l := strings.ToLower(letters[id])
		db.byID[id] = &Rule{
			ID:          id,
			KeysRTFCRE:  rr.KeysRTFCRE,
			Letters:     l,
			Flags:       flags,
			Description: rr.Description,
			SKeys:       skeys,
			Weight:      weigh(l, flags.Has(FlagRare)),
		}
	}
	return db, nil
}

type patternToken struct {
	text  string
	isRef bool
}

// parsePattern splits a pattern into literal spans and {ref} tokens.
func parsePattern(pattern string) ([]patternToken, error) {
	var toks []patternToken
	var lit strings.Builder
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		if c == '{' {
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return nil, errUnterminatedRef
			}
			if lit.Len() > 0 {
				toks = append(toks, patternToken{text: lit.String()})
				lit.Reset()
			}
			toks = append(toks, patternToken{text: pattern[i+1 : i+end], isRef: true})
			i += end + 1
			continue
		}
		lit.WriteByte(c)
		i++
	}
	if lit.Len() > 0 {
		toks = append(toks, patternToken{text: lit.String()})
	}
	return toks, nil
}

var errUnterminatedRef = patternError("unterminated {reference} in pattern")

type patternError string

func (e patternError) Error() string { return string(e) }

// topoSort orders ids so that every rule appears after all rules it
// references, detecting cycles along the way.
func topoSort(ids []string, parsed map[string][]patternToken) ([]string, error) {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[string]int, len(ids))
	order := make([]string, 0, len(ids))
	var visit func(id string, path []string) error
	visit = func(id string, path []string) error {
		switch color[id] {
		case black:
			return nil
		case grey:
			return &RuleError{RuleID: id, Reason: "cyclic rule reference: " + strings.Join(append(path, id), " -> ")}
		}
		color[id] = grey
		for _, tok := range parsed[id] {
			if tok.isRef {
				if _, ok := parsed[tok.text]; !ok {
					return &RuleError{RuleID: id, Reason: "unknown rule reference " + tok.text}
				}
				if err := visit(tok.text, append(path, id)); err != nil {
					return err
				}
			}
		}
		color[id] = black
		order = append(order, id)
		return nil
	}
	for _, id := range ids {
		if err := visit(id, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}
