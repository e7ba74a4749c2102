// Package keys converts steno key strings between the two textual notations
// used throughout the lexer: RTFCRE (the interchange form used by steno
// dictionaries) and s-keys (the internal form, one byte per key, with
// right-side keys lowercased so they never collide with left-side keys).
package keys

import (
	"fmt"
	"strings"
)

// InvalidKeyError is returned by FromRTFCRE when a string contains a
// character that isn't part of the configured alphabet.
type InvalidKeyError struct {
	Input string
	Char  byte
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid steno key %q in %q", string(e.Char), e.Input)
}

// Layout describes the steno key alphabet, its board-side partitions, and
// its shift-key aliases. A Layout is immutable once built and safe for
// concurrent use by any number of queries.
type Layout struct {
	Separator byte
	SplitMark byte
	Left      string
	Center    string
	Right     string
	// Unordered holds keys (typically the "*" star key) whose position
	// within a stroke is not significant to prefix matching.
	Unordered string
	// ShiftTable maps a shift key to a table of alias byte -> raw key byte.
	ShiftTable map[byte]map[byte]byte

	centerSet    [256]bool
	rightSet     [256]bool
	validSet     [256]bool
	aliasShiftOf [256]byte // shift key that owns this alias byte, 0 if none
	hasAlias     bool
}

// DefaultLayout returns the standard English steno layout: the alphabet used
// throughout the package's tests.
func DefaultLayout() *Layout {
	return NewLayout(LayoutConfig{
		Separator: '/',
		SplitMark: '-',
		Left:      "#STKPWHR",
		Center:    "AO*EU",
		Right:     "FRPBLGTSDZ",
		Unordered: "*",
		ShiftTable: map[byte]map[byte]byte{
			'#': {
				'0': 'O', '1': 'S', '2': 'T', '3': 'P', '4': 'H',
				'5': 'A', '6': 'F', '7': 'P', '8': 'L', '9': 'T',
			},
		},
	})
}

// LayoutConfig is the declarative input to NewLayout.
type LayoutConfig struct {
	Separator  byte
	SplitMark  byte
	Left       string
	Center     string
	Right      string
	Unordered  string
	ShiftTable map[byte]map[byte]byte
}

// NewLayout precomputes the membership tables used by the converters.
func NewLayout(cfg LayoutConfig) *Layout {
	l := &Layout{
		Separator:  cfg.Separator,
		SplitMark:  cfg.SplitMark,
		Left:       cfg.Left,
		Center:     cfg.Center,
		Right:      cfg.Right,
		Unordered:  cfg.Unordered,
		ShiftTable: cfg.ShiftTable,
	}
	for i := 0; i < len(l.Center); i++ {
		l.centerSet[l.Center[i]] = true
	}
	for i := 0; i < len(l.Right); i++ {
		l.rightSet[l.Right[i]|0x20] = true // lowercased
	}
	l.validSet[l.Separator] = true
	l.validSet[l.SplitMark] = true
	for _, s := range []string{l.Left, l.Center, l.Right} {
		for i := 0; i < len(s); i++ {
			l.validSet[s[i]] = true
		}
	}
	for shift, table := range l.ShiftTable {
		l.validSet[shift] = true
		for alias := range table {
			l.validSet[alias] = true
			l.aliasShiftOf[alias] = shift
			l.hasAlias = true
		}
	}
	return l
}

// Cleanse drops every byte not in the configured alphabet, for use on
// untrusted user input before FromRTFCRE.
func (l *Layout) Cleanse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if l.validSet[s[i]] {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// FromRTFCRE converts an outer-form (RTFCRE) key string to inner s-keys.
// It fails with *InvalidKeyError if any non-configured character remains.
func (l *Layout) FromRTFCRE(s string) (string, error) {
	return l.strokeMap(s, l.strokeRTFCREToSKeys)
}

// ToRTFCRE converts an inner s-keys string back to outer RTFCRE form.
func (l *Layout) ToRTFCRE(s string) string {
	out, _ := l.strokeMap(s, func(stroke string) (string, error) {
		return l.strokeSKeysToRTFCRE(stroke), nil
	})
	return out
}

func (l *Layout) strokeMap(s string, fn func(string) (string, error)) (string, error) {
	if !strings.ContainsRune(s, rune(l.Separator)) {
		return fn(s)
	}
	strokes := strings.Split(s, string(l.Separator))
	for i, stroke := range strokes {
		out, err := fn(stroke)
		if err != nil {
			return "", err
		}
		strokes[i] = out
	}
	return strings.Join(strokes, string(l.Separator)), nil
}

// strokeRTFCREToSKeys performs alias substitution, splits the stroke into
// left+center / right sides, and lowercases the right side.
func (l *Layout) strokeRTFCREToSKeys(s string) (string, error) {
	if l.hasAlias && l.containsAlias(s) {
		s = l.expandAliases(s)
	}
	if idx := strings.IndexByte(s, l.SplitMark); idx >= 0 {
		left, right := s[:idx], s[idx+1:]
		return l.validateAndJoin(s, left, right)
	}
	// No explicit split mark: find the last center key and split after it.
	splitAt := -1
	for i := 0; i < len(s); i++ {
		if l.centerSet[s[i]] {
			splitAt = i + 1
		}
	}
	if splitAt < 0 {
		return l.validateAndJoin(s, s, "")
	}
	return l.validateAndJoin(s, s[:splitAt], s[splitAt:])
}

func (l *Layout) validateAndJoin(original, left, right string) (string, error) {
	for i := 0; i < len(left); i++ {
		if !l.validSet[left[i]] {
			return "", &InvalidKeyError{Input: original, Char: left[i]}
		}
	}
	for i := 0; i < len(right); i++ {
		if !l.validSet[right[i]] {
			return "", &InvalidKeyError{Input: original, Char: right[i]}
		}
	}
	if right == "" {
		return left, nil
	}
	return left + strings.ToLower(right), nil
}

func (l *Layout) containsAlias(s string) bool {
	for i := 0; i < len(s); i++ {
		if l.aliasShiftOf[s[i]] != 0 {
			return true
		}
	}
	return false
}

// expandAliases replaces alias characters with their raw key equivalents and
// prepends the owning shift key, once per shift table that matched.
func (l *Layout) expandAliases(s string) string {
	for shift, table := range l.ShiftTable {
		var b strings.Builder
		changed := false
		for i := 0; i < len(s); i++ {
			if raw, ok := table[s[i]]; ok {
				b.WriteByte(raw)
				changed = true
			} else {
				b.WriteByte(s[i])
			}
		}
		if changed {
			s = string(shift) + b.String()
		}
	}
	return s
}

// strokeSKeysToRTFCRE finds the first right-side key, inserts the split mark
// before it unless immediately preceded by a center key, and uppercases the
// stroke. Strokes with no right-side keys are returned unchanged in case.
func (l *Layout) strokeSKeysToRTFCRE(s string) string {
	for i := 0; i < len(s); i++ {
		if l.rightSet[s[i]] {
			if i == 0 || !l.centerSet[s[i-1]] {
				s = s[:i] + string(l.SplitMark) + s[i:]
			}
			return strings.ToUpper(s)
		}
	}
	return s
}

// NormalizeUnordered moves, within each stroke, every occurrence of an
// unordered key to the end, preserving the relative order of the remaining
// keys and the positions of stroke separators. It is used by the prefix
// matcher to build and look up keys insensitive to the position of keys
// such as "*".
func (l *Layout) NormalizeUnordered(skeys string) string {
	if l.Unordered == "" || !strings.ContainsAny(skeys, l.Unordered) {
		return skeys
	}
	if !strings.ContainsRune(skeys, rune(l.Separator)) {
		return l.normalizeStroke(skeys)
	}
	strokes := strings.Split(skeys, string(l.Separator))
	for i, s := range strokes {
		strokes[i] = l.normalizeStroke(s)
	}
	return strings.Join(strokes, string(l.Separator))
}

func (l *Layout) normalizeStroke(stroke string) string {
	var rest, tail strings.Builder
	for i := 0; i < len(stroke); i++ {
		c := stroke[i]
		if l.IsUnordered(c) {
			tail.WriteByte(c)
		} else {
			rest.WriteByte(c)
		}
	}
	return rest.String() + tail.String()
}

// IsUnordered reports whether a given s-keys byte is one of the layout's
// unordered keys (left- or right-side form).
func (l *Layout) IsUnordered(c byte) bool {
	return strings.IndexByte(l.Unordered, c) >= 0 || strings.IndexByte(l.Unordered, c|0x20) >= 0
}
