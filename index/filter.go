// Package index builds the examples index: a mapping from each rule
// identifier to the translations that exercise it.
package index

import "fmt"

// SizeFilter drops translations whose outer keys or letters exceed a
// configured maximum length before the (comparatively expensive) analysis
// pass runs over them.
type SizeFilter struct {
	Minimum int
	Small   int
	Medium  int
	Large   int
	Maximum int
	size    int
}

// NewSizeFilter builds a filter for the given relative size (1..20). A size
// of zero selects the default (Medium).
func NewSizeFilter(size int) SizeFilter {
	f := SizeFilter{Minimum: 1, Small: 10, Medium: 12, Large: 15, Maximum: 20}
	if size == 0 {
		size = f.Medium
	}
	f.size = size
	return f
}

// Filter returns a new map containing only translations that pass the
// configured size. Below Minimum, everything is dropped (a dummy run); at
// or above Maximum, filtering is a no-op (a shallow copy).
func (f SizeFilter) Filter(translations map[string]string) map[string]string {
	if f.size < f.Minimum {
		return map[string]string{}
	}
	if f.size >= f.Maximum {
		out := make(map[string]string, len(translations))
		for k, v := range translations {
			out[k] = v
		}
		return out
	}
	out := map[string]string{}
	for k, v := range translations {
		if len(k) <= f.size && len(v) <= f.size {
			out[k] = v
		}
	}
	return out
}

// SizeDescriptions returns human-readable descriptions of the five
// threshold sizes, surfaced by the batch CLI's --help output.
func (f SizeFilter) SizeDescriptions() []string {
	return []string{
		fmt.Sprintf("size = %d: includes nothing.", f.Minimum),
		fmt.Sprintf("size = %d: fast index with relatively simple words.", f.Small),
		fmt.Sprintf("size = %d: average-sized index (default).", f.Medium),
		fmt.Sprintf("size = %d: slower index with more advanced words.", f.Large),
		fmt.Sprintf("size = %d: includes everything.", f.Maximum),
	}
}
