package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadTranslations loads and merges RTFCRE steno translations from JSON
// files. Keys with empty strings are skipped silently; empty
// letters are kept.
func LoadTranslations(filenames ...string) (map[string]string, error) {
	out := map[string]string{}
	for _, filename := range filenames {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("reading translations %q: %w", filename, err)
		}
		var d map[string]string
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("steno translations file %q is not formatted correctly: %w", filename, err)
		}
		for k, v := range d {
			if k == "" {
				continue
			}
			out[k] = v
		}
	}
	return out, nil
}

// SaveExamplesIndex writes an examples index as a dict of dicts, UTF-8,
// non-ASCII preserved. encoding/json already sorts map keys on marshal, so
// this produces a deterministic diff ordering at
// every level.
func SaveExamplesIndex(filename string, examples map[string]map[string]string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(examples); err != nil {
		return fmt.Errorf("encoding examples index: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing examples index %q: %w", filename, err)
	}
	return nil
}

// LoadExamplesIndex reads an examples index file back into memory.
func LoadExamplesIndex(filename string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading examples index %q: %w", filename, err)
	}
	var out map[string]map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("examples index file %q is not formatted correctly: %w", filename, err)
	}
	return out, nil
}
