package rule

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON accepts the declaration format's heterogeneous tuple:
// [keys_rtfcre, pattern, flag_string?, description?]. Only the first two
// elements are required.
func (r *RawRule) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 2 {
		return fmt.Errorf("rule declaration needs at least [keys_rtfcre, pattern], got %d fields", len(fields))
	}
	r.KeysRTFCRE = fields[0]
	r.Pattern = fields[1]
	if len(fields) > 2 {
		r.FlagString = fields[2]
	}
	if len(fields) > 3 {
		r.Description = fields[3]
	}
	return nil
}

// DecodeDeclarations parses the flat rule_id -> declaration mapping described
// rejecting duplicate rule ids (which a plain map-based
// json.Unmarshal would silently drop).
func DecodeDeclarations(data []byte) (map[string]RawRule, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("rule declarations must be a JSON object")
	}
	out := make(map[string]RawRule)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		id := keyTok.(string)
		if _, dup := out[id]; dup {
			return nil, &RuleError{RuleID: id, Reason: "duplicate rule id"}
		}
		var rr RawRule
		if err := dec.Decode(&rr); err != nil {
			return nil, &RuleError{RuleID: id, Reason: err.Error()}
		}
		out[id] = rr
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return out, nil
}
