package rule

import (
	_ "embed"
)

//go:embed rules.json
var defaultRulesJSON []byte

// DefaultDeclarations decodes the small built-in rule set bundled with the
// module: enough to cover the analyzer's seed test scenarios without requiring
// a caller to supply their own dictionary. Real deployments are expected to
// load a full rule file with DecodeDeclarations instead.
func DefaultDeclarations() (map[string]RawRule, error) {
	return DecodeDeclarations(defaultRulesJSON)
}
