package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourshade/spectra-lexer-sub003/keys"
)

func TestLoadResolvesReferencesAndFlattensLetters(t *testing.T) {
	layout := keys.DefaultLayout()
	raw := map[string]RawRule{
		"HEL":   {KeysRTFCRE: "HEL", Pattern: "hel"},
		"LOE":   {KeysRTFCRE: "LOE", Pattern: "lo"},
		"HELLO": {KeysRTFCRE: "HEL/LOE", Pattern: "{HEL}{LOE}"},
	}
	db, err := Load(raw, layout)
	require.NoError(t, err)

	r, ok := db.Get("HELLO")
	require.True(t, ok, "expected rule HELLO to be present")
	assert.Equal(t, "hello", r.Letters)
	assert.Equal(t, "HEl/LOE", r.SKeys)
}

func TestLoadDetectsCycle(t *testing.T) {
	layout := keys.DefaultLayout()
	raw := map[string]RawRule{
		"A": {KeysRTFCRE: "TP", Pattern: "{B}"},
		"B": {KeysRTFCRE: "TP", Pattern: "{A}"},
	}
	_, err := Load(raw, layout)
	assert.Error(t, err, "expected a cycle error")
}

func TestLoadDetectsUnknownReference(t *testing.T) {
	layout := keys.DefaultLayout()
	raw := map[string]RawRule{
		"A": {KeysRTFCRE: "TP", Pattern: "{GHOST}"},
	}
	_, err := Load(raw, layout)
	assert.Error(t, err, "expected an unknown-reference error")
}

func TestLoadDetectsUnterminatedReference(t *testing.T) {
	layout := keys.DefaultLayout()
	raw := map[string]RawRule{
		"A": {KeysRTFCRE: "TP", Pattern: "{A"},
	}
	_, err := Load(raw, layout)
	assert.Error(t, err, "expected an unterminated-reference error")
}

func TestLoadDetectsInvalidKeys(t *testing.T) {
	layout := keys.DefaultLayout()
	raw := map[string]RawRule{
		"A": {KeysRTFCRE: "XYZ", Pattern: "bad"},
	}
	_, err := Load(raw, layout)
	assert.Error(t, err, "expected an invalid-key error")
}

func TestDefaultDeclarationsLoad(t *testing.T) {
	layout := keys.DefaultLayout()
	raw, err := DefaultDeclarations()
	require.NoError(t, err)

	db, err := Load(raw, layout)
	require.NoError(t, err)

	for _, id := range []string{"HEL", "LOE", "TEFT", "PHROFR", "TP", "-PB", "FALLBACK"} {
		_, ok := db.Get(id)
		assert.True(t, ok, "expected default rule set to contain %q", id)
	}
}
