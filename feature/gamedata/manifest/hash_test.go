package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_KeyOrderInsensitive(t *testing.T) {
	a := `{"name": "Iron Helmet", "tier": 3, "slots": ["Head"]}`
	b := "{\n  \"tier\": 3,\n  \"slots\": [\"Head\"],\n  \"name\": \"Iron Helmet\"\n}"

	ha, err := Fingerprint(strings.NewReader(a))
	require.NoError(t, err)
	hb, err := Fingerprint(strings.NewReader(b))
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
}

func TestFingerprint_ValueSensitive(t *testing.T) {
	base := `{"name": "Iron Helmet", "tier": 3}`
	cases := map[string]string{
		"changed value":  `{"name": "Iron Helmet", "tier": 4}`,
		"changed key":    `{"name": "Iron Helmet", "rank": 3}`,
		"extra key":      `{"name": "Iron Helmet", "tier": 3, "slot": "Head"}`,
		"nested change":  `{"name": "Iron Helmet", "tier": {"value": 3}}`,
		"type change":    `{"name": "Iron Helmet", "tier": "3"}`,
		"array reorder":  `{"name": "Iron Helmet", "tier": [3, 1]}`,
		"missing field":  `{"name": "Iron Helmet"}`,
		"string change":  `{"name": "Iron Greaves", "tier": 3}`,
		"null vs absent": `{"name": "Iron Helmet", "tier": null}`,
	}

	hBase, err := Fingerprint(strings.NewReader(base))
	require.NoError(t, err)

	for name, doc := range cases {
		h, err := Fingerprint(strings.NewReader(doc))
		require.NoError(t, err, name)
		assert.NotEqual(t, hBase, h, name)
	}
}

func TestFingerprint_InvalidJSON(t *testing.T) {
	_, err := Fingerprint(strings.NewReader(`{"unterminated": `))
	assert.Error(t, err)
}

func TestFingerprint_TrailingData(t *testing.T) {
	cases := map[string]string{
		"garbage after value": `{"tier": 3} extra`,
		"second value":        `{"tier": 3} {"tier": 4}`,
		"stray bracket":       `[{"tier": 3}]]`,
	}
	for name, doc := range cases {
		_, err := Fingerprint(strings.NewReader(doc))
		assert.Error(t, err, name)
	}

	// Trailing whitespace is not data.
	_, err := Fingerprint(strings.NewReader("{\"tier\": 3}\n\t "))
	assert.NoError(t, err)
}

func TestFingerprintFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1, "b": 2}`), 0o644))

	reordered := filepath.Join(dir, "doc2.json")
	require.NoError(t, os.WriteFile(reordered, []byte("{\"b\": 2,\n\"a\": 1}"), 0o644))

	h1, err := FingerprintFile(path)
	require.NoError(t, err)
	h2, err := FingerprintFile(reordered)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	_, err = FingerprintFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
