package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Fingerprint computes the canonical content digest of a JSON document.
//
// The document is decoded and re-encoded in canonical form: object keys
// sorted, no insignificant whitespace, numbers kept in their JSON literal
// form rather than converted through float64. Two structurally equal
// documents therefore hash identically regardless of key order or
// formatting, while any value difference changes the digest.
func Fingerprint(r io.Reader) (string, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}
	// Decode stops at the end of the first value; anything but EOF after it
	// means the document is not a single well-formed JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("document has trailing data after the top-level value")
	}

	// encoding/json marshals map keys in sorted order and emits compact
	// output, which is exactly the canonical form we need.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to canonicalize document: %w", err)
	}

	sum := sha256.Sum256(bytes.TrimRight(buf.Bytes(), "\n"))
	return hex.EncodeToString(sum[:]), nil
}

// FingerprintFile computes the canonical digest of a JSON file on disk.
func FingerprintFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Fingerprint(f)
}
