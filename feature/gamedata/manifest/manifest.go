package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest maps a document's staging-relative path to its last-seen content
// fingerprint. It is read once at the start of a run and fully rewritten at
// the end; it is never patched incrementally.
type Manifest map[string]string

// Load reads a manifest from disk. A missing file is a cold start and yields
// an empty manifest, not an error.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}

// Save writes the manifest to disk, replacing any previous one.
func (m Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// SaveList persists a work list (a JSON array of staging-relative paths).
// The differ writes these so the loading stage can be re-run independently
// without repeating the diff.
func SaveList(path string, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal work list: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write work list %s: %w", path, err)
	}
	return nil
}

// LoadList reads a work list written by SaveList.
func LoadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read work list %s: %w", path, err)
	}
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse work list %s: %w", path, err)
	}
	return entries, nil
}
