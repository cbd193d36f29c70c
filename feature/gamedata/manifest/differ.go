package manifest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DiffResult is the outcome of one differencing pass.
type DiffResult struct {
	// Manifest maps every successfully hashed document to its fingerprint.
	Manifest Manifest
	// Added are paths present now but absent from the prior manifest.
	Added []string
	// Updated are paths present in both whose fingerprints differ.
	Updated []string
	// Removed are paths in the prior manifest that no longer exist.
	// They are reported but not acted upon by any loader.
	Removed []string
	// Skipped counts documents whose fingerprint could not be computed.
	Skipped int
}

// Differ enumerates staged documents and compares them against a prior
// manifest.
type Differ struct {
	stagingRoot string
	logger      *zap.Logger
}

// NewDiffer creates a differ over the given staging root.
func NewDiffer(stagingRoot string, logger *zap.Logger) *Differ {
	return &Differ{stagingRoot: stagingRoot, logger: logger}
}

// Diff walks the staging root, fingerprints every JSON document, and
// classifies each path against the prior manifest. Documents that cannot be
// hashed are logged and excluded from the new manifest, so they will show up
// as added on the next run once readable.
func (d *Differ) Diff(prior Manifest) (*DiffResult, error) {
	result := &DiffResult{
		Manifest: Manifest{},
		Added:    []string{},
		Updated:  []string{},
		Removed:  []string{},
	}

	err := filepath.WalkDir(d.stagingRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			return nil
		}

		rel, err := filepath.Rel(d.stagingRoot, path)
		if err != nil {
			return err
		}
		// Manifest keys are slash-separated regardless of platform.
		rel = filepath.ToSlash(rel)

		digest, err := FingerprintFile(path)
		if err != nil {
			d.logger.Warn("Could not fingerprint document, skipping",
				zap.String("path", rel),
				zap.Error(err))
			result.Skipped++
			return nil
		}

		result.Manifest[rel] = digest
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan staging root %s: %w", d.stagingRoot, err)
	}

	for path, digest := range result.Manifest {
		old, existed := prior[path]
		switch {
		case !existed:
			result.Added = append(result.Added, path)
		case old != digest:
			result.Updated = append(result.Updated, path)
		}
	}
	for path := range prior {
		if _, exists := result.Manifest[path]; !exists {
			result.Removed = append(result.Removed, path)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Updated)
	sort.Strings(result.Removed)

	return result, nil
}

// WorkList returns the documents the loading stage must process: added and
// updated paths, added first, each list in sorted order.
func (r *DiffResult) WorkList() []string {
	work := make([]string, 0, len(r.Added)+len(r.Updated))
	work = append(work, r.Added...)
	work = append(work, r.Updated...)
	return work
}
