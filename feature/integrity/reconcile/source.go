package reconcile

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// findSourceDocs walks the staging tree and returns every document whose
// filename contains the given table marker, matching the routing rule the
// ingest loaders use.
func findSourceDocs(stagingRoot, marker string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(stagingRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.Contains(entry.Name(), marker) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
