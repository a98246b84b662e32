// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// metadataName is the well-known file name of an RO-Crate metadata document.
const metadataName = "ro-crate-metadata.json"

// FindCrateMetadata resolves a crate path to its metadata document. A file
// path is returned as-is; a directory is searched recursively for the
// shallowest ro-crate-metadata.json.
func FindCrateMetadata(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}

	var found string
	foundDepth := -1
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != metadataName {
			return nil
		}
		rel, relErr := filepath.Rel(path, p)
		if relErr != nil {
			return relErr
		}
		depth := pathDepth(rel)
		if foundDepth == -1 || depth < foundDepth {
			found = p
			foundDepth = depth
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no %s found under %s", metadataName, path)
	}
	return found, nil
}

func pathDepth(rel string) int {
	depth := 0
	for _, r := range rel {
		if r == filepath.Separator {
			depth++
		}
	}
	return depth
}
