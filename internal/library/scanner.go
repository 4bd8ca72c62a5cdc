// Package library implements the catalog's use cases: scanning folders for
// book files, classifying them, and orchestrating the repository and the
// converter's path conventions.
package library

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rafakka/virtuallibrary/internal/entities"
)

// BookFile describes a candidate book discovered during a folder scan.
type BookFile struct {
	Title     string
	Extension string
	Path      string
}

// ScanFolder walks root recursively and returns a descriptor for every file
// whose extension is on the supported allow-list (case-insensitive).
// Inaccessible subtrees are skipped with a log line rather than failing the
// whole scan, and a nonexistent root yields an empty result. Output order
// follows directory-walk order and is not part of the contract.
func ScanFolder(root string) []BookFile {
	var found []BookFile

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("Skipping inaccessible path %s: %v", path, err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !entities.IsSupportedExtension(ext) {
			return nil
		}

		base := filepath.Base(path)
		found = append(found, BookFile{
			Title:     strings.TrimSuffix(base, filepath.Ext(base)),
			Extension: ext,
			Path:      path,
		})
		return nil
	})
	if err != nil {
		log.Printf("Folder scan of %s ended early: %v", root, err)
	}

	return found
}
