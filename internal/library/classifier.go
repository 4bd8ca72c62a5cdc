package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// IsEPUB reports whether the file at path is an EPUB. The lowercase file
// extension is the authoritative signal: EPUBs are ZIP containers, and
// generic ZIP sniffing misclassifies them, so content detection is only a
// fallback for files with no (or an unknown) extension. A missing file is
// simply not an EPUB; this never returns an error.
func IsEPUB(path string) bool {
	return classify(path, ".epub", "application/epub+zip")
}

// IsPDF reports whether the file at path is a PDF, using the same
// extension-first policy as IsEPUB.
func IsPDF(path string) bool {
	return classify(path, ".pdf", "application/pdf")
}

func classify(path, wantExt, wantMIME string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}

	if strings.ToLower(filepath.Ext(path)) == wantExt {
		return true
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return mtype.Is(wantMIME)
}
