package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEPUB(t *testing.T) {
	t.Run("nonexistent path is not an EPUB and never errors", func(t *testing.T) {
		assert.False(t, IsEPUB("/no/such/file.epub"))
	})

	t.Run("extension is the primary signal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.epub")
		// Not a real ZIP container; the extension still decides.
		require.NoError(t, os.WriteFile(path, []byte("not really a zip"), 0o644))
		assert.True(t, IsEPUB(path))
	})

	t.Run("uppercase extension matches", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "BOOK.EPUB")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		assert.True(t, IsEPUB(path))
	})

	t.Run("plain text file with wrong extension is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))
		assert.False(t, IsEPUB(path))
	})
}

func TestIsPDF(t *testing.T) {
	t.Run("nonexistent path is not a PDF", func(t *testing.T) {
		assert.False(t, IsPDF("/no/such/file.pdf"))
	})

	t.Run("extension is the primary signal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.pdf")
		require.NoError(t, os.WriteFile(path, []byte("whatever"), 0o644))
		assert.True(t, IsPDF(path))
	})

	t.Run("magic bytes are the fallback for unknown extensions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mystery.bin")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%stub\n"), 0o644))
		assert.True(t, IsPDF(path))
	})
}
