package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafakka/virtuallibrary/internal/converter"
	"github.com/rafakka/virtuallibrary/internal/database"
	"github.com/rafakka/virtuallibrary/internal/database/books"
	"github.com/rafakka/virtuallibrary/internal/entities"
)

type stubConverter struct {
	pdfPath string
	err     error
	calls   int
}

func (s *stubConverter) Convert(originalPath string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.pdfPath, nil
}

// setupService creates a service over a fresh database, with quarantine
// deletes enabled and the given converter stub.
func setupService(t *testing.T, conv Converter) (*Service, *books.Repository, func()) {
	t.Helper()
	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := books.NewRepository(db.DB)
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewService(repo, conv, true), repo, cleanup
}

func TestAddFolder(t *testing.T) {
	t.Run("inserts discovered books and reports counts", func(t *testing.T) {
		svc, _, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "dune.epub"))
		writeFile(t, filepath.Join(root, "sub", "solaris.pdf"))
		writeFile(t, filepath.Join(root, "ignore.txt"))

		result, err := svc.AddFolder(root)
		require.NoError(t, err)
		assert.Equal(t, 2, result.BooksAdded)
		assert.Equal(t, 2, result.TotalFound)
	})

	t.Run("re-scanning an unchanged folder adds nothing", func(t *testing.T) {
		svc, repo, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "dune.epub"))
		writeFile(t, filepath.Join(root, "solaris.pdf"))

		first, err := svc.AddFolder(root)
		require.NoError(t, err)
		require.Equal(t, 2, first.BooksAdded)

		second, err := svc.AddFolder(root)
		require.NoError(t, err)
		assert.Equal(t, 0, second.BooksAdded)
		assert.Equal(t, 2, second.TotalFound)

		all, err := repo.GetAllBooks()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestToggleReadByRef(t *testing.T) {
	svc, repo, cleanup := setupService(t, &stubConverter{})
	defer cleanup()

	book := entities.Book{Title: "dune", Extension: ".epub", Path: "/b/dune.epub"}
	_, err := repo.InsertIfAbsent(&book)
	require.NoError(t, err)

	t.Run("resolves numeric ref as id", func(t *testing.T) {
		got, err := svc.ToggleRead("1")
		require.NoError(t, err)
		assert.True(t, got.Read)
	})

	t.Run("resolves non-numeric ref as title", func(t *testing.T) {
		got, err := svc.ToggleRead("dune")
		require.NoError(t, err)
		assert.False(t, got.Read)
	})

	t.Run("unknown ref reports not found", func(t *testing.T) {
		_, err := svc.ToggleRead("neuromancer")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRenameByRef(t *testing.T) {
	svc, repo, cleanup := setupService(t, &stubConverter{})
	defer cleanup()

	book := entities.Book{Title: "dune", Extension: ".epub", Path: "/b/dune.epub"}
	_, err := repo.InsertIfAbsent(&book)
	require.NoError(t, err)

	got, err := svc.Rename("dune", "Dune (1965)")
	require.NoError(t, err)
	assert.Equal(t, "Dune (1965)", got.Title)

	_, err = svc.Rename("ghost", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Run("quarantines backing file and removes row", func(t *testing.T) {
		svc, repo, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		dir := t.TempDir()
		bookPath := filepath.Join(dir, "dune.epub")
		writeFile(t, bookPath)

		book := entities.Book{Title: "dune", Extension: ".epub", Path: bookPath}
		_, err := repo.InsertIfAbsent(&book)
		require.NoError(t, err)

		_, err = svc.Delete("dune")
		require.NoError(t, err)

		// File relocated, not erased
		assert.NoFileExists(t, bookPath)
		assert.FileExists(t, filepath.Join(dir, QuarantineDirName, "dune.epub"))

		// Row is gone
		_, err = repo.GetBookByTitle("dune")
		assert.ErrorIs(t, err, books.ErrBookNotFound)
	})

	t.Run("tolerates missing backing file", func(t *testing.T) {
		svc, repo, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		book := entities.Book{Title: "dune", Extension: ".epub", Path: "/gone/dune.epub"}
		_, err := repo.InsertIfAbsent(&book)
		require.NoError(t, err)

		_, err = svc.Delete("dune")
		require.NoError(t, err)
	})

	t.Run("unknown ref reports not found", func(t *testing.T) {
		svc, _, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		_, err := svc.Delete("ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFindViewablePDF(t *testing.T) {
	t.Run("stored PDF path is returned verbatim", func(t *testing.T) {
		svc, repo, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		book := entities.Book{Title: "solaris", Extension: ".pdf", Path: "/b/solaris.pdf"}
		_, err := repo.InsertIfAbsent(&book)
		require.NoError(t, err)

		path, err := svc.FindViewablePDF("solaris")
		require.NoError(t, err)
		assert.Equal(t, "/b/solaris.pdf", path)
	})

	t.Run("EPUB with converted sibling on disk resolves to it", func(t *testing.T) {
		svc, repo, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		dir := t.TempDir()
		epubPath := filepath.Join(dir, "dune.epub")
		writeFile(t, epubPath)
		sibling := converter.PDFPath(epubPath)
		writeFile(t, sibling)

		book := entities.Book{Title: "dune", Extension: ".epub", Path: epubPath}
		_, err := repo.InsertIfAbsent(&book)
		require.NoError(t, err)

		path, err := svc.FindViewablePDF("dune")
		require.NoError(t, err)
		assert.Equal(t, sibling, path)
	})

	t.Run("EPUB without sibling reports not found", func(t *testing.T) {
		svc, repo, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		book := entities.Book{Title: "dune", Extension: ".epub", Path: filepath.Join(t.TempDir(), "dune.epub")}
		_, err := repo.InsertIfAbsent(&book)
		require.NoError(t, err)

		_, err = svc.FindViewablePDF("dune")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown title reports not found", func(t *testing.T) {
		svc, _, cleanup := setupService(t, &stubConverter{})
		defer cleanup()

		_, err := svc.FindViewablePDF("ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestConvertBook(t *testing.T) {
	t.Run("registers converted PDF under the original title", func(t *testing.T) {
		dir := t.TempDir()
		epubPath := filepath.Join(dir, "dune.epub")
		writeFile(t, epubPath)
		pdfPath := converter.PDFPath(epubPath)

		svc, repo, cleanup := setupService(t, &stubConverter{pdfPath: pdfPath})
		defer cleanup()

		original := entities.Book{Title: "Dune (annotated)", Extension: ".epub", Path: epubPath}
		_, err := repo.InsertIfAbsent(&original)
		require.NoError(t, err)

		book, err := svc.ConvertBook(epubPath)
		require.NoError(t, err)
		assert.Equal(t, "Dune (annotated)", book.Title)
		assert.Equal(t, ".pdf", book.Extension)
		assert.Equal(t, pdfPath, book.Path)

		// The converted PDF is its own record, distinct from the original
		all, err := repo.GetAllBooks()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("falls back to base name when original is uncatalogued", func(t *testing.T) {
		dir := t.TempDir()
		epubPath := filepath.Join(dir, "hyperion.epub")
		writeFile(t, epubPath)

		svc, _, cleanup := setupService(t, &stubConverter{pdfPath: converter.PDFPath(epubPath)})
		defer cleanup()

		book, err := svc.ConvertBook(epubPath)
		require.NoError(t, err)
		assert.Equal(t, "hyperion", book.Title)
	})

	t.Run("rejects non-EPUB input before converting", func(t *testing.T) {
		dir := t.TempDir()
		txtPath := filepath.Join(dir, "notes.txt")
		writeFile(t, txtPath)

		conv := &stubConverter{}
		svc, _, cleanup := setupService(t, conv)
		defer cleanup()

		_, err := svc.ConvertBook(txtPath)
		assert.ErrorIs(t, err, ErrNotEPUB)
		assert.Zero(t, conv.calls)
	})

	t.Run("conversion failure leaves catalog untouched", func(t *testing.T) {
		dir := t.TempDir()
		epubPath := filepath.Join(dir, "corrupt.epub")
		writeFile(t, epubPath)

		convErr := &converter.ConversionError{Path: epubPath, Err: os.ErrInvalid}
		svc, repo, cleanup := setupService(t, &stubConverter{err: convErr})
		defer cleanup()

		_, err := svc.ConvertBook(epubPath)
		require.Error(t, err)

		all, err := repo.GetAllBooks()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
