package library

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rafakka/virtuallibrary/internal/converter"
	"github.com/rafakka/virtuallibrary/internal/database/books"
	"github.com/rafakka/virtuallibrary/internal/entities"
)

// ErrNotFound is returned for any lookup that matches no catalog record or
// no viewable file. It marks a normal domain outcome; storage failures are
// returned as-is and are never wrapped into it.
var ErrNotFound = errors.New("book not found")

// ErrNotEPUB is returned when conversion is requested for a file that the
// classifier does not recognise as an EPUB.
var ErrNotEPUB = errors.New("file is not an EPUB")

// QuarantineDirName is the subfolder, next to a deleted book file, that
// receives the file instead of erasing it from disk.
const QuarantineDirName = "deleted"

// BookStore is the catalog persistence surface the service depends on.
type BookStore interface {
	InsertIfAbsent(book *entities.Book) (bool, error)
	GetAllBooks() ([]entities.Book, error)
	SearchByTitle(query string) ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	GetBookByTitle(title string) (*entities.Book, error)
	GetBookByPath(path string) (*entities.Book, error)
	ToggleRead(id uint) error
	RenameBook(id uint, newTitle string) error
	DeleteBook(id uint) error
}

// Converter turns an EPUB into a PDF and returns the output path.
type Converter interface {
	Convert(originalPath string) (string, error)
}

// AddFolderResult reports the outcome of a folder scan.
type AddFolderResult struct {
	BooksAdded int `json:"books_added"`
	TotalFound int `json:"total_books_found"`
}

// Service implements the application's catalog use cases on top of the
// scanner, the classifier, the repository and the converter.
type Service struct {
	store      BookStore
	converter  Converter
	quarantine bool
}

// NewService creates a catalog service. When quarantine is true, deleting a
// record relocates the backing file into a "deleted" subfolder instead of
// leaving it in place.
func NewService(store BookStore, conv Converter, quarantine bool) *Service {
	return &Service{store: store, converter: conv, quarantine: quarantine}
}

// AddFolder scans root and inserts every discovered book that is not already
// in the catalog, keyed by exact path. The caller is responsible for
// checking that root exists.
func (s *Service) AddFolder(root string) (AddFolderResult, error) {
	found := ScanFolder(root)

	result := AddFolderResult{TotalFound: len(found)}
	for _, f := range found {
		created, err := s.store.InsertIfAbsent(&entities.Book{
			Title:     f.Title,
			Extension: f.Extension,
			Path:      f.Path,
		})
		if err != nil {
			return result, fmt.Errorf("failed to register %s: %w", f.Path, err)
		}
		if created {
			result.BooksAdded++
			log.Printf("Added %s", f.Title)
		} else {
			log.Printf("Already in the database: %s", f.Title)
		}
	}
	return result, nil
}

// GetAllBooks returns every catalog record, most recently added first.
func (s *Service) GetAllBooks() ([]entities.Book, error) {
	return s.store.GetAllBooks()
}

// Search performs a case-insensitive substring search over titles.
func (s *Service) Search(query string) ([]entities.Book, error) {
	return s.store.SearchByTitle(query)
}

// ToggleRead flips the read flag of the book identified by ref and returns
// the updated record.
func (s *Service) ToggleRead(ref string) (*entities.Book, error) {
	book, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	if err := s.store.ToggleRead(book.ID); err != nil {
		return nil, notFoundOr(err)
	}
	return s.store.GetBookByID(book.ID)
}

// Rename updates the title of the book identified by ref.
func (s *Service) Rename(ref, newTitle string) (*entities.Book, error) {
	book, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	if err := s.store.RenameBook(book.ID, newTitle); err != nil {
		return nil, notFoundOr(err)
	}
	return s.store.GetBookByID(book.ID)
}

// Delete removes the catalog row for the book identified by ref. The row
// delete is hard; the backing file is soft-deleted into the quarantine
// subfolder when quarantine is enabled. A backing file that is already gone
// is tolerated.
func (s *Service) Delete(ref string) (*entities.Book, error) {
	book, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	if s.quarantine {
		if err := quarantineFile(book.Path); err != nil {
			return nil, fmt.Errorf("failed to quarantine %s: %w", book.Path, err)
		}
	}

	if err := s.store.DeleteBook(book.ID); err != nil {
		return nil, notFoundOr(err)
	}
	return book, nil
}

// FindViewablePDF resolves a title to a PDF path suitable for in-browser
// viewing. A record whose stored path is already a PDF resolves to that
// exact path; an EPUB resolves to its converted sibling if that file exists
// on disk, and to ErrNotFound otherwise.
func (s *Service) FindViewablePDF(title string) (string, error) {
	book, err := s.store.GetBookByTitle(title)
	if err != nil {
		return "", notFoundOr(err)
	}

	if strings.ToLower(filepath.Ext(book.Path)) == ".pdf" {
		return book.Path, nil
	}

	sibling := converter.PDFPath(book.Path)
	if _, err := os.Stat(sibling); err != nil {
		return "", ErrNotFound
	}
	return sibling, nil
}

// ConvertBook converts the EPUB at filePath to a PDF and registers the
// result as its own catalog record, tagged with the original's title. A
// conversion failure leaves the catalog untouched.
func (s *Service) ConvertBook(filePath string) (*entities.Book, error) {
	if !IsEPUB(filePath) {
		return nil, ErrNotEPUB
	}

	pdfPath, err := s.converter.Convert(filePath)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	if original, err := s.store.GetBookByPath(filePath); err == nil {
		title = original.Title
	}

	book := &entities.Book{
		Title:     title,
		Extension: ".pdf",
		Path:      pdfPath,
	}
	if _, err := s.store.InsertIfAbsent(book); err != nil {
		return nil, fmt.Errorf("conversion succeeded but registering %s failed: %w", pdfPath, err)
	}

	registered, err := s.store.GetBookByPath(pdfPath)
	if err != nil {
		return book, nil
	}
	return registered, nil
}

// resolve interprets ref as a numeric id when it parses as one, and as an
// exact title otherwise.
func (s *Service) resolve(ref string) (*entities.Book, error) {
	if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
		book, err := s.store.GetBookByID(uint(id))
		return book, notFoundOr(err)
	}
	book, err := s.store.GetBookByTitle(ref)
	return book, notFoundOr(err)
}

// quarantineFile relocates path into the quarantine subfolder next to it.
// A file that no longer exists is not an error.
func quarantineFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			log.Printf("Backing file %s already gone, removing catalog row only", path)
			return nil
		}
		return err
	}

	dir := filepath.Join(filepath.Dir(path), QuarantineDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.Rename(path, filepath.Join(dir, filepath.Base(path)))
}

func notFoundOr(err error) error {
	if errors.Is(err, books.ErrBookNotFound) {
		return ErrNotFound
	}
	return err
}
