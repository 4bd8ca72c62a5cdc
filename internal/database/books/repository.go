// Package books provides database operations for the book catalog.
//
// This package implements the store interfaces consumed by the catalog
// service and the HTTP controllers.
//
// # Usage
//
//	repo := books.NewRepository(db.DB)
//	book, err := repo.GetBookByID(123)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafakka/virtuallibrary/internal/entities"
)

// ErrBookNotFound is returned when a lookup matches no catalog row. It is a
// normal, reportable outcome, distinct from a storage failure.
var ErrBookNotFound = errors.New("book not found")

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InsertIfAbsent inserts a book unless a row with the same path already
// exists. Returns true when a new row was created. Losing an insert race to
// a concurrent scan surfaces as the unique constraint firing; that is
// reported as "already exists", not as an error.
func (r *Repository) InsertIfAbsent(book *entities.Book) (bool, error) {
	var existing entities.Book
	err := r.db.Where("path = ?", book.Path).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up book by path: %w", err)
	}

	if err := r.db.Create(book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert book: %w", err)
	}
	return true, nil
}

// GetAllBooks retrieves all catalog rows, most recently added first.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("added_at DESC").Find(&books).Error
	return books, err
}

// SearchByTitle performs a case-insensitive substring search over titles.
func (r *Repository) SearchByTitle(query string) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + query + "%"
	err := r.db.Where("LOWER(title) LIKE LOWER(?)", pattern).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book by its surrogate key.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookByPath retrieves a book by its exact filesystem path.
func (r *Repository) GetBookByPath(path string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("path = ?", path).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookByTitle retrieves a book by exact title. When several rows share a
// title the oldest one wins, matching insertion order.
func (r *Repository) GetBookByTitle(title string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("title = ?", title).Order("id ASC").First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ToggleRead flips the read flag in a single UPDATE. Applying it twice
// returns the row to its original value.
func (r *Repository) ToggleRead(id uint) error {
	result := r.db.Model(&entities.Book{}).
		Where("id = ?", id).
		Update("read", gorm.Expr("NOT read"))
	if result.Error != nil {
		return fmt.Errorf("failed to toggle read flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// RenameBook updates the title of a book.
func (r *Repository) RenameBook(id uint, newTitle string) error {
	result := r.db.Model(&entities.Book{}).
		Where("id = ?", id).
		Update("title", newTitle)
	if result.Error != nil {
		return fmt.Errorf("failed to rename book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// DeleteBook removes the catalog row. The backing file is the service
// layer's concern.
func (r *Repository) DeleteBook(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}
