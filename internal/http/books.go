package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafakka/virtuallibrary/internal/entities"
	"github.com/rafakka/virtuallibrary/internal/library"
)

// CatalogStore defines the catalog operations the books controller needs.
type CatalogStore interface {
	GetAllBooks() ([]entities.Book, error)
	Search(query string) ([]entities.Book, error)
	ToggleRead(ref string) (*entities.Book, error)
	Rename(ref, newTitle string) (*entities.Book, error)
	Delete(ref string) (*entities.Book, error)
}

type BooksController struct {
	catalog CatalogStore
}

func NewBooksController(catalog CatalogStore) *BooksController {
	return &BooksController{catalog: catalog}
}

// GetAllBooks returns every catalog record, most recently added first.
// GET /books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	books, err := bc.catalog.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, books)
}

// SearchByTitle performs a case-insensitive substring search.
// GET /books/:title
func (bc *BooksController) SearchByTitle(c *gin.Context) {
	books, err := bc.catalog.Search(c.Param("title"))
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// ToggleRead flips a book's read flag. The path segment is an id or a title.
// PATCH /books/:ref
func (bc *BooksController) ToggleRead(c *gin.Context) {
	ref := c.Param("ref")

	book, err := bc.catalog.ToggleRead(ref)
	if errors.Is(err, library.ErrNotFound) {
		respondNotFound(c, "book '"+ref+"'")
		return
	}
	if err != nil {
		respondInternalError(c, err, "toggle read")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Book '%s' marked as read=%t", book.Title, book.Read),
		"book":    book,
	})
}

type renameRequest struct {
	NewTitle string `json:"new_title"`
}

// Rename updates a book's title.
// PATCH /books/:ref/rename
func (bc *BooksController) Rename(c *gin.Context) {
	ref := c.Param("ref")

	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewTitle == "" {
		respondBadRequest(c, "new_title is required")
		return
	}

	book, err := bc.catalog.Rename(ref, req.NewTitle)
	if errors.Is(err, library.ErrNotFound) {
		respondNotFound(c, "book '"+ref+"'")
		return
	}
	if err != nil {
		respondInternalError(c, err, "rename book")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Book renamed to '%s'", book.Title),
		"book":    book,
	})
}

// Delete removes a catalog record, quarantining the backing file when that
// variant is enabled.
// DELETE /books/:ref
func (bc *BooksController) Delete(c *gin.Context) {
	ref := c.Param("ref")

	book, err := bc.catalog.Delete(ref)
	if errors.Is(err, library.ErrNotFound) {
		respondNotFound(c, "book '"+ref+"'")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	respondSuccess(c, fmt.Sprintf("Book '%s' deleted", book.Title))
}
