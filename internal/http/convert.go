package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafakka/virtuallibrary/internal/converter"
	"github.com/rafakka/virtuallibrary/internal/entities"
	"github.com/rafakka/virtuallibrary/internal/library"
)

// ConverterService defines the conversion and viewing operations the
// convert controller needs.
type ConverterService interface {
	ConvertBook(filePath string) (*entities.Book, error)
	FindViewablePDF(title string) (string, error)
}

type ConvertController struct {
	service ConverterService
}

func NewConvertController(service ConverterService) *ConvertController {
	return &ConvertController{service: service}
}

type convertRequest struct {
	FilePath string `json:"file_path"`
}

// Convert runs the EPUB-to-PDF converter and registers the resulting PDF as
// its own catalog record. A conversion failure leaves the catalog untouched
// and reports the cause.
// POST /books/convert
func (cc *ConvertController) Convert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FilePath == "" {
		respondBadRequest(c, "file_path is required")
		return
	}

	book, err := cc.service.ConvertBook(req.FilePath)
	if errors.Is(err, library.ErrNotEPUB) {
		respondBadRequest(c, "file is not an EPUB")
		return
	}
	var convErr *converter.ConversionError
	if errors.As(err, &convErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: convErr.Error()})
		return
	}
	if err != nil {
		respondInternalError(c, err, "convert book")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Converted '%s' to PDF", book.Title),
		"book":    book,
	})
}

// View resolves a title to a viewable PDF and streams it. The original path
// is served when it is already a PDF; otherwise the converted sibling is
// served if present on disk.
// GET /books/:title/view
func (cc *ConvertController) View(c *gin.Context) {
	title := c.Param("title")

	path, err := cc.service.FindViewablePDF(title)
	if errors.Is(err, library.ErrNotFound) {
		respondNotFound(c, "viewable PDF for '"+title+"'")
		return
	}
	if err != nil {
		respondInternalError(c, err, "find viewable PDF")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
