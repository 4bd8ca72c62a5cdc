package http

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/rafakka/virtuallibrary/internal/library"
)

// FolderScanner defines the scan-and-insert operation the scan controller
// needs.
type FolderScanner interface {
	AddFolder(root string) (library.AddFolderResult, error)
}

type ScanController struct {
	scanner FolderScanner
}

func NewScanController(scanner FolderScanner) *ScanController {
	return &ScanController{scanner: scanner}
}

type scanRequest struct {
	FolderPath string `json:"folder_path"`
}

// UpdateBooks scans a folder and bulk-inserts every new book, skipping ones
// already catalogued by exact path. The folder must exist; validation
// failures never reach the scanner.
// POST /booksdb
func (sc *ScanController) UpdateBooks(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FolderPath == "" {
		respondBadRequest(c, "folder_path is required")
		return
	}

	if _, err := os.Stat(req.FolderPath); err != nil {
		respondBadRequest(c, "Folder path does not exist")
		return
	}

	result, err := sc.scanner.AddFolder(req.FolderPath)
	if err != nil {
		respondInternalError(c, err, "scan folder")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           fmt.Sprintf("Added %d books to Database.", result.BooksAdded),
		"books_added":       result.BooksAdded,
		"total_books_found": result.TotalFound,
	})
}
