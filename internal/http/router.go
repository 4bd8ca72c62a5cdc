package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafakka/virtuallibrary/internal/auth"
	"github.com/rafakka/virtuallibrary/internal/database"
)

// CatalogService is the full catalog surface the router wires into the
// controllers. *library.Service satisfies it.
type CatalogService interface {
	CatalogStore
	FolderScanner
	ConverterService
}

// RouterConfig carries all router dependencies.
type RouterConfig struct {
	Catalog        CatalogService
	Database       *database.Database
	AuthMiddleware *auth.Middleware
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Mutating routes go through the token middleware, which is a no-op when no
// token hash is configured.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	books := NewBooksController(cfg.Catalog)
	scan := NewScanController(cfg.Catalog)
	convert := NewConvertController(cfg.Catalog)

	guard := cfg.AuthMiddleware.Handler()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Virtual Library!"})
	})
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.POST("/booksdb", guard, scan.UpdateBooks)

	router.GET("/books", books.GetAllBooks)
	router.GET("/books/:title", books.SearchByTitle)
	router.GET("/books/:title/view", convert.View)

	router.PATCH("/books/:ref", guard, books.ToggleRead)
	router.PATCH("/books/:ref/rename", guard, books.Rename)
	router.DELETE("/books/:ref", guard, books.Delete)

	router.POST("/books/convert", guard, convert.Convert)

	return router
}
