package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafakka/virtuallibrary/internal/auth"
	"github.com/rafakka/virtuallibrary/internal/config"
	"github.com/rafakka/virtuallibrary/internal/converter"
	"github.com/rafakka/virtuallibrary/internal/database"
	"github.com/rafakka/virtuallibrary/internal/database/books"
	http_controllers "github.com/rafakka/virtuallibrary/internal/http"
	"github.com/rafakka/virtuallibrary/internal/library"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the catalog together and starts the server.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Virtual Library v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := books.NewRepository(db.DB)
	catalog := library.NewService(repo, converter.NewBookConverter(), cfg.Library.QuarantineDelete)

	authMiddleware := auth.NewMiddleware(cfg.Auth.TokenHash)
	if authMiddleware.Enabled() {
		log.Printf("API token authentication enabled for mutating endpoints")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:        catalog,
		Database:       db,
		AuthMiddleware: authMiddleware,
		Version:        version,
	})

	Serve(router, cfg)
}
