package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafakka/virtuallibrary/internal/database"
)

// HealthResponse reports liveness and the catalog database check. The
// service has a single backing dependency, so one check field is enough.
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status pings the catalog database. An unreachable database is the only
// condition that degrades the service and reports as 503.
func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Database: "ok",
	}

	if err := h.db.Ping(); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "error: " + err.Error()
		c.IndentedJSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.IndentedJSON(http.StatusOK, resp)
}
