package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping() error
}

// ModelState reports whether the in-process tagger model is in memory.
type ModelState interface {
	Loaded() bool
}

type HealthController struct {
	db      Pinger
	model   ModelState
	version string
}

// NewHealthController creates the health endpoint. model may be nil when the
// in-process tagger is disabled.
func NewHealthController(db Pinger, model ModelState, version string) *HealthController {
	return &HealthController{
		db:      db,
		model:   model,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// The model loads on first use, so "not loaded" is not a failure.
	switch {
	case h.model == nil:
		checks["tagger_model"] = "disabled"
	case h.model.Loaded():
		checks["tagger_model"] = "loaded"
	default:
		checks["tagger_model"] = "not loaded"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Ping answers liveness probes.
func (h *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
