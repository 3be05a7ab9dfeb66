package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/auth"
	"github.com/mrlokans/decypher/internal/services"
)

// DashboardSource provides the per-owner counters shown on the dashboard.
type DashboardSource interface {
	Stats(ctx context.Context, ownerID uint) (*services.DashboardStats, error)
}

type DashboardController struct {
	source DashboardSource
	log    logrus.FieldLogger
}

func NewDashboardController(source DashboardSource, log logrus.FieldLogger) *DashboardController {
	return &DashboardController{source: source, log: log}
}

// GetDashboard returns the owner's activity counters.
// GET /api/dashboard
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	stats, err := dc.source.Stats(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, dc.log, err, "load dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}
