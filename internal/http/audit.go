package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/auth"
	auditrepo "github.com/mrlokans/decypher/internal/database/audit"
	"github.com/mrlokans/decypher/internal/entities"
)

// AuditReader reads recorded audit events.
type AuditReader interface {
	GetEvents(filter auditrepo.EventFilter, limit, offset int) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	events AuditReader
	log    logrus.FieldLogger
}

func NewAuditController(events AuditReader, log logrus.FieldLogger) *AuditController {
	return &AuditController{events: events, log: log}
}

// GetAuditEvents returns the owner's audit events as JSON, newest first.
// GET /api/audit-events?page=&limit=&type=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	filter := auditrepo.EventFilter{
		UserID:    auth.GetUserID(c),
		EventType: entities.AuditEventType(c.Query("type")),
	}
	events, total, err := ac.events.GetEvents(filter, limit, offset)
	if err != nil {
		respondInternalError(c, ac.log, err, "load audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       events,
		"page":         page,
		"limit":        limit,
		"total_pages":  totalPages,
		"total_events": total,
	})
}
