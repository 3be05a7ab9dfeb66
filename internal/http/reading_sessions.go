package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/auth"
	"github.com/mrlokans/decypher/internal/entities"
	"github.com/mrlokans/decypher/internal/services"
)

// ReadingSessionStore defines database operations for reading sessions.
type ReadingSessionStore interface {
	Create(session *entities.ReadingSession) error
	ListForOwner(ownerID uint) ([]entities.ReadingSession, error)
}

type ReadingSessionsController struct {
	store ReadingSessionStore
	log   logrus.FieldLogger
}

func NewReadingSessionsController(store ReadingSessionStore, log logrus.FieldLogger) *ReadingSessionsController {
	return &ReadingSessionsController{store: store, log: log}
}

type createReadingSessionRequest struct {
	BookTitle string  `json:"book_title"`
	Pages     float64 `json:"pages"`
	Duration  string  `json:"duration"`
}

// CreateReadingSession opens a reading session translations can be filed under.
// POST /api/reading-sessions
func (rc *ReadingSessionsController) CreateReadingSession(c *gin.Context) {
	var req createReadingSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	title := strings.TrimSpace(req.BookTitle)
	if title == "" {
		respondServiceError(c, rc.log, entities.NewValidationError("book_title", "must not be empty"), "create reading session")
		return
	}
	if req.Pages < 0 {
		respondServiceError(c, rc.log, entities.NewValidationError("pages", "must not be negative"), "create reading session")
		return
	}

	session := &entities.ReadingSession{
		UserID:    auth.GetUserID(c),
		BookTitle: title,
		Pages:     req.Pages,
	}
	if req.Duration != "" {
		d, err := services.ParseElapsed(req.Duration)
		if err != nil {
			respondServiceError(c, rc.log, err, "create reading session")
			return
		}
		session.Duration = d
	}

	if err := rc.store.Create(session); err != nil {
		respondInternalError(c, rc.log, err, "create reading session")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListReadingSessions returns the owner's reading sessions newest first.
// GET /api/reading-sessions
func (rc *ReadingSessionsController) ListReadingSessions(c *gin.Context) {
	sessions, err := rc.store.ListForOwner(auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, rc.log, err, "list reading sessions")
		return
	}
	if sessions == nil {
		sessions = []entities.ReadingSession{}
	}
	c.JSON(http.StatusOK, sessions)
}
