package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/auth"
	"github.com/mrlokans/decypher/internal/entities"
	"github.com/mrlokans/decypher/internal/services"
)

// TranslationAssembler creates translation records.
type TranslationAssembler interface {
	Assemble(ctx context.Context, owner *entities.User, readingSessionID uint, sourceText string) (*entities.Translation, error)
}

// TranslationLedger reads and deletes translation records.
type TranslationLedger interface {
	List(ctx context.Context, ownerID, readingSessionID uint, pageToken string) (*services.TranslationPage, error)
	Get(ctx context.Context, ownerID, id uint) (*entities.Translation, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// TranslationRenderer attaches the lexical analysis to records on their way out.
type TranslationRenderer interface {
	Render(ctx context.Context, t *entities.Translation) services.TranslationView
	RenderAll(ctx context.Context, items []entities.Translation) []services.TranslationView
}

type TranslationsController struct {
	assembler TranslationAssembler
	ledger    TranslationLedger
	renderer  TranslationRenderer
	log       logrus.FieldLogger
}

func NewTranslationsController(assembler TranslationAssembler, ledger TranslationLedger, renderer TranslationRenderer, log logrus.FieldLogger) *TranslationsController {
	return &TranslationsController{
		assembler: assembler,
		ledger:    ledger,
		renderer:  renderer,
		log:       log,
	}
}

type createTranslationRequest struct {
	SourceText       string `json:"source_text"`
	ReadingSessionID uint   `json:"reading_session_id"`
}

// TranslationListResponse is one page of translations.
type TranslationListResponse struct {
	Items         []services.TranslationView `json:"items"`
	NextPageToken string                     `json:"next_page_token,omitempty"`
}

// CreateTranslation translates and voices the submitted text.
// POST /api/translations
func (tc *TranslationsController) CreateTranslation(c *gin.Context) {
	var req createTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	owner := auth.GetUser(c)
	if owner == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}
	translation, err := tc.assembler.Assemble(c.Request.Context(), owner, req.ReadingSessionID, req.SourceText)
	if err != nil {
		respondServiceError(c, tc.log, err, "create translation")
		return
	}

	c.JSON(http.StatusCreated, tc.renderer.Render(c.Request.Context(), translation))
}

// ListTranslations returns a page of a reading session's translations, newest first.
// GET /api/translations?reading_session_id=&page_token=
func (tc *TranslationsController) ListTranslations(c *gin.Context) {
	readingSessionID, ok := parseQueryID(c, "reading_session_id")
	if !ok {
		return
	}

	page, err := tc.ledger.List(c.Request.Context(), auth.GetUserID(c), readingSessionID, c.Query("page_token"))
	if err != nil {
		respondServiceError(c, tc.log, err, "list translations")
		return
	}

	c.JSON(http.StatusOK, TranslationListResponse{
		Items:         tc.renderer.RenderAll(c.Request.Context(), page.Items),
		NextPageToken: page.NextPageToken,
	})
}

// GetTranslation returns one translation with a fresh analysis.
// GET /api/translations/:id
func (tc *TranslationsController) GetTranslation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	translation, err := tc.ledger.Get(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		respondServiceError(c, tc.log, err, "get translation")
		return
	}

	c.JSON(http.StatusOK, tc.renderer.Render(c.Request.Context(), translation))
}

// DeleteTranslation removes a translation and its audio.
// DELETE /api/translations/:id
func (tc *TranslationsController) DeleteTranslation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.ledger.Delete(c.Request.Context(), auth.GetUserID(c), id); err != nil {
		respondServiceError(c, tc.log, err, "delete translation")
		return
	}

	c.Status(http.StatusNoContent)
}
