package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/auth"
	"github.com/mrlokans/decypher/internal/entities"
)

// PracticeEngine runs practice sessions for the authenticated owner.
type PracticeEngine interface {
	StartSession(ctx context.Context, ownerID uint) (*entities.PracticeSession, error)
	GradeAnswer(ctx context.Context, ownerID, questionID uint, guess string) (*entities.Question, error)
	FinishSession(ctx context.Context, ownerID, sessionID uint, elapsed string) (*entities.PracticeSession, error)
	GetSession(ctx context.Context, ownerID, sessionID uint) (*entities.PracticeSession, error)
	ListSessions(ctx context.Context, ownerID uint) ([]entities.PracticeSession, error)
}

type PracticeController struct {
	engine PracticeEngine
	log    logrus.FieldLogger
}

func NewPracticeController(engine PracticeEngine, log logrus.FieldLogger) *PracticeController {
	return &PracticeController{engine: engine, log: log}
}

// QuestionTranslation is the part of a translation shown while practicing.
// TranslatedText stays empty until the session is finished.
type QuestionTranslation struct {
	ID             uint              `json:"id"`
	SourceText     string            `json:"source_text"`
	TranslatedText string            `json:"translated_text,omitempty"`
	AudioAssetRef  string            `json:"audio_asset_ref"`
	SourceLanguage entities.Language `json:"source_language"`
	TargetLanguage entities.Language `json:"target_language"`
}

type QuestionView struct {
	ID             uint                `json:"id"`
	Translation    QuestionTranslation `json:"translation"`
	AnswerProvided *string             `json:"answer_provided"`
	Correct        *bool               `json:"correct"`
}

type PracticeSessionView struct {
	ID        uint                   `json:"id"`
	State     entities.PracticeState `json:"state"`
	Duration  *string                `json:"duration"`
	Score     *float64               `json:"score"`
	CreatedAt time.Time              `json:"created_at"`
	Questions []QuestionView         `json:"questions,omitempty"`
}

type GradeResponse struct {
	ID             uint    `json:"id"`
	AnswerProvided *string `json:"answer_provided"`
	Correct        *bool   `json:"correct"`
}

type FinishResponse struct {
	ID       uint     `json:"id"`
	Duration *string  `json:"duration"`
	Score    *float64 `json:"score"`
}

type gradeRequest struct {
	Guess string `json:"guess"`
}

type finishRequest struct {
	Duration string `json:"duration"`
}

// StartSession samples past translations into a new session.
// POST /api/practice-sessions
func (pc *PracticeController) StartSession(c *gin.Context) {
	session, err := pc.engine.StartSession(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		respondServiceError(c, pc.log, err, "start practice session")
		return
	}
	c.JSON(http.StatusCreated, newPracticeSessionView(session))
}

// ListSessions returns the owner's sessions newest first, without questions.
// GET /api/practice-sessions
func (pc *PracticeController) ListSessions(c *gin.Context) {
	sessions, err := pc.engine.ListSessions(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		respondServiceError(c, pc.log, err, "list practice sessions")
		return
	}

	views := make([]PracticeSessionView, 0, len(sessions))
	for i := range sessions {
		views = append(views, newPracticeSessionView(&sessions[i]))
	}
	c.JSON(http.StatusOK, views)
}

// GetSession returns a session with its questions and derived state.
// GET /api/practice-sessions/:id
func (pc *PracticeController) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := pc.engine.GetSession(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		respondServiceError(c, pc.log, err, "get practice session")
		return
	}
	c.JSON(http.StatusOK, newPracticeSessionView(session))
}

// GradeAnswer grades a guess for one question.
// PATCH /api/practice-sessions/questions/:id
func (pc *PracticeController) GradeAnswer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	question, err := pc.engine.GradeAnswer(c.Request.Context(), auth.GetUserID(c), id, req.Guess)
	if err != nil {
		respondServiceError(c, pc.log, err, "grade answer")
		return
	}

	c.JSON(http.StatusOK, GradeResponse{
		ID:             question.ID,
		AnswerProvided: question.AnswerProvided,
		Correct:        question.Correct,
	})
}

// FinishSession closes a session with the elapsed time and returns its score.
// PATCH /api/practice-sessions/:id
func (pc *PracticeController) FinishSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req finishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	session, err := pc.engine.FinishSession(c.Request.Context(), auth.GetUserID(c), id, req.Duration)
	if err != nil {
		respondServiceError(c, pc.log, err, "finish practice session")
		return
	}

	c.JSON(http.StatusOK, FinishResponse{
		ID:       session.ID,
		Duration: formatDuration(session.Duration),
		Score:    session.Score,
	})
}

func newPracticeSessionView(s *entities.PracticeSession) PracticeSessionView {
	view := PracticeSessionView{
		ID:        s.ID,
		State:     s.State(),
		Duration:  formatDuration(s.Duration),
		Score:     s.Score,
		CreatedAt: s.CreatedAt,
	}

	reveal := s.Finished()
	for _, q := range s.Questions {
		qt := QuestionTranslation{
			ID:             q.Translation.ID,
			SourceText:     q.Translation.SourceText,
			AudioAssetRef:  q.Translation.AudioAssetRef,
			SourceLanguage: q.Translation.SourceLanguage,
			TargetLanguage: q.Translation.TargetLanguage,
		}
		if reveal {
			qt.TranslatedText = q.Translation.TranslatedText
		}
		view.Questions = append(view.Questions, QuestionView{
			ID:             q.ID,
			Translation:    qt,
			AnswerProvided: q.AnswerProvided,
			Correct:        q.Correct,
		})
	}
	return view
}

func formatDuration(d *time.Duration) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
