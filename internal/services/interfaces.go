package services

import (
	"time"

	"github.com/mrlokans/decypher/internal/database/translations"
	"github.com/mrlokans/decypher/internal/entities"
)

// TranslationStore persists translation records.
type TranslationStore interface {
	Create(translation *entities.Translation) error
	GetForOwner(ownerID, id uint) (*entities.Translation, error)
	ListPage(ownerID, readingSessionID uint, after *translations.Cursor, limit int) ([]entities.Translation, error)
	DeleteForOwner(ownerID, id uint) (*entities.Translation, error)
	IDsForOwner(ownerID uint) ([]uint, error)
}

// ReadingSessionReader resolves the reading session a translation is filed under.
type ReadingSessionReader interface {
	GetForOwner(ownerID, id uint) (*entities.ReadingSession, error)
}

// PracticeStore persists practice sessions and their questions.
type PracticeStore interface {
	CreateSession(session *entities.PracticeSession) error
	GetSessionForOwner(ownerID, id uint) (*entities.PracticeSession, error)
	ListSessionsForOwner(ownerID uint) ([]entities.PracticeSession, error)
	GetQuestionForOwner(ownerID, id uint) (*entities.Question, error)
	SaveAnswer(questionID uint, answer string, correct bool) error
	FinishSession(ownerID, id uint, duration time.Duration) (*entities.PracticeSession, error)
}

// Auditor records user-visible side effects.
type Auditor interface {
	LogTranslationDelete(userID, translationID uint)
	LogAudioDelete(userID, translationID uint, assetRef string, err error)
	LogPracticeFinish(userID, sessionID uint, score float64, duration time.Duration)
}
