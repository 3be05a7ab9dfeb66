package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"unicode/utf8"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/entities"
)

// PracticeEngine builds practice sessions from past translations and grades
// the learner's answers.
type PracticeEngine struct {
	translations TranslationStore
	store        PracticeStore
	auditor      Auditor
	sampleSize   int
	threshold    float64
	maxGuess     int
	intN         func(n int) int
	log          logrus.FieldLogger
}

func NewPracticeEngine(translations TranslationStore, store PracticeStore, auditor Auditor, sampleSize int, threshold float64, maxGuess int, log logrus.FieldLogger) *PracticeEngine {
	if sampleSize <= 0 {
		sampleSize = 5
	}
	if maxGuess <= 0 {
		maxGuess = 100
	}
	return &PracticeEngine{
		translations: translations,
		store:        store,
		auditor:      auditor,
		sampleSize:   sampleSize,
		threshold:    threshold,
		maxGuess:     maxGuess,
		intN:         rand.IntN,
		log:          log,
	}
}

// StartSession samples distinct translations uniformly from the owner's whole
// history and creates one question per sampled translation. Owners with fewer
// translations than the sample size get an InsufficientDataError and no rows
// are written.
func (e *PracticeEngine) StartSession(ctx context.Context, ownerID uint) (*entities.PracticeSession, error) {
	ids, err := e.translations.IDsForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if len(ids) < e.sampleSize {
		return nil, &entities.InsufficientDataError{Have: len(ids), Need: e.sampleSize}
	}

	session := &entities.PracticeSession{UserID: ownerID}
	for _, id := range e.sample(ids) {
		session.Questions = append(session.Questions, entities.Question{TranslationID: id})
	}
	if err := e.store.CreateSession(session); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"owner_id":   ownerID,
		"session_id": session.ID,
	}).Info("practice session started")
	return e.store.GetSessionForOwner(ownerID, session.ID)
}

// sample draws sampleSize distinct ids with a partial Fisher-Yates shuffle.
func (e *PracticeEngine) sample(ids []uint) []uint {
	pool := make([]uint, len(ids))
	copy(pool, ids)
	for i := 0; i < e.sampleSize; i++ {
		j := i + e.intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:e.sampleSize]
}

// GradeAnswer compares guess with the expected translation and stores both the
// guess and the verdict. Grading again overwrites the previous answer.
func (e *PracticeEngine) GradeAnswer(ctx context.Context, ownerID, questionID uint, guess string) (*entities.Question, error) {
	if guess == "" {
		return nil, entities.NewValidationError("guess", "must not be empty")
	}
	if utf8.RuneCountInString(guess) > e.maxGuess {
		return nil, entities.NewValidationError("guess", fmt.Sprintf("must be at most %d characters", e.maxGuess))
	}

	question, err := e.store.GetQuestionForOwner(ownerID, questionID)
	if err != nil {
		return nil, err
	}

	correct := e.IsCorrect(guess, question.Translation.TranslatedText)
	if err := e.store.SaveAnswer(question.ID, guess, correct); err != nil {
		return nil, err
	}

	question.AnswerProvided = &guess
	question.Correct = &correct
	e.log.WithFields(logrus.Fields{
		"owner_id":    ownerID,
		"question_id": questionID,
		"correct":     correct,
	}).Debug("answer graded")
	return question, nil
}

// IsCorrect applies the pass threshold to the fuzzy ratio of guess and
// expected, a 0-100 score rounded to an integer. Both strings are compared
// as given.
func (e *PracticeEngine) IsCorrect(guess, expected string) bool {
	return float64(fuzzy.Ratio(guess, expected)) >= e.threshold
}

// FinishSession parses the elapsed time, computes the score and closes the
// session. A session can be finished only once.
func (e *PracticeEngine) FinishSession(ctx context.Context, ownerID, sessionID uint, elapsed string) (*entities.PracticeSession, error) {
	duration, err := ParseElapsed(elapsed)
	if err != nil {
		return nil, err
	}

	session, err := e.store.FinishSession(ownerID, sessionID, duration)
	if err != nil {
		return nil, err
	}

	e.auditor.LogPracticeFinish(ownerID, session.ID, *session.Score, duration)
	e.log.WithFields(logrus.Fields{
		"owner_id":   ownerID,
		"session_id": sessionID,
		"score":      *session.Score,
	}).Info("practice session finished")
	return session, nil
}

func (e *PracticeEngine) GetSession(ctx context.Context, ownerID, sessionID uint) (*entities.PracticeSession, error) {
	return e.store.GetSessionForOwner(ownerID, sessionID)
}

func (e *PracticeEngine) ListSessions(ctx context.Context, ownerID uint) ([]entities.PracticeSession, error) {
	sessions, err := e.store.ListSessionsForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []entities.PracticeSession{}
	}
	return sessions, nil
}
