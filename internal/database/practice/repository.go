// Package practice provides database operations for practice sessions and
// their questions.
package practice

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/decypher/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateSession inserts a session and all of its questions in one transaction.
func (r *Repository) CreateSession(session *entities.PracticeSession) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	session.CreatedAt = session.CreatedAt.UTC()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(session).Error; err != nil {
			return fmt.Errorf("create practice session: %w", err)
		}
		for i := range session.Questions {
			session.Questions[i].PracticeSessionID = session.ID
		}
		if len(session.Questions) == 0 {
			return nil
		}
		if err := tx.Omit(clause.Associations).Create(&session.Questions).Error; err != nil {
			return fmt.Errorf("create practice questions: %w", err)
		}
		return nil
	})
}

// GetSessionForOwner loads a session with its questions and their translations.
func (r *Repository) GetSessionForOwner(ownerID, id uint) (*entities.PracticeSession, error) {
	var session entities.PracticeSession
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Questions.Translation").
		Preload("Questions.Translation.SourceLanguage").
		Preload("Questions.Translation.TargetLanguage").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("practice session %d: %w", id, entities.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessionsForOwner returns the owner's sessions newest first, without questions.
func (r *Repository) ListSessionsForOwner(ownerID uint) ([]entities.PracticeSession, error) {
	var sessions []entities.PracticeSession
	err := r.db.Where("user_id = ?", ownerID).Order("created_at DESC, id DESC").Find(&sessions).Error
	return sessions, err
}

// GetQuestionForOwner loads a question, with the translation it asks about,
// when the question belongs to one of the owner's sessions.
func (r *Repository) GetQuestionForOwner(ownerID, id uint) (*entities.Question, error) {
	var question entities.Question
	err := r.db.
		Joins("JOIN practice_sessions ON practice_sessions.id = questions.practice_session_id").
		Preload("Translation").
		Where("questions.id = ? AND practice_sessions.user_id = ?", id, ownerID).
		First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("question %d: %w", id, entities.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// SaveAnswer records the guess and its verdict. Questions of finished
// sessions are left untouched and ErrConflict is returned.
func (r *Repository) SaveAnswer(questionID uint, answer string, correct bool) error {
	open := r.db.Model(&entities.PracticeSession{}).Select("id").Where("score IS NULL")
	result := r.db.Model(&entities.Question{}).
		Where("id = ? AND practice_session_id IN (?)", questionID, open).
		Updates(map[string]any{
			"answer_provided": answer,
			"correct":         correct,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("question %d belongs to a finished session: %w", questionID, entities.ErrConflict)
	}
	return nil
}

// FinishSession counts the session's verdicts and writes duration and score
// in a single conditional update. A session can only be finished once.
func (r *Repository) FinishSession(ownerID, id uint, duration time.Duration) (*entities.PracticeSession, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var session entities.PracticeSession
		err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("practice session %d: %w", id, entities.ErrNotFound)
		}
		if err != nil {
			return err
		}

		var total, correct int64
		if err := tx.Model(&entities.Question{}).Where("practice_session_id = ?", id).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Question{}).Where("practice_session_id = ? AND correct = ?", id, true).Count(&correct).Error; err != nil {
			return err
		}

		score := entities.Score(int(correct), int(total))
		result := tx.Model(&entities.PracticeSession{}).
			Where("id = ? AND score IS NULL", id).
			Updates(map[string]any{"duration": duration, "score": score})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("practice session %d is already finished: %w", id, entities.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetSessionForOwner(ownerID, id)
}

func (r *Repository) CountSessionsForOwner(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.PracticeSession{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}

// AverageScoreForOwner averages the scores of finished sessions. It returns
// nil when the owner has not finished any session.
func (r *Repository) AverageScoreForOwner(ownerID uint) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.Model(&entities.PracticeSession{}).
		Where("user_id = ? AND score IS NOT NULL", ownerID).
		Select("AVG(score)").
		Row().Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
