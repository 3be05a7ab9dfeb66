// Package readingsessions provides database operations for reading sessions,
// the grouping every translation is filed under.
package readingsessions

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/decypher/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(session *entities.ReadingSession) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	session.CreatedAt = session.CreatedAt.UTC()
	return r.db.Create(session).Error
}

// GetForOwner returns the session only when it belongs to ownerID.
// Sessions owned by someone else are reported as not found.
func (r *Repository) GetForOwner(ownerID, id uint) (*entities.ReadingSession, error) {
	var session entities.ReadingSession
	err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("reading session %d: %w", id, entities.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListForOwner returns the owner's sessions, newest first.
func (r *Repository) ListForOwner(ownerID uint) ([]entities.ReadingSession, error) {
	var sessions []entities.ReadingSession
	err := r.db.Where("user_id = ?", ownerID).Order("created_at DESC, id DESC").Find(&sessions).Error
	return sessions, err
}

func (r *Repository) CountForOwner(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.ReadingSession{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}
