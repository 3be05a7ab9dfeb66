// Package translations provides database operations for translation records.
//
// Listing uses keyset pagination over (created_at, id) so that pages stay
// stable while new translations are being added.
package translations

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/decypher/internal/entities"
)

// Cursor marks the last translation of a page. The next page starts strictly after it.
type Cursor struct {
	CreatedAt time.Time
	ID        uint
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a translation. Languages must already exist; they are referenced by ID only.
func (r *Repository) Create(translation *entities.Translation) error {
	if translation.CreatedAt.IsZero() {
		translation.CreatedAt = time.Now().UTC()
	}
	translation.CreatedAt = translation.CreatedAt.UTC()
	return r.db.Omit(clause.Associations).Create(translation).Error
}

// GetForOwner retrieves one translation with its languages. Translations owned
// by another user are reported as not found.
func (r *Repository) GetForOwner(ownerID, id uint) (*entities.Translation, error) {
	var translation entities.Translation
	err := r.withLanguages(r.db).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&translation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("translation %d: %w", id, entities.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

// ListPage returns up to limit translations of one reading session, newest
// first, starting after the cursor when one is given.
func (r *Repository) ListPage(ownerID, readingSessionID uint, after *Cursor, limit int) ([]entities.Translation, error) {
	query := r.withLanguages(r.db).
		Where("user_id = ? AND reading_session_id = ?", ownerID, readingSessionID)

	if after != nil {
		createdAt := after.CreatedAt.UTC()
		query = query.Where("(created_at < ? OR (created_at = ? AND id < ?))", createdAt, createdAt, after.ID)
	}

	var page []entities.Translation
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&page).Error
	return page, err
}

// DeleteForOwner removes a translation together with the practice questions
// that reference it and returns the removed row. Of several concurrent calls
// for the same id only one succeeds; the others get ErrNotFound.
func (r *Repository) DeleteForOwner(ownerID, id uint) (*entities.Translation, error) {
	var translation entities.Translation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&translation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("translation %d: %w", id, entities.ErrNotFound)
		}
		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&entities.Translation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("translation %d: %w", id, entities.ErrNotFound)
		}
		return tx.Where("translation_id = ?", id).Delete(&entities.Question{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

func (r *Repository) CountForOwner(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Translation{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}

// IDsForOwner returns the IDs of every translation the owner has made.
func (r *Repository) IDsForOwner(ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.Translation{}).Where("user_id = ?", ownerID).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// AudioAssetRefs returns every audio reference still held by a translation.
func (r *Repository) AudioAssetRefs() ([]string, error) {
	var refs []string
	err := r.db.Model(&entities.Translation{}).Where("audio_asset_ref <> ''").Pluck("audio_asset_ref", &refs).Error
	return refs, err
}

func (r *Repository) withLanguages(db *gorm.DB) *gorm.DB {
	return db.Preload("SourceLanguage").Preload("TargetLanguage")
}
