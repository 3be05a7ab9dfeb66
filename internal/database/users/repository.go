// Package users provides database operations for learner accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByTokenHash(hash)
package users

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/decypher/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a learner with both languages set.
// The token hash is stored as given; the plaintext token never reaches the database.
func (r *Repository) CreateUser(username, email, tokenHash string, firstLanguageID, learningLanguageID uint) (*entities.User, error) {
	now := time.Now().UTC()
	user := &entities.User{
		Username:               username,
		Email:                  email,
		TokenHash:              tokenHash,
		TokenCreatedAt:         &now,
		FirstLanguageID:        &firstLanguageID,
		LanguageBeingLearnedID: &learningLanguageID,
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}

	return r.GetUserByID(user.ID)
}

// GetUserByTokenHash retrieves a user by the hash of their API token.
func (r *Repository) GetUserByTokenHash(tokenHash string) (*entities.User, error) {
	if tokenHash == "" {
		return nil, entities.ErrNotFound
	}
	return r.first(r.db.Where("token_hash = ?", tokenHash))
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	return r.first(r.db.Where("username = ?", username))
}

// first loads a single user with both languages preloaded.
func (r *Repository) first(query *gorm.DB) (*entities.User, error) {
	var user entities.User
	err := query.Preload("FirstLanguage").Preload("LanguageBeingLearned").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
