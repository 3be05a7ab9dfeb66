package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mrlokans/decypher/internal/entities"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrUsernameInvalid = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid    = errors.New("invalid email format")
	ErrSameLanguages   = errors.New("first language and language being learned must differ")
)

// UserRepository defines the user data access the service needs.
type UserRepository interface {
	CreateUser(username, email, tokenHash string, firstLanguageID, learningLanguageID uint) (*entities.User, error)
	GetUserByTokenHash(tokenHash string) (*entities.User, error)
}

// Service resolves API tokens to learners and provisions new learners.
type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// CreateUser creates a learner and returns it with its plaintext token.
// Only the token hash is stored.
func (s *Service) CreateUser(username, email string, firstLanguageID, learningLanguageID uint) (*entities.User, string, error) {
	if !usernamePattern.MatchString(username) {
		return nil, "", ErrUsernameInvalid
	}
	if !emailPattern.MatchString(email) {
		return nil, "", ErrEmailInvalid
	}
	if firstLanguageID == learningLanguageID {
		return nil, "", ErrSameLanguages
	}

	plaintext, hash, err := GenerateAPIToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user, err := s.users.CreateUser(username, email, hash, firstLanguageID, learningLanguageID)
	if err != nil {
		return nil, "", err
	}
	return user, plaintext, nil
}

// ValidateToken checks a plaintext token and returns the associated user with
// both languages loaded.
func (s *Service) ValidateToken(token string) (*entities.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUserByTokenHash(HashToken(token))
	if errors.Is(err, entities.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
