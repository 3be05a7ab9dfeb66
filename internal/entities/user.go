package entities

import (
	"time"

	"gorm.io/gorm"
)

// User is a learner account. Translations are made from the language being
// learned into the first language.
type User struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	Username               string         `gorm:"uniqueIndex;size:100" json:"username"`
	Email                  string         `gorm:"uniqueIndex;size:255" json:"email"`
	TokenHash              string         `gorm:"index;size:64" json:"-"`
	TokenCreatedAt         *time.Time     `json:"-"`
	FirstLanguageID        *uint          `json:"first_language_id"`
	FirstLanguage          *Language      `gorm:"foreignKey:FirstLanguageID" json:"first_language,omitempty"`
	LanguageBeingLearnedID *uint          `json:"language_being_learned_id"`
	LanguageBeingLearned   *Language      `gorm:"foreignKey:LanguageBeingLearnedID" json:"language_being_learned,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// HasLanguages reports whether both learner languages are loaded.
func (u *User) HasLanguages() bool {
	return u.FirstLanguage != nil && u.LanguageBeingLearned != nil
}
