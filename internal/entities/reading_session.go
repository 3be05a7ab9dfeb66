package entities

import "time"

// ReadingSession groups the translations a learner made while reading.
type ReadingSession struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	UserID    uint          `gorm:"index" json:"user_id"`
	BookTitle string        `gorm:"size:512" json:"book_title"`
	Pages     float64       `json:"pages"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `gorm:"index" json:"created_at"`
}
