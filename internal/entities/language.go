package entities

import "time"

type Language struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100" json:"name"`                    // e.g., "Brazilian Portuguese"
	Code        string    `gorm:"uniqueIndex;size:10" json:"code"`         // e.g., "pt-BR"
	ShortCode   string    `gorm:"index;size:5" json:"short_code"`          // e.g., "pt"
	Description string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
