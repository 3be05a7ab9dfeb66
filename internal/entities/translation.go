package entities

import "time"

// Translation is the persisted result of one translate + synthesize call.
// Rows are never updated after creation.
type Translation struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index:idx_translation_listing,priority:1" json:"user_id"`
	ReadingSessionID uint      `gorm:"index:idx_translation_listing,priority:2" json:"reading_session_id"`
	SourceText       string    `gorm:"type:text" json:"source_text"`
	TranslatedText   string    `gorm:"type:text" json:"translated_text"`
	AudioAssetRef    string    `gorm:"size:2048;index" json:"audio_asset_ref"`
	SourceLanguageID uint      `json:"source_language_id"`
	SourceLanguage   Language  `gorm:"foreignKey:SourceLanguageID" json:"source_language"`
	TargetLanguageID uint      `json:"target_language_id"`
	TargetLanguage   Language  `gorm:"foreignKey:TargetLanguageID" json:"target_language"`
	CreatedAt        time.Time `gorm:"index:idx_translation_listing,priority:3" json:"created_at"`
}
