package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/decypher/internal/entities"
)

var defaultLanguages = []entities.Language{
	{Name: "English", Code: "en-US", ShortCode: "en", Description: "American English"},
	{Name: "Brazilian Portuguese", Code: "pt-BR", ShortCode: "pt", Description: "Portuguese as spoken in Brazil"},
	{Name: "Spanish", Code: "es-ES", ShortCode: "es"},
	{Name: "French", Code: "fr-FR", ShortCode: "fr"},
	{Name: "German", Code: "de-DE", ShortCode: "de"},
	{Name: "Italian", Code: "it-IT", ShortCode: "it"},
	{Name: "Japanese", Code: "ja-JP", ShortCode: "ja"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string, logLevel logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer; sharing one connection avoids "database is locked".
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	database := &Database{DB: db}

	if err := database.seedLanguages(); err != nil {
		return nil, fmt.Errorf("failed to seed languages: %w", err)
	}

	return database, nil
}

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entities.Language{},
		&entities.User{},
		&entities.ReadingSession{},
		&entities.Translation{},
		&entities.PracticeSession{},
		&entities.Question{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) seedLanguages() error {
	for _, language := range defaultLanguages {
		var existing entities.Language
		result := d.DB.Where("code = ?", language.Code).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := d.DB.Create(&language).Error; err != nil {
				return fmt.Errorf("failed to create language %s: %w", language.Code, err)
			}
		} else if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// GetLanguageByShortCode looks up a seeded language, e.g. "pt".
func (d *Database) GetLanguageByShortCode(shortCode string) (*entities.Language, error) {
	var language entities.Language
	err := d.DB.Where("short_code = ?", shortCode).First(&language).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("language %q: %w", shortCode, entities.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}

func (d *Database) GetAllLanguages() ([]entities.Language, error) {
	var languages []entities.Language
	err := d.DB.Order("id ASC").Find(&languages).Error
	return languages, err
}
