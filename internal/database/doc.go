// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go        # Connection setup, migrations, language seeding
//	├── users/             # Learner accounts and API token hashes
//	├── readingsessions/   # Reading sessions translations are filed under
//	├── translations/      # Translation records and keyset pagination
//	├── practice/          # Practice sessions, questions and grading state
//	└── audit/             # Audit event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./decypher.db", logger.Warn)
//
//	translationsRepo := translations.NewRepository(db.DB)
//	practiceRepo := practice.NewRepository(db.DB)
//
//	t, err := translationsRepo.GetForOwner(userID, translationID)
//	session, err := practiceRepo.GetSessionForOwner(userID, sessionID)
//
// Every lookup that takes an owner ID treats a record owned by someone else
// as missing and returns entities.ErrNotFound.
//
// # Interface Implementations
//
//   - translations.Repository: implements services.TranslationStore and speech.RefSource
//   - readingsessions.Repository: implements services.ReadingSessionReader and http.ReadingSessionStore
//   - practice.Repository: implements services.PracticeStore and services.PracticeStats
//   - users.Repository: implements auth.UserRepository
//   - audit.Repository: backs audit.Service
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in Migrate
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
