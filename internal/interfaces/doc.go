// Package interfaces documents the core abstractions used throughout the application.
//
// It holds no runtime code. checks.go pins every concrete type to the
// interfaces its consumers declare, so a missing method fails the build.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - TranslationStore: Translation records and keyset pages (internal/services/interfaces.go)
//   - ReadingSessionReader: Owner-scoped reading session lookup (internal/services/interfaces.go)
//   - PracticeStore: Practice sessions and questions (internal/services/interfaces.go)
//   - ReadingSessionStore: Reading session creation and listing (internal/http/reading_sessions.go)
//   - RefSource: Audio refs still held by translations (internal/speech/sweeper.go)
//   - UserRepository: Learner accounts and token hashes (internal/auth/service.go)
//
// ## External Service Interfaces
//
//   - Translator: Machine translation collaborator (internal/translate/translator.go)
//   - Synthesizer: Speech synthesis and audio asset storage (internal/speech/synthesizer.go)
//   - Tagger: Part-of-speech tagging (internal/lexical/tagger.go)
//   - Client: Blob storage for synthesized audio (internal/storage/client.go)
//
// ## Engine Interfaces
//
// HTTP controllers depend on narrow interfaces so they can be tested against
// real services or stubs:
//
//   - TranslationAssembler, TranslationLedger, TranslationRenderer (internal/http/translations.go)
//   - PracticeEngine (internal/http/practice.go)
//   - DashboardSource (internal/http/dashboard.go)
//   - AuditReader (internal/http/audit.go)
//
// ## Background Work Interfaces
//
//   - Enqueuer: Durable task queue (internal/tasks/client.go)
//   - AssetDeleter: Removes audio behind a deleted translation (internal/speech/synthesizer.go)
//   - AudioSweeper, SweepRecorder, AuditEventCleaner (internal/tasks/)
//
// # Adding a New Tagger
//
// To support tagging for another language:
//
//  1. Implement Tagger in internal/lexical/
//
//     type SpacyTagger struct {
//         baseURL string
//     }
//
//     func (t *SpacyTagger) TagPartsOfSpeech(ctx context.Context, text, language string) ([]WordTag, error)
//
//  2. Register it for the language codes it serves in newTagger (internal/entrypoint/entrypoint.go)
//
//  3. Add a compile-time check to checks.go
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for the full list.
package interfaces
