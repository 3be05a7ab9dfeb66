package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/decypher/internal/audit"
	"github.com/mrlokans/decypher/internal/auth"
	"github.com/mrlokans/decypher/internal/database"
	auditrepo "github.com/mrlokans/decypher/internal/database/audit"
	"github.com/mrlokans/decypher/internal/database/practice"
	"github.com/mrlokans/decypher/internal/database/readingsessions"
	"github.com/mrlokans/decypher/internal/database/translations"
	"github.com/mrlokans/decypher/internal/database/users"
	"github.com/mrlokans/decypher/internal/http"
	"github.com/mrlokans/decypher/internal/lexical"
	"github.com/mrlokans/decypher/internal/services"
	"github.com/mrlokans/decypher/internal/speech"
	"github.com/mrlokans/decypher/internal/storage"
	"github.com/mrlokans/decypher/internal/storage/providers/local"
	"github.com/mrlokans/decypher/internal/tasks"
	"github.com/mrlokans/decypher/internal/translate"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.TranslationStore = (*translations.Repository)(nil)
var _ services.ReadingSessionReader = (*readingsessions.Repository)(nil)
var _ services.PracticeStore = (*practice.Repository)(nil)
var _ services.OwnerCounter = (*translations.Repository)(nil)
var _ services.OwnerCounter = (*readingsessions.Repository)(nil)
var _ services.PracticeStats = (*practice.Repository)(nil)
var _ speech.RefSource = (*translations.Repository)(nil)
var _ auth.UserRepository = (*users.Repository)(nil)
var _ http.ReadingSessionStore = (*readingsessions.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// Storage implementations
var _ storage.Client = (*local.Client)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ translate.Translator = (*translate.HTTPClient)(nil)
var _ speech.Synthesizer = (*speech.HTTPSynthesizer)(nil)
var _ lexical.Tagger = (*lexical.KagomeTagger)(nil)
var _ lexical.Tagger = (*lexical.HTTPTagger)(nil)
var _ lexical.Tagger = (*lexical.Router)(nil)
var _ http.ModelState = (*lexical.ModelHandle)(nil)

// =============================================================================
// Engines
// =============================================================================

var _ http.TranslationAssembler = (*services.TranslationAssembler)(nil)
var _ http.TranslationLedger = (*services.TranslationLedger)(nil)
var _ http.TranslationRenderer = (*services.TranslationRenderer)(nil)
var _ http.PracticeEngine = (*services.PracticeEngine)(nil)
var _ http.DashboardSource = (*services.Dashboard)(nil)
var _ services.TextAnalyzer = (*lexical.Analyzer)(nil)

// =============================================================================
// Audit and Background Work
// =============================================================================

var _ services.Auditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ http.AuditReader = (*auditrepo.Repository)(nil)
var _ tasks.SweepRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.AudioSweeper = (*speech.Sweeper)(nil)
var _ tasks.Enqueuer = (*tasks.Client)(nil)
var _ speech.AssetDeleter = (*tasks.AsyncAssetDeleter)(nil)
