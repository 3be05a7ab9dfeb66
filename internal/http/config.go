package http

import (
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core engines
	Assembler TranslationAssembler
	Ledger    TranslationLedger
	Renderer  TranslationRenderer
	Practice  PracticeEngine

	// Supporting stores
	ReadingSessions ReadingSessionStore
	Dashboard       DashboardSource
	AuditEvents     AuditReader

	// Authentication
	AuthMiddleware *auth.Middleware

	// Health checks
	Database    Pinger
	TaggerModel ModelState

	// Directory served under /media (synthesized audio). Empty disables it.
	MediaDir string

	// Application info
	Version string

	Log logrus.FieldLogger
}
