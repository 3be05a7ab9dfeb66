package audit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/database/audit"
	"github.com/mrlokans/decypher/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	log  logrus.FieldLogger
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: log}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			s.log.WithError(err).WithField("action", event.Action).Error("failed to log audit event")
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogTranslationDelete records the removal of a translation row.
func (s *Service) LogTranslationDelete(userID, translationID uint) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventDelete,
		Action:      "translation_delete",
		Description: fmt.Sprintf("Deleted translation %d", translationID),
		EntityType:  "translation",
		EntityID:    &translationID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogAudioDelete records the outcome of deleting a translation's audio asset.
func (s *Service) LogAudioDelete(userID, translationID uint, assetRef string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventDelete,
		Action:      "audio_delete",
		Description: "Deleted audio asset " + truncate(assetRef, 400),
		EntityType:  "translation",
		EntityID:    &translationID,
		Metadata:    marshalMetadata(map[string]any{"asset_ref": assetRef}),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogPracticeFinish records a finished practice session and its score.
func (s *Service) LogPracticeFinish(userID, sessionID uint, score float64, duration time.Duration) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventPractice,
		Action:      "practice_finish",
		Description: fmt.Sprintf("Finished practice session with score %.1f", score),
		EntityType:  "practice_session",
		EntityID:    &sessionID,
		Metadata: marshalMetadata(map[string]any{
			"score":            score,
			"duration_seconds": duration.Seconds(),
		}),
		Status: entities.AuditStatusSuccess,
	})
}

// LogAudioSweep records a run of the orphaned audio sweep.
func (s *Service) LogAudioSweep(removed int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      "audio_sweep",
		Description: fmt.Sprintf("Removed %d orphaned audio assets", removed),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(filter audit.EventFilter, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(filter, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func marshalMetadata(metadata map[string]any) string {
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
