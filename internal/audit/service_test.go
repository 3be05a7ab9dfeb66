package audit

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/decypher/internal/database/audit"
	"github.com/mrlokans/decypher/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	svc := NewService(auditRepo.NewRepository(db), logger)

	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		UserID:    1,
		EventType: entities.AuditEventDelete,
		Action:    "test_delete",
		Status:    entities.AuditStatusSuccess,
	}

	require.NoError(t, svc.Log(event))

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, "test_delete", saved.Action)
}

func TestService_LogAudioDelete(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful delete", func(t *testing.T) {
		svc.LogAudioDelete(1, 42, "/media/audio/a.mp3", nil)
		svc.Wait()

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ? AND status = ?", "audio_delete", entities.AuditStatusSuccess).First(&event).Error)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, uint(42), *event.EntityID)
		assert.Contains(t, event.Metadata, "/media/audio/a.mp3")
	})

	t.Run("failed delete keeps the error", func(t *testing.T) {
		svc.LogAudioDelete(1, 43, "/media/audio/b.mp3", errors.New("storage offline"))
		svc.Wait()

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ? AND status = ?", "audio_delete", entities.AuditStatusFailed).First(&event).Error)
		assert.Equal(t, "storage offline", event.ErrorMsg)
	})
}

func TestService_LogPracticeFinish(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogPracticeFinish(1, 7, 40, 90*time.Second)
	svc.LogTranslationDelete(1, 3)
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "practice_finish").First(&event).Error)
	assert.Equal(t, entities.AuditEventPractice, event.EventType)
	assert.Contains(t, event.Description, "40.0")
	assert.Contains(t, event.Metadata, `"duration_seconds":90`)

	events, total, err := svc.GetEvents(auditRepo.EventFilter{UserID: 1}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, events, 2)
}

func TestService_LogAudioSweep(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogAudioSweep(0, errors.New(strings.Repeat("x", 600)))
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "audio_sweep").First(&event).Error)
	assert.Equal(t, entities.AuditStatusFailed, event.Status)
	assert.Len(t, event.ErrorMsg, 500)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType: entities.AuditEventMaintenance,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}))
	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType: entities.AuditEventMaintenance,
		Action:    "new",
		Status:    entities.AuditStatusSuccess,
	}))

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
