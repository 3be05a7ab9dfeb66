package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/decypher/internal/database"
	"github.com/mrlokans/decypher/internal/database/practice"
	"github.com/mrlokans/decypher/internal/database/readingsessions"
	"github.com/mrlokans/decypher/internal/database/translations"
	"github.com/mrlokans/decypher/internal/database/users"
	"github.com/mrlokans/decypher/internal/entities"
	"github.com/mrlokans/decypher/internal/lexical"
	"github.com/mrlokans/decypher/internal/retry"
)

type testEnv struct {
	db           *database.Database
	users        *users.Repository
	sessions     *readingsessions.Repository
	translations *translations.Repository
	practice     *practice.Repository
	log          *logrus.Logger
	hook         *test.Hook
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "services.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log, hook := test.NewNullLogger()
	return &testEnv{
		db:           db,
		users:        users.NewRepository(db.DB),
		sessions:     readingsessions.NewRepository(db.DB),
		translations: translations.NewRepository(db.DB),
		practice:     practice.NewRepository(db.DB),
		log:          log,
		hook:         hook,
	}
}

// newLearner creates a user learning Brazilian Portuguese (id 2) with English (id 1) as first language.
func (e *testEnv) newLearner(t *testing.T, name string) *entities.User {
	t.Helper()
	user, err := e.users.CreateUser(name, name+"@example.com", "hash-"+name, 1, 2)
	require.NoError(t, err)
	return user
}

func (e *testEnv) newReadingSession(t *testing.T, ownerID uint) *entities.ReadingSession {
	t.Helper()
	rs := &entities.ReadingSession{UserID: ownerID, BookTitle: "Dom Casmurro", Pages: 3, Duration: time.Minute}
	require.NoError(t, e.sessions.Create(rs))
	return rs
}

// seedTranslations stores n translations one second apart, oldest first.
func (e *testEnv) seedTranslations(t *testing.T, ownerID, readingSessionID uint, n int) []entities.Translation {
	t.Helper()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var result []entities.Translation
	for i := 0; i < n; i++ {
		tr := &entities.Translation{
			UserID:           ownerID,
			ReadingSessionID: readingSessionID,
			SourceText:       fmt.Sprintf("frase %d", i),
			TranslatedText:   fmt.Sprintf("sentence %d", i),
			AudioAssetRef:    fmt.Sprintf("/media/audio/%d.mp3", i),
			SourceLanguageID: 2,
			TargetLanguageID: 1,
			CreatedAt:        base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, e.translations.Create(tr))
		result = append(result, *tr)
	}
	return result
}

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}
}

type fakeTranslator struct {
	mu    sync.Mutex
	calls []string
	delay time.Duration
	err   error
}

func (f *fakeTranslator) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, sourceLanguage+"->"+targetLanguage)
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return "", f.err
	}
	return "EN(" + text + ")", nil
}

type fakeSynthesizer struct {
	mu        sync.Mutex
	languages []string
	deleted   []string
	err       error
	deleteErr error
	nextRef   int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.languages = append(f.languages, languageCode)
	if f.err != nil {
		return "", f.err
	}
	f.nextRef++
	return fmt.Sprintf("/media/audio/fake-%d.mp3", f.nextRef), nil
}

func (f *fakeSynthesizer) DeleteAsset(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ref)
	return f.deleteErr
}

func (f *fakeSynthesizer) deletedRefs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type auditRecord struct {
	action string
	id     uint
	err    error
}

type fakeAuditor struct {
	mu      sync.Mutex
	records []auditRecord
}

func (f *fakeAuditor) add(r auditRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, r)
}

func (f *fakeAuditor) LogTranslationDelete(userID, translationID uint) {
	f.add(auditRecord{action: "translation_delete", id: translationID})
}

func (f *fakeAuditor) LogAudioDelete(userID, translationID uint, assetRef string, err error) {
	f.add(auditRecord{action: "audio_delete", id: translationID, err: err})
}

func (f *fakeAuditor) LogPracticeFinish(userID, sessionID uint, score float64, duration time.Duration) {
	f.add(auditRecord{action: "practice_finish", id: sessionID})
}

type countingAnalyzer struct {
	mu    sync.Mutex
	calls int
}

func (c *countingAnalyzer) Collect(ctx context.Context, text, language string) []lexical.WordTag {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return []lexical.WordTag{{Word: text, Tag: language}}
}

type failingCreateStore struct {
	*translations.Repository
}

func (failingCreateStore) Create(*entities.Translation) error {
	return errors.New("disk full")
}
