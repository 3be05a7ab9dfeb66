package practice

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/decypher/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_practice_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.Language{},
		&entities.Translation{},
		&entities.PracticeSession{},
		&entities.Question{},
	))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db), db, cleanup
}

func seedTranslations(t *testing.T, db *gorm.DB, ownerID uint, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		tr := &entities.Translation{
			UserID:         ownerID,
			SourceText:     "texto",
			TranslatedText: "text",
			CreatedAt:      time.Now().UTC(),
		}
		require.NoError(t, db.Omit("SourceLanguage", "TargetLanguage").Create(tr).Error)
		ids = append(ids, tr.ID)
	}
	return ids
}

func newSession(ownerID uint, translationIDs []uint) *entities.PracticeSession {
	session := &entities.PracticeSession{UserID: ownerID}
	for _, id := range translationIDs {
		session.Questions = append(session.Questions, entities.Question{TranslationID: id})
	}
	return session
}

func TestRepository_CreateSession(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	session := newSession(1, []uint{10, 11, 12})
	require.NoError(t, repo.CreateSession(session))
	assert.NotZero(t, session.ID)
	for _, q := range session.Questions {
		assert.NotZero(t, q.ID)
		assert.Equal(t, session.ID, q.PracticeSessionID)
	}
}

func TestRepository_CreateSession_RollsBackOnQuestionFailure(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	// The same translation twice violates the (session, translation) unique index.
	session := newSession(1, []uint{10, 10})
	err := repo.CreateSession(session)
	require.Error(t, err)

	var sessions, questions int64
	require.NoError(t, db.Model(&entities.PracticeSession{}).Count(&sessions).Error)
	require.NoError(t, db.Model(&entities.Question{}).Count(&questions).Error)
	assert.Zero(t, sessions)
	assert.Zero(t, questions)
}

func TestRepository_GetSessionForOwner(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ids := seedTranslations(t, db, 1, 2)
	session := newSession(1, ids)
	require.NoError(t, repo.CreateSession(session))

	got, err := repo.GetSessionForOwner(1, session.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "text", got.Questions[0].Translation.TranslatedText)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.Duration)

	_, err = repo.GetSessionForOwner(2, session.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_SaveAnswer(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ids := seedTranslations(t, db, 1, 1)
	session := newSession(1, ids)
	require.NoError(t, repo.CreateSession(session))
	questionID := session.Questions[0].ID

	t.Run("question lookup is owner scoped", func(t *testing.T) {
		q, err := repo.GetQuestionForOwner(1, questionID)
		require.NoError(t, err)
		assert.Equal(t, "text", q.Translation.TranslatedText)

		_, err = repo.GetQuestionForOwner(2, questionID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, repo.SaveAnswer(questionID, "first", false))
		require.NoError(t, repo.SaveAnswer(questionID, "text", true))

		q, err := repo.GetQuestionForOwner(1, questionID)
		require.NoError(t, err)
		require.NotNil(t, q.AnswerProvided)
		require.NotNil(t, q.Correct)
		assert.Equal(t, "text", *q.AnswerProvided)
		assert.True(t, *q.Correct)
	})

	t.Run("finished sessions reject answers", func(t *testing.T) {
		_, err := repo.FinishSession(1, session.ID, time.Minute)
		require.NoError(t, err)

		err = repo.SaveAnswer(questionID, "late", false)
		assert.ErrorIs(t, err, entities.ErrConflict)
	})
}

func TestRepository_FinishSession(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ids := seedTranslations(t, db, 1, 5)
	session := newSession(1, ids)
	require.NoError(t, repo.CreateSession(session))

	require.NoError(t, repo.SaveAnswer(session.Questions[0].ID, "text", true))
	require.NoError(t, repo.SaveAnswer(session.Questions[1].ID, "text", true))
	require.NoError(t, repo.SaveAnswer(session.Questions[2].ID, "nope", false))

	finished, err := repo.FinishSession(1, session.ID, 90*time.Second)
	require.NoError(t, err)
	require.NotNil(t, finished.Score)
	require.NotNil(t, finished.Duration)
	assert.Equal(t, 40.0, *finished.Score)
	assert.Equal(t, 90*time.Second, *finished.Duration)

	t.Run("second finish conflicts", func(t *testing.T) {
		_, err := repo.FinishSession(1, session.ID, time.Second)
		assert.ErrorIs(t, err, entities.ErrConflict)

		again, err := repo.GetSessionForOwner(1, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, *again.Duration)
	})

	t.Run("other owner gets not found", func(t *testing.T) {
		_, err := repo.FinishSession(2, session.ID, time.Second)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestRepository_Stats(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	avg, err := repo.AverageScoreForOwner(1)
	require.NoError(t, err)
	assert.Nil(t, avg)

	ids := seedTranslations(t, db, 1, 2)
	first := newSession(1, ids)
	require.NoError(t, repo.CreateSession(first))
	require.NoError(t, repo.SaveAnswer(first.Questions[0].ID, "text", true))
	require.NoError(t, repo.SaveAnswer(first.Questions[1].ID, "text", true))
	_, err = repo.FinishSession(1, first.ID, time.Minute)
	require.NoError(t, err)

	second := newSession(1, ids)
	require.NoError(t, repo.CreateSession(second))
	_, err = repo.FinishSession(1, second.ID, time.Minute)
	require.NoError(t, err)

	require.NoError(t, repo.CreateSession(newSession(1, ids)))

	count, err := repo.CountSessionsForOwner(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	avg, err = repo.AverageScoreForOwner(1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 50.0, *avg)

	sessions, err := repo.ListSessionsForOwner(1)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}
