package translations

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
	dbPath := "./test_translations_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Language{}, &entities.Translation{}, &entities.Question{}))

	require.NoError(t, db.Create(&entities.Language{Name: "English", Code: "en-US", ShortCode: "en"}).Error)
	require.NoError(t, db.Create(&entities.Language{Name: "Brazilian Portuguese", Code: "pt-BR", ShortCode: "pt"}).Error)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db), db, cleanup
}

func newTranslation(ownerID, sessionID uint, text string, createdAt time.Time) *entities.Translation {
	return &entities.Translation{
		UserID:           ownerID,
		ReadingSessionID: sessionID,
		SourceText:       text,
		TranslatedText:   "translated " + text,
		AudioAssetRef:    "/media/audio/" + text + ".mp3",
		SourceLanguageID: 2,
		TargetLanguageID: 1,
		CreatedAt:        createdAt,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	translation := newTranslation(1, 7, "  olá,\tmundo  ", time.Time{})
	require.NoError(t, repo.Create(translation))
	assert.NotZero(t, translation.ID)
	assert.False(t, translation.CreatedAt.IsZero())

	got, err := repo.GetForOwner(1, translation.ID)
	require.NoError(t, err)
	assert.Equal(t, "  olá,\tmundo  ", got.SourceText)
	assert.Equal(t, "pt", got.SourceLanguage.ShortCode)
	assert.Equal(t, "en", got.TargetLanguage.ShortCode)

	_, err = repo.GetForOwner(2, translation.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_ListPage(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(newTranslation(1, 7, string(rune('a'+i)), base.Add(time.Duration(i)*time.Second))))
	}
	// Noise from another session and another owner
	require.NoError(t, repo.Create(newTranslation(1, 8, "other-session", base)))
	require.NoError(t, repo.Create(newTranslation(2, 7, "other-owner", base)))

	var seen []string
	var cursor *Cursor
	var sizes []int
	for {
		page, err := repo.ListPage(1, 7, cursor, 5)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		sizes = append(sizes, len(page))
		for i := 1; i < len(page); i++ {
			assert.True(t, page[i-1].CreatedAt.After(page[i].CreatedAt), "page must be newest first")
		}
		for _, tr := range page {
			seen = append(seen, tr.SourceText)
		}
		last := page[len(page)-1]
		cursor = &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	assert.Equal(t, []int{5, 5, 2}, sizes)
	assert.Equal(t, []string{"l", "k", "j", "i", "h", "g", "f", "e", "d", "c", "b", "a"}, seen)
}

func TestRepository_ListPage_TiesOnCreatedAt(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	same := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(newTranslation(1, 7, string(rune('a'+i)), same)))
	}

	first, err := repo.ListPage(1, 7, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	last := first[len(first)-1]
	second, err := repo.ListPage(1, 7, &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)

	ids := map[uint]bool{}
	for _, tr := range append(first, second...) {
		assert.False(t, ids[tr.ID], "translation %d repeated", tr.ID)
		ids[tr.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestRepository_DeleteForOwner(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	translation := newTranslation(1, 7, "apagar", time.Time{})
	require.NoError(t, repo.Create(translation))
	require.NoError(t, db.Create(&entities.Question{PracticeSessionID: 3, TranslationID: translation.ID}).Error)

	t.Run("other owner cannot delete", func(t *testing.T) {
		_, err := repo.DeleteForOwner(2, translation.ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("owner deletes row and its questions", func(t *testing.T) {
		deleted, err := repo.DeleteForOwner(1, translation.ID)
		require.NoError(t, err)
		assert.Equal(t, translation.ID, deleted.ID)
		assert.Equal(t, translation.AudioAssetRef, deleted.AudioAssetRef)

		_, err = repo.GetForOwner(1, translation.ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)

		var questions int64
		require.NoError(t, db.Model(&entities.Question{}).Count(&questions).Error)
		assert.Zero(t, questions)
	})

	t.Run("second delete is not found", func(t *testing.T) {
		_, err := repo.DeleteForOwner(1, translation.ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestRepository_OwnerQueries(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	for _, text := range []string{"um", "dois", "três"} {
		require.NoError(t, repo.Create(newTranslation(1, 7, text, time.Time{})))
	}
	require.NoError(t, repo.Create(newTranslation(2, 9, "quatro", time.Time{})))

	count, err := repo.CountForOwner(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	ids, err := repo.IDsForOwner(1)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	refs, err := repo.AudioAssetRefs()
	require.NoError(t, err)
	assert.Len(t, refs, 4)
	assert.Contains(t, refs, "/media/audio/quatro.mp3")
}
