package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/decypher/internal/entities"
)

func TestLedger_ListPaginatesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newLearner(t, "ana")
	rs := env.newReadingSession(t, owner.ID)
	other := env.newReadingSession(t, owner.ID)
	env.seedTranslations(t, owner.ID, rs.ID, 12)
	env.seedTranslations(t, owner.ID, other.ID, 3)

	ledger := NewTranslationLedger(env.translations, &fakeSynthesizer{}, &fakeAuditor{}, 5, env.log)
	ctx := context.Background()

	var sizes []int
	seen := map[uint]bool{}
	var previous *entities.Translation
	token := ""
	for {
		page, err := ledger.List(ctx, owner.ID, rs.ID, token)
		require.NoError(t, err)
		sizes = append(sizes, len(page.Items))
		for i := range page.Items {
			item := page.Items[i]
			assert.False(t, seen[item.ID], "translation %d repeated", item.ID)
			seen[item.ID] = true
			assert.Equal(t, rs.ID, item.ReadingSessionID)
			if previous != nil {
				assert.True(t, item.CreatedAt.Before(previous.CreatedAt))
			}
			previous = &item
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	assert.Equal(t, []int{5, 5, 2}, sizes)
	assert.Len(t, seen, 12)
}

func TestLedger_ListEmptyAndInvalidToken(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newLearner(t, "ana")
	rs := env.newReadingSession(t, owner.ID)
	ledger := NewTranslationLedger(env.translations, &fakeSynthesizer{}, &fakeAuditor{}, 5, env.log)

	page, err := ledger.List(context.Background(), owner.ID, rs.ID, "")
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextPageToken)

	_, err = ledger.List(context.Background(), owner.ID, rs.ID, "not-a-token!")
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestLedger_DeleteCallsAssetDeleteOnce(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newLearner(t, "ana")
	rs := env.newReadingSession(t, owner.ID)
	seeded := env.seedTranslations(t, owner.ID, rs.ID, 2)
	synth := &fakeSynthesizer{}
	auditor := &fakeAuditor{}
	ledger := NewTranslationLedger(env.translations, synth, auditor, 5, env.log)

	require.NoError(t, ledger.Delete(context.Background(), owner.ID, seeded[0].ID))

	assert.Equal(t, []string{seeded[0].AudioAssetRef}, synth.deletedRefs())
	_, err := env.translations.GetForOwner(owner.ID, seeded[0].ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	require.Len(t, auditor.records, 2)
	assert.Equal(t, "translation_delete", auditor.records[0].action)
	assert.Equal(t, "audio_delete", auditor.records[1].action)
}

func TestLedger_ConcurrentDeletesReachAssetStoreOnce(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newLearner(t, "ana")
	rs := env.newReadingSession(t, owner.ID)
	seeded := env.seedTranslations(t, owner.ID, rs.ID, 1)
	synth := &fakeSynthesizer{}
	ledger := NewTranslationLedger(env.translations, synth, &fakeAuditor{}, 5, env.log)

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = ledger.Delete(context.Background(), owner.ID, seeded[0].ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, entities.ErrNotFound)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, []string{seeded[0].AudioAssetRef}, synth.deletedRefs())
}

func TestLedger_DeleteSurvivesAssetFailure(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newLearner(t, "ana")
	rs := env.newReadingSession(t, owner.ID)
	seeded := env.seedTranslations(t, owner.ID, rs.ID, 1)
	synth := &fakeSynthesizer{deleteErr: errors.New("bucket unavailable")}
	auditor := &fakeAuditor{}
	ledger := NewTranslationLedger(env.translations, synth, auditor, 5, env.log)

	require.NoError(t, ledger.Delete(context.Background(), owner.ID, seeded[0].ID))

	assert.Len(t, synth.deletedRefs(), 1)
	_, err := env.translations.GetForOwner(owner.ID, seeded[0].ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	require.Len(t, auditor.records, 2)
	assert.Error(t, auditor.records[1].err)
	assert.Contains(t, env.hook.LastEntry().Message, "translation deleted")
}

func TestLedger_DeleteForeignTranslation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newLearner(t, "ana")
	intruder := env.newLearner(t, "bruno")
	rs := env.newReadingSession(t, owner.ID)
	seeded := env.seedTranslations(t, owner.ID, rs.ID, 1)
	synth := &fakeSynthesizer{}
	ledger := NewTranslationLedger(env.translations, synth, &fakeAuditor{}, 5, env.log)

	err := ledger.Delete(context.Background(), intruder.ID, seeded[0].ID)

	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Empty(t, synth.deletedRefs())
	_, err = env.translations.GetForOwner(owner.ID, seeded[0].ID)
	assert.NoError(t, err)
}

func TestPageToken_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newLearner(t, "ana")
	rs := env.newReadingSession(t, owner.ID)
	seeded := env.seedTranslations(t, owner.ID, rs.ID, 1)

	cursor, err := decodePageToken(encodePageToken(cursorOf(seeded[0])))
	require.NoError(t, err)
	assert.Equal(t, seeded[0].ID, cursor.ID)
	assert.True(t, seeded[0].CreatedAt.Equal(cursor.CreatedAt))
}

func TestRenderer_AnalysesOnEveryRender(t *testing.T) {
	analyzer := &countingAnalyzer{}
	renderer := NewTranslationRenderer(analyzer)
	items := []entities.Translation{
		{ID: 1, SourceText: "um", SourceLanguage: entities.Language{ShortCode: "pt"}},
		{ID: 2, SourceText: "dois", SourceLanguage: entities.Language{ShortCode: "pt"}},
		{ID: 3, SourceText: "três", SourceLanguage: entities.Language{ShortCode: "pt"}},
	}

	views := renderer.RenderAll(context.Background(), items)
	require.Len(t, views, 3)
	for i, v := range views {
		assert.Equal(t, items[i].ID, v.ID)
		assert.Equal(t, items[i].SourceText, v.Analysis[0].Word)
		assert.Equal(t, "pt", v.Analysis[0].Tag)
	}

	renderer.Render(context.Background(), &items[0])
	assert.Equal(t, 4, analyzer.calls)
}
