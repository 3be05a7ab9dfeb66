package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/decypher/internal/entities"
	"github.com/mrlokans/decypher/internal/lexical"
)

// renderConcurrency bounds parallel analyzer calls when rendering a page.
const renderConcurrency = 4

// TextAnalyzer produces the part-of-speech analysis of a text.
type TextAnalyzer interface {
	Collect(ctx context.Context, text, language string) []lexical.WordTag
}

// TranslationView is a translation as shown to its owner, with an analysis
// computed at render time.
type TranslationView struct {
	ID               uint              `json:"id"`
	ReadingSessionID uint              `json:"reading_session_id"`
	SourceText       string            `json:"source_text"`
	TranslatedText   string            `json:"translated_text"`
	AudioAssetRef    string            `json:"audio_asset_ref"`
	SourceLanguage   entities.Language `json:"source_language"`
	TargetLanguage   entities.Language `json:"target_language"`
	CreatedAt        time.Time         `json:"created_at"`
	Analysis         []lexical.WordTag `json:"analysis"`
}

// TranslationRenderer attaches a fresh analysis to translations. Nothing is cached.
type TranslationRenderer struct {
	analyzer TextAnalyzer
}

func NewTranslationRenderer(analyzer TextAnalyzer) *TranslationRenderer {
	return &TranslationRenderer{analyzer: analyzer}
}

func (r *TranslationRenderer) Render(ctx context.Context, t *entities.Translation) TranslationView {
	return TranslationView{
		ID:               t.ID,
		ReadingSessionID: t.ReadingSessionID,
		SourceText:       t.SourceText,
		TranslatedText:   t.TranslatedText,
		AudioAssetRef:    t.AudioAssetRef,
		SourceLanguage:   t.SourceLanguage,
		TargetLanguage:   t.TargetLanguage,
		CreatedAt:        t.CreatedAt,
		Analysis:         r.analyzer.Collect(ctx, t.SourceText, t.SourceLanguage.ShortCode),
	}
}

// RenderAll renders translations concurrently, preserving their order.
func (r *TranslationRenderer) RenderAll(ctx context.Context, items []entities.Translation) []TranslationView {
	views := make([]TranslationView, len(items))
	var g errgroup.Group
	g.SetLimit(renderConcurrency)
	for i := range items {
		g.Go(func() error {
			views[i] = r.Render(ctx, &items[i])
			return nil
		})
	}
	_ = g.Wait()
	return views
}
