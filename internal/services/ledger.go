package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/database/translations"
	"github.com/mrlokans/decypher/internal/entities"
	"github.com/mrlokans/decypher/internal/speech"
)

// TranslationPage is one page of a reading session's translations, newest first.
type TranslationPage struct {
	Items         []entities.Translation
	NextPageToken string // Empty on the last page
}

// TranslationLedger lists, retrieves and deletes an owner's translations.
type TranslationLedger struct {
	store    TranslationStore
	assets   speech.AssetDeleter
	auditor  Auditor
	pageSize int
	log      logrus.FieldLogger
}

func NewTranslationLedger(store TranslationStore, assets speech.AssetDeleter, auditor Auditor, pageSize int, log logrus.FieldLogger) *TranslationLedger {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &TranslationLedger{
		store:    store,
		assets:   assets,
		auditor:  auditor,
		pageSize: pageSize,
		log:      log,
	}
}

// List returns the page after pageToken. An empty token starts at the newest translation.
func (l *TranslationLedger) List(ctx context.Context, ownerID, readingSessionID uint, pageToken string) (*TranslationPage, error) {
	after, err := decodePageToken(pageToken)
	if err != nil {
		return nil, err
	}

	items, err := l.store.ListPage(ownerID, readingSessionID, after, l.pageSize+1)
	if err != nil {
		return nil, err
	}

	page := &TranslationPage{Items: items}
	if len(items) > l.pageSize {
		page.Items = items[:l.pageSize]
		last := page.Items[len(page.Items)-1]
		page.NextPageToken = encodePageToken(cursorOf(last))
	}
	if page.Items == nil {
		page.Items = []entities.Translation{}
	}
	return page, nil
}

func (l *TranslationLedger) Get(ctx context.Context, ownerID, id uint) (*entities.Translation, error) {
	return l.store.GetForOwner(ownerID, id)
}

// Delete removes the row and then issues exactly one audio asset deletion for
// it. Concurrent deletes of the same id reach the asset store only once. A
// failed asset deletion is logged and audited; the row stays deleted.
func (l *TranslationLedger) Delete(ctx context.Context, ownerID, id uint) error {
	translation, err := l.store.DeleteForOwner(ownerID, id)
	if err != nil {
		return err
	}
	l.auditor.LogTranslationDelete(ownerID, id)

	log := l.log.WithFields(logrus.Fields{
		"owner_id":       ownerID,
		"translation_id": id,
		"asset_ref":      translation.AudioAssetRef,
	})

	assetErr := l.assets.DeleteAsset(ctx, translation.AudioAssetRef)
	if assetErr != nil {
		log.WithError(assetErr).Warn("failed to delete audio asset of removed translation")
	}
	l.auditor.LogAudioDelete(ownerID, id, translation.AudioAssetRef, assetErr)

	log.Info("translation deleted")
	return nil
}

type pageToken struct {
	CreatedAt time.Time `json:"t"`
	ID        uint      `json:"id"`
}

func encodePageToken(c translations.Cursor) string {
	data, _ := json.Marshal(pageToken{CreatedAt: c.CreatedAt.UTC(), ID: c.ID})
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodePageToken(token string) (*translations.Cursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, entities.NewValidationError("page_token", "malformed page token")
	}
	var pt pageToken
	if err := json.Unmarshal(data, &pt); err != nil || pt.ID == 0 || pt.CreatedAt.IsZero() {
		return nil, entities.NewValidationError("page_token", "malformed page token")
	}
	return &translations.Cursor{CreatedAt: pt.CreatedAt, ID: pt.ID}, nil
}

func cursorOf(t entities.Translation) translations.Cursor {
	return translations.Cursor{CreatedAt: t.CreatedAt, ID: t.ID}
}
