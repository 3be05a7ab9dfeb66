package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/decypher/internal/entities"
	"github.com/mrlokans/decypher/internal/retry"
	"github.com/mrlokans/decypher/internal/speech"
	"github.com/mrlokans/decypher/internal/translate"
)

const (
	serviceTranslation = "translation"
	serviceSpeech      = "speech"

	assetCleanupTimeout = 10 * time.Second
)

// TranslationAssembler turns a learner's snippet into a persisted translation
// by calling the translation and speech collaborators concurrently.
type TranslationAssembler struct {
	store           TranslationStore
	sessions        ReadingSessionReader
	translator      translate.Translator
	synthesizer     speech.Synthesizer
	translatePolicy retry.Policy
	speechPolicy    retry.Policy
	maxSource       int
	log             logrus.FieldLogger
}

func NewTranslationAssembler(
	store TranslationStore,
	sessions ReadingSessionReader,
	translator translate.Translator,
	synthesizer speech.Synthesizer,
	translatePolicy, speechPolicy retry.Policy,
	maxSource int,
	log logrus.FieldLogger,
) *TranslationAssembler {
	if maxSource <= 0 {
		maxSource = 1000
	}
	return &TranslationAssembler{
		store:           store,
		sessions:        sessions,
		translator:      translator,
		synthesizer:     synthesizer,
		translatePolicy: translatePolicy,
		speechPolicy:    speechPolicy,
		maxSource:       maxSource,
		log:             log,
	}
}

// Assemble translates and synthesizes sourceText for owner and files the
// result under the reading session. Either both collaborators succeed and the
// record is persisted, or nothing is persisted.
func (a *TranslationAssembler) Assemble(ctx context.Context, owner *entities.User, readingSessionID uint, sourceText string) (*entities.Translation, error) {
	if strings.TrimSpace(sourceText) == "" {
		return nil, entities.NewValidationError("source_text", "must not be empty")
	}
	if utf8.RuneCountInString(sourceText) > a.maxSource {
		return nil, entities.NewValidationError("source_text", fmt.Sprintf("must be at most %d characters", a.maxSource))
	}
	if readingSessionID == 0 {
		return nil, entities.NewValidationError("reading_session_id", "is required")
	}
	if !owner.HasLanguages() {
		return nil, entities.NewValidationError("owner", "first language and language being learned must be set")
	}
	if _, err := a.sessions.GetForOwner(owner.ID, readingSessionID); err != nil {
		return nil, err
	}

	learning := *owner.LanguageBeingLearned
	first := *owner.FirstLanguage
	log := a.log.WithFields(logrus.Fields{
		"owner_id":           owner.ID,
		"reading_session_id": readingSessionID,
	})

	var translatedText, assetRef string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := retry.Do(gctx, a.translatePolicy, log, serviceTranslation, func(ctx context.Context) (string, error) {
			return a.translator.Translate(ctx, sourceText, learning.ShortCode, first.ShortCode)
		})
		if err != nil {
			return &entities.ExternalServiceError{Service: serviceTranslation, Err: err}
		}
		translatedText = text
		return nil
	})
	g.Go(func() error {
		ref, err := retry.Do(gctx, a.speechPolicy, log, serviceSpeech, func(ctx context.Context) (string, error) {
			return a.synthesizer.Synthesize(ctx, sourceText, learning.Code)
		})
		if err != nil {
			return &entities.ExternalServiceError{Service: serviceSpeech, Err: err}
		}
		assetRef = ref
		return nil
	})

	if err := g.Wait(); err != nil {
		if assetRef != "" {
			a.discardAsset(ctx, log, assetRef)
		}
		log.WithError(err).Warn("translation assembly failed")
		return nil, err
	}

	record := &entities.Translation{
		UserID:           owner.ID,
		ReadingSessionID: readingSessionID,
		SourceText:       sourceText,
		TranslatedText:   translatedText,
		AudioAssetRef:    assetRef,
		SourceLanguageID: learning.ID,
		TargetLanguageID: first.ID,
	}
	if err := a.store.Create(record); err != nil {
		a.discardAsset(ctx, log, assetRef)
		return nil, err
	}
	record.SourceLanguage = learning
	record.TargetLanguage = first

	log.WithField("translation_id", record.ID).Info("translation stored")
	return record, nil
}

// discardAsset removes audio that will never be referenced. It runs even when
// the request context is already cancelled.
func (a *TranslationAssembler) discardAsset(ctx context.Context, log logrus.FieldLogger, ref string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), assetCleanupTimeout)
	defer cancel()
	if err := a.synthesizer.DeleteAsset(cleanupCtx, ref); err != nil {
		log.WithError(err).WithField("asset_ref", ref).Warn("failed to discard unused audio asset")
	}
}
