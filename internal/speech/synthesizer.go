// Package speech synthesizes pronunciation audio and manages the stored assets.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/decypher/internal/collaborator"
	"github.com/mrlokans/decypher/internal/storage"
)

// AudioPrefix is the storage directory holding synthesized audio.
const AudioPrefix = "audio"

// Synthesizer produces an audio asset for text and can remove it again.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) (string, error)
	AssetDeleter
}

// AssetDeleter removes a previously synthesized asset by its ref.
type AssetDeleter interface {
	DeleteAsset(ctx context.Context, ref string) error
}

// HTTPSynthesizer calls a JSON text-to-speech endpoint and stores the returned
// audio bytes in a storage.Client.
type HTTPSynthesizer struct {
	client        *collaborator.Client
	store         storage.Client
	publicBaseURL string
	newKey        func() string
}

// NewHTTPSynthesizer creates a synthesizer. Asset refs are publicBaseURL
// joined with the storage key.
func NewHTTPSynthesizer(baseURL string, timeout time.Duration, ratePerSecond float64, store storage.Client, publicBaseURL string) *HTTPSynthesizer {
	return &HTTPSynthesizer{
		client:        collaborator.NewClient(baseURL, timeout, ratePerSecond),
		store:         store,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		newKey: func() string {
			return fmt.Sprintf("%s/%s.mp3", AudioPrefix, uuid.NewString())
		},
	}
}

type synthesizeRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	audio, err := s.client.Post(ctx, "/synthesize", synthesizeRequest{Text: text, LanguageCode: languageCode})
	if err != nil {
		return "", fmt.Errorf("synthesize %s: %w", languageCode, err)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("synthesize %s: empty audio", languageCode)
	}

	key := s.newKey()
	if err := s.store.Upload(ctx, key, bytes.NewReader(audio)); err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}
	return s.RefForKey(key), nil
}

// DeleteAsset removes the stored object behind ref. A missing object is not an error.
func (s *HTTPSynthesizer) DeleteAsset(ctx context.Context, ref string) error {
	key, err := s.KeyForRef(ref)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotExist) {
		return fmt.Errorf("delete audio %s: %w", key, err)
	}
	return nil
}

// RefForKey builds the public asset ref for a storage key.
func (s *HTTPSynthesizer) RefForKey(key string) string {
	return s.publicBaseURL + "/" + storage.CleanKey(key)
}

// KeyForRef extracts the storage key from an asset ref.
func (s *HTTPSynthesizer) KeyForRef(ref string) (string, error) {
	key, ok := strings.CutPrefix(ref, s.publicBaseURL+"/")
	if !ok || key == "" {
		return "", fmt.Errorf("asset ref %q is not managed by this store", ref)
	}
	return storage.CleanKey(key), nil
}
