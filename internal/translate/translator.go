// Package translate talks to the machine translation service.
package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/mrlokans/decypher/internal/collaborator"
)

// Translator converts text between two languages identified by short code.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// HTTPClient implements Translator against a JSON translation endpoint.
type HTTPClient struct {
	client *collaborator.Client
}

// NewHTTPClient creates a rate limited translation client.
func NewHTTPClient(baseURL string, timeout time.Duration, ratePerSecond float64) *HTTPClient {
	return &HTTPClient{client: collaborator.NewClient(baseURL, timeout, ratePerSecond)}
}

type translateRequest struct {
	Text               string `json:"text"`
	SourceLanguageCode string `json:"source_language_code"`
	TargetLanguageCode string `json:"target_language_code"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

func (c *HTTPClient) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	var resp translateResponse
	err := c.client.PostJSON(ctx, "/translate", translateRequest{
		Text:               text,
		SourceLanguageCode: sourceLanguage,
		TargetLanguageCode: targetLanguage,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("translate %s->%s: %w", sourceLanguage, targetLanguage, err)
	}
	if resp.TranslatedText == "" {
		return "", fmt.Errorf("translate %s->%s: empty translation", sourceLanguage, targetLanguage)
	}
	return resp.TranslatedText, nil
}
