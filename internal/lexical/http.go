package lexical

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/decypher/internal/collaborator"
)

// HTTPTagger asks a remote syntax service to tag text.
type HTTPTagger struct {
	client *collaborator.Client
}

func NewHTTPTagger(baseURL string, timeout time.Duration) *HTTPTagger {
	return &HTTPTagger{client: collaborator.NewClient(baseURL, timeout, 0)}
}

type syntaxRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

type syntaxResponse struct {
	Tokens []struct {
		Text         string `json:"text"`
		PartOfSpeech string `json:"part_of_speech"`
	} `json:"tokens"`
}

func (h *HTTPTagger) TagPartsOfSpeech(ctx context.Context, text, language string) ([]WordTag, error) {
	var resp syntaxResponse
	if err := h.client.PostJSON(ctx, "/syntax", syntaxRequest{Text: text, LanguageCode: language}, &resp); err != nil {
		return nil, fmt.Errorf("tag %s: %w", language, err)
	}

	result := make([]WordTag, 0, len(resp.Tokens))
	for _, t := range resp.Tokens {
		result = append(result, WordTag{Word: t.Text, Tag: strings.ToLower(t.PartOfSpeech)})
	}
	return result, nil
}
