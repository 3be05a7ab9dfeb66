package lexical

import (
	"context"
	"fmt"
)

// Router dispatches to a tagger by language short code.
type Router struct {
	taggers  map[string]Tagger
	fallback Tagger
}

// NewRouter creates a router. fallback may be nil.
func NewRouter(fallback Tagger) *Router {
	return &Router{taggers: make(map[string]Tagger), fallback: fallback}
}

// Handle registers a tagger for a language short code.
func (r *Router) Handle(language string, tagger Tagger) *Router {
	r.taggers[language] = tagger
	return r
}

func (r *Router) TagPartsOfSpeech(ctx context.Context, text, language string) ([]WordTag, error) {
	if tagger, ok := r.taggers[language]; ok {
		return tagger.TagPartsOfSpeech(ctx, text, language)
	}
	if r.fallback != nil {
		return r.fallback.TagPartsOfSpeech(ctx, text, language)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
}
