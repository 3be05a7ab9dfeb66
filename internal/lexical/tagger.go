// Package lexical tags words of a text with their part of speech.
//
// Analysis is never stored; callers run it again every time a translation is
// rendered so tag vocabulary changes need no migration.
package lexical

import (
	"context"
	"errors"
)

// ErrUnsupportedLanguage is returned when no tagger serves a language.
var ErrUnsupportedLanguage = errors.New("no part-of-speech tagger for language")

// WordTag is one tagged word of an analysed text.
type WordTag struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// Tagger splits text into words and tags each one. language is a short code
// such as "ja" or "pt".
type Tagger interface {
	TagPartsOfSpeech(ctx context.Context, text, language string) ([]WordTag, error)
}
