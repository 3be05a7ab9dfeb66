package lexical

import (
	"context"
	"errors"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/retry"
)

// Analyzer wraps a Tagger with the retry policy and the degraded read mode:
// a text that cannot be tagged yields an empty analysis.
type Analyzer struct {
	tagger Tagger
	policy retry.Policy
	log    logrus.FieldLogger
}

func NewAnalyzer(tagger Tagger, policy retry.Policy, log logrus.FieldLogger) *Analyzer {
	return &Analyzer{tagger: tagger, policy: policy, log: log}
}

// Analyze returns a lazy sequence of tagged words. The tagger is called each
// time the sequence is ranged over.
func (a *Analyzer) Analyze(ctx context.Context, text, language string) iter.Seq[WordTag] {
	return func(yield func(WordTag) bool) {
		for _, wt := range a.tag(ctx, text, language) {
			if !yield(wt) {
				return
			}
		}
	}
}

// Collect runs the analysis once and returns it as a slice, never nil.
func (a *Analyzer) Collect(ctx context.Context, text, language string) []WordTag {
	result := []WordTag{}
	for wt := range a.Analyze(ctx, text, language) {
		result = append(result, wt)
	}
	return result
}

func (a *Analyzer) tag(ctx context.Context, text, language string) []WordTag {
	if text == "" {
		return nil
	}
	tags, err := retry.Do(ctx, a.policy, a.log, "tag_parts_of_speech", func(ctx context.Context) ([]WordTag, error) {
		tags, err := a.tagger.TagPartsOfSpeech(ctx, text, language)
		if errors.Is(err, ErrUnsupportedLanguage) {
			return nil, retry.Permanent(err)
		}
		return tags, err
	})
	if err != nil {
		a.log.WithError(err).WithField("language", language).Warn("part-of-speech analysis unavailable, returning empty analysis")
		return nil
	}
	return tags
}
