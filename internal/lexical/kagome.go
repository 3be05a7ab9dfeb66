package lexical

import (
	"context"
	"strings"

	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ipaTags maps the top-level IPA dictionary part of speech to a short tag.
var ipaTags = map[string]string{
	"名詞":   "noun",
	"動詞":   "verb",
	"形容詞":  "adj",
	"副詞":   "adv",
	"助詞":   "adp",
	"助動詞":  "aux",
	"連体詞":  "det",
	"接続詞":  "conj",
	"感動詞":  "intj",
	"記号":   "punct",
	"接頭詞":  "affix",
	"フィラー": "intj",
}

// KagomeTagger tags Japanese text in-process.
type KagomeTagger struct {
	model *ModelHandle
}

func NewKagomeTagger(model *ModelHandle) *KagomeTagger {
	return &KagomeTagger{model: model}
}

func (k *KagomeTagger) TagPartsOfSpeech(ctx context.Context, text, language string) ([]WordTag, error) {
	tok, err := k.model.Get(ctx)
	if err != nil {
		return nil, err
	}

	tokens := tok.Tokenize(text)
	result := make([]WordTag, 0, len(tokens))
	for _, token := range tokens {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}
		tag := "x"
		if features := token.Features(); len(features) > 0 {
			if mapped, ok := ipaTags[features[0]]; ok {
				tag = mapped
			}
		}
		result = append(result, WordTag{Word: token.Surface, Tag: tag})
	}
	return result, nil
}
