package lexical

import (
	"context"
	"fmt"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"golang.org/x/sync/singleflight"
)

// ModelHandle owns the in-process tokenizer model. The dictionary is loaded on
// first use and released by Close; a closed handle loads again when needed.
type ModelHandle struct {
	mu     sync.RWMutex
	tok    *tokenizer.Tokenizer
	group  singleflight.Group
	loader func() (*tokenizer.Tokenizer, error)
}

// NewModelHandle returns a handle for the IPA dictionary. Nothing is loaded yet.
func NewModelHandle() *ModelHandle {
	return &ModelHandle{
		loader: func() (*tokenizer.Tokenizer, error) {
			return tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
		},
	}
}

// Get returns the loaded tokenizer, loading it once for concurrent callers.
func (h *ModelHandle) Get(ctx context.Context) (*tokenizer.Tokenizer, error) {
	h.mu.RLock()
	tok := h.tok
	h.mu.RUnlock()
	if tok != nil {
		return tok, nil
	}

	ch := h.group.DoChan("model", func() (any, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.tok != nil {
			return h.tok, nil
		}
		loaded, err := h.loader()
		if err != nil {
			return nil, fmt.Errorf("load tokenizer model: %w", err)
		}
		h.tok = loaded
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*tokenizer.Tokenizer), nil
	}
}

// Loaded reports whether the model is currently in memory.
func (h *ModelHandle) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tok != nil
}

// Close drops the model so its memory can be reclaimed.
func (h *ModelHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tok = nil
	return nil
}
