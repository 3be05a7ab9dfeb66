package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/storage"
)

// RefSource lists every audio asset ref still referenced by a translation.
type RefSource interface {
	AudioAssetRefs() ([]string, error)
}

// Sweeper removes stored audio that no translation references anymore,
// e.g. leftovers of a crash between upload and insert.
type Sweeper struct {
	store   storage.Client
	synth   *HTTPSynthesizer
	refs    RefSource
	grace   time.Duration
	log     logrus.FieldLogger
	nowFunc func() time.Time
}

func NewSweeper(store storage.Client, synth *HTTPSynthesizer, refs RefSource, grace time.Duration, log logrus.FieldLogger) *Sweeper {
	return &Sweeper{
		store:   store,
		synth:   synth,
		refs:    refs,
		grace:   grace,
		log:     log,
		nowFunc: time.Now,
	}
}

// Sweep deletes orphaned objects older than the grace period and returns
// how many were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	files, err := storage.ListRecursive(ctx, s.store, AudioPrefix)
	if err != nil {
		return 0, fmt.Errorf("list audio assets: %w", err)
	}

	refs, err := s.refs.AudioAssetRefs()
	if err != nil {
		return 0, fmt.Errorf("load referenced assets: %w", err)
	}
	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		key, err := s.synth.KeyForRef(ref)
		if err != nil {
			continue
		}
		referenced[key] = struct{}{}
	}

	cutoff := s.nowFunc().Add(-s.grace)
	orphans := storage.FilterFiles(files, func(f storage.FileInfo) bool {
		_, ok := referenced[storage.CleanKey(f.Path)]
		return !ok && f.ModifiedAt.Before(cutoff)
	})

	removed := 0
	for _, f := range orphans {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := s.store.Delete(ctx, f.Path); err != nil {
			s.log.WithError(err).WithField("asset_key", f.Path).Warn("failed to remove orphaned audio")
			continue
		}
		removed++
	}

	s.log.WithFields(logrus.Fields{
		"scanned": len(files),
		"removed": removed,
	}).Info("audio sweep finished")
	return removed, nil
}
