package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
)

// AudioSweeper removes stored audio that no translation references.
type AudioSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SweepRecorder records the outcome of a sweep.
type SweepRecorder interface {
	LogAudioSweep(removed int, err error)
}

// SweepOrphanAudioTask runs one orphaned audio sweep.
type SweepOrphanAudioTask struct{}

func (t SweepOrphanAudioTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sweep_orphan_audio",
		MaxAttempts: 2,
		Backoff:     10 * time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SweepOrphanAudioProcessor creates a processor function for SweepOrphanAudioTask.
func SweepOrphanAudioProcessor(sweeper AudioSweeper, recorder SweepRecorder) backlite.QueueProcessor[SweepOrphanAudioTask] {
	return func(ctx context.Context, task SweepOrphanAudioTask) error {
		removed, err := sweeper.Sweep(ctx)
		recorder.LogAudioSweep(removed, err)
		if err != nil {
			return fmt.Errorf("sweep orphaned audio: %w", err)
		}
		return nil
	}
}

// NewSweepOrphanAudioQueue creates a backlite queue for audio sweeps.
func NewSweepOrphanAudioQueue(sweeper AudioSweeper, recorder SweepRecorder) backlite.Queue {
	return backlite.NewQueue(SweepOrphanAudioProcessor(sweeper, recorder))
}
