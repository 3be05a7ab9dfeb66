package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/speech"
)

// DeleteAudioAssetTask removes the stored audio of a deleted translation.
type DeleteAudioAssetTask struct {
	Ref string `json:"ref"`
}

// Config allows a single attempt: every translation delete issues exactly one
// asset delete.
func (t DeleteAudioAssetTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "delete_audio_asset",
		MaxAttempts: 1,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DeleteAudioAssetProcessor creates a processor function for DeleteAudioAssetTask.
func DeleteAudioAssetProcessor(deleter speech.AssetDeleter, log logrus.FieldLogger) backlite.QueueProcessor[DeleteAudioAssetTask] {
	return func(ctx context.Context, task DeleteAudioAssetTask) error {
		if err := deleter.DeleteAsset(ctx, task.Ref); err != nil {
			log.WithError(err).WithField("asset_ref", task.Ref).Warn("background audio delete failed")
			return fmt.Errorf("delete audio asset: %w", err)
		}
		return nil
	}
}

// NewDeleteAudioAssetQueue creates a backlite queue for audio deletions.
func NewDeleteAudioAssetQueue(deleter speech.AssetDeleter, log logrus.FieldLogger) backlite.Queue {
	return backlite.NewQueue(DeleteAudioAssetProcessor(deleter, log))
}

// AsyncAssetDeleter hands asset deletions to the task queue so translation
// deletes do not wait on the blob store. The returned error only reports
// whether the task was enqueued.
type AsyncAssetDeleter struct {
	queue Enqueuer
}

func NewAsyncAssetDeleter(queue Enqueuer) *AsyncAssetDeleter {
	return &AsyncAssetDeleter{queue: queue}
}

func (d *AsyncAssetDeleter) DeleteAsset(ctx context.Context, ref string) error {
	return d.queue.Enqueue(DeleteAudioAssetTask{Ref: ref})
}
