package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	calls := 0

	got, err := Do(context.Background(), fastPolicy(3), logger, "translate", func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("503 service unavailable")
		}
		return "hello", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, 3, calls)
	assert.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, "translate", hook.LastEntry().Data["operation"])
}

func TestDo_StopsAtMaxAttempts(t *testing.T) {
	logger, _ := test.NewNullLogger()
	calls := 0
	boom := errors.New("boom")

	_, err := Do(context.Background(), fastPolicy(3), logger, "synthesize", func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentErrorIsNotRetried(t *testing.T) {
	logger, _ := test.NewNullLogger()
	calls := 0
	badRequest := errors.New("400 bad request")

	_, err := Do(context.Background(), fastPolicy(5), logger, "translate", func(ctx context.Context) (string, error) {
		calls++
		return "", Permanent(badRequest)
	})

	assert.ErrorIs(t, err, badRequest)
	assert.Equal(t, 1, calls)
}

func TestDo_AppliesPerCallTimeout(t *testing.T) {
	logger, _ := test.NewNullLogger()
	policy := fastPolicy(2)
	policy.CallTimeout = 10 * time.Millisecond
	calls := 0

	_, err := Do(context.Background(), policy, logger, "tag", func(ctx context.Context) (string, error) {
		calls++
		<-ctx.Done()
		return "", ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, calls)
}

func TestDo_CancelledParentStopsRetrying(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := Do(ctx, fastPolicy(10), logger, "translate", func(ctx context.Context) (string, error) {
		calls++
		cancel()
		return "", errors.New("connection reset")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
