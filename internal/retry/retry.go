// Package retry runs collaborator calls under a per-call deadline and a
// bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/config"
)

// Policy bounds a retried call.
type Policy struct {
	MaxAttempts     int           // Total attempts including the first one
	InitialInterval time.Duration // Wait before the second attempt
	MaxInterval     time.Duration // Upper bound for a single wait
	CallTimeout     time.Duration // Deadline for each attempt, 0 means none
}

// NewPolicy combines the shared retry settings with a collaborator's per-call timeout.
func NewPolicy(cfg config.Retry, callTimeout time.Duration) Policy {
	return Policy{
		MaxAttempts:     cfg.MaxAttempts,
		InitialInterval: cfg.InitialInterval,
		MaxInterval:     cfg.MaxInterval,
		CallTimeout:     callTimeout,
	}
}

// Permanent marks an error that must not be retried, e.g. a 4xx response.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls fn until it succeeds, returns a permanent error, runs out of
// attempts or ctx is done. The last error is returned unwrapped.
func Do[T any](ctx context.Context, p Policy, log logrus.FieldLogger, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0
	operation := func() (T, error) {
		attempt++
		callCtx, cancel := ctx, context.CancelFunc(func() {})
		if p.CallTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, p.CallTimeout)
		}
		defer cancel()

		v, err := fn(callCtx)
		if err != nil && ctx.Err() != nil {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	notify := func(err error, wait time.Duration) {
		log.WithFields(logrus.Fields{
			"operation": op,
			"attempt":   attempt,
			"wait":      wait,
		}).WithError(err).Warn("collaborator call failed, retrying")
	}

	return backoff.RetryNotifyWithData(operation, p.backOff(ctx), notify)
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	// Attempts are bounded by count, not by wall-clock time.
	exp.MaxElapsedTime = 0

	var b backoff.BackOff = exp
	if p.MaxAttempts > 0 {
		b = backoff.WithMaxRetries(b, uint64(p.MaxAttempts-1))
	}
	return backoff.WithContext(b, ctx)
}
