package commands

import (
	"context"
	"log/slog"

	"donation/internal/pkg/errs"
)

// DefaultConflictRetries is how many times a lifecycle command is re-run after
// its first attempt lost a compare-and-set race.
const DefaultConflictRetries = 3

// ConflictRetrier re-runs a unit of work that failed with *errs.ConflictError.
// Each attempt starts from fresh state; it never waits between attempts.
// Any other error, including Forbidden and InvalidTransition, is returned at once.
type ConflictRetrier struct {
	attempts int
	logger   *slog.Logger
}

// NewConflictRetrier allows retries extra attempts after the first one. A
// negative value disables retrying.
func NewConflictRetrier(retries int, logger *slog.Logger) ConflictRetrier {
	if logger == nil {
		logger = slog.Default()
	}
	return ConflictRetrier{
		attempts: max(retries, 0) + 1,
		logger:   logger.With("component", "conflict_retrier"),
	}
}

// Attempts is the total number of tries, the first one included.
func (r ConflictRetrier) Attempts() int {
	if r.attempts < 1 {
		return 1
	}
	return r.attempts
}

func runWithRetry[T any](
	ctx context.Context,
	r ConflictRetrier,
	action string,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var (
		result T
		err    error
	)

	for attempt := 1; attempt <= r.Attempts(); attempt++ {
		result, err = fn(ctx)
		if !errs.IsRetryable(err) {
			return result, err
		}
		if ctx.Err() != nil {
			break
		}
		if r.logger != nil {
			r.logger.DebugContext(ctx, "Lost compare-and-set race, retrying",
				"action", action, "attempt", attempt, "error", err)
		}
	}

	return result, err
}
