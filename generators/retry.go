package generators

import (
	"context"
	"errors"
	"time"

	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/logs"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MaxRetries is the number of extra attempts for rate-limited or unavailable providers.
type MaxRetries int

func (Module) MaxRetries(
	loader configs.Loader,
) MaxRetries {
	return configs.First[MaxRetries](loader, "max_retries")
}

// retryBackoff is the wait before the first retry. It doubles on each further attempt.
var retryBackoff = time.Second

func doWithRetry[T any](
	ctx context.Context,
	logger logs.Logger,
	maxRetries MaxRetries,
	fn func() (T, error),
) (T, error) {
	wait := retryBackoff
	for attempt := 1; ; attempt++ {
		ret, err := fn()
		if err == nil || attempt > int(maxRetries) || !isRetryable(err) {
			return ret, err
		}
		logger.WarnContext(ctx, "retrying",
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ret, errors.Join(err, ctx.Err())
		case <-timer.C:
		}
		wait *= 2
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrRetryable) {
		return true
	}
	switch status.Code(err) {
	case codes.ResourceExhausted, codes.Unavailable:
		return true
	}
	return false
}
