package app

import (
	"context"
	"time"
)

// WithTimeoutAndContextCheck runs fn under a child context bounded by timeout.
// A non-positive timeout keeps the parent deadline.
func WithTimeoutAndContextCheck[T any](parent context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	ctx := parent
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, timeout)
		defer cancel()
	}
	if ctx.Err() != nil {
		return zero, ctx.Err()
	}
	return fn(ctx)
}
