package internal

import (
	"context"
	"errors"
	"time"
)

// DefaultStoreTimeout bounds every call against the persistent store so a
// slow database surfaces a retryable error instead of hanging the caller.
const DefaultStoreTimeout = 5 * time.Second

// WithStoreTimeout returns a context bounded by duration, defaulting to
// DefaultStoreTimeout when duration is zero or negative.
func WithStoreTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, duration)
}

// WrapStoreError converts a deadline expiry into the retryable transient
// taxonomy; other errors pass through untouched.
func WrapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTransientStoreError("store call timed out", err)
	}
	return err
}
