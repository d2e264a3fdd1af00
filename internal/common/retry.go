package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrRateLimit indicates that the API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// Backoff controls how an export step is retried. Attempts counts the first
// try, so 1 means no retries.
type Backoff struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
}

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Transient marks err as worth another attempt.
func Transient(err error) error {
	return &RetryableError{Err: err, Retryable: true}
}

// Permanent marks err as final.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

// Retry runs op until it succeeds or returns an error IsRetryable rejects.
// The delay doubles after each failure, capped at MaxDelay; a rate limit
// waits the full MaxDelay.
func Retry(ctx context.Context, logger *slog.Logger, step string, b Backoff, op func(context.Context) error) error {
	if b.Attempts <= 0 {
		b.Attempts = 1
	}
	if b.MaxDelay < b.Delay {
		b.MaxDelay = b.Delay
	}

	delay := b.Delay
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt == b.Attempts {
			return fmt.Errorf("%w: %s after %d attempts: %w", ErrMaxRetries, step, attempt, err)
		}

		wait := delay
		if errors.Is(err, ErrRateLimit) {
			wait = b.MaxDelay
		}

		logger.Warn("export step failed, retrying",
			"step", step,
			"attempt", attempt,
			"max_attempts", b.Attempts,
			"delay", wait,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay = min(delay*2, b.MaxDelay)
	}
}
