package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func fastConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  maxAttempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
		ShouldRetry:  func(err error) bool { return errors.Is(err, errTransient) },
	}
}

func TestWithRetryForResult_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	got, err := WithRetryForResult(context.Background(), fastConfig(3), func(attempt int) (string, error) {
		calls++
		if attempt < 2 {
			return "", errTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestWithRetryForResult_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastConfig(2)
	cfg.OnRetry = func(attempt int, err error) { retried = append(retried, attempt) }

	_, err := WithRetryForResult(context.Background(), cfg, func(attempt int) (int, error) {
		calls++
		return 0, errTransient
	})

	var maxErr *MaxRetriesExceededError
	require.ErrorAs(t, err, &maxErr)
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestWithRetry_DoesNotRetryPermanentErrors(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0

	err := WithRetry(context.Background(), fastConfig(5), func(attempt int) error {
		calls++
		return permanent
	})

	assert.Same(t, permanent, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_NilShouldRetryNeverRetries(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), RetryConfig{MaxAttempts: 3}, func(attempt int) error {
		calls++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(10)
	cfg.InitialDelay = time.Hour
	cfg.MaxDelay = time.Hour

	err := WithRetry(ctx, cfg, func(attempt int) error {
		cancel()
		return errTransient
	})

	var cancelled *ContextCancelledError
	require.ErrorAs(t, err, &cancelled)
	assert.ErrorIs(t, cancelled.CtxErr, context.Canceled)
}

func TestCalculateDelayWithJitter(t *testing.T) {
	assert.Equal(t, 2*time.Second, calculateDelayWithJitter(2*time.Second, 2, 0, 0))
	assert.Equal(t, 4*time.Second, calculateDelayWithJitter(2*time.Second, 2, 0, 1))

	for i := 0; i < 50; i++ {
		d := calculateDelayWithJitter(100*time.Millisecond, 1, 0.1, 0)
		assert.GreaterOrEqual(t, d, 90*time.Millisecond)
		assert.LessOrEqual(t, d, 110*time.Millisecond)
	}
}
