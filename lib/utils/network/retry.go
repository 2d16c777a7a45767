package network

import (
	"maps"
	"time"

	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/utils/retry"
)

// TransientNetworkErrorRetryConfig retries transient network errors
// such as timeout, connection errors, rate limiting and server errors (5xx)
func TransientNetworkErrorRetryConfig() retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
		ShouldRetry:  ShouldRetry,
	}
}

// ExponentialSecondsRetryConfig makes 1+retries calls sleeping 2^n seconds before retry n.
// Every error is retried; callers that must not fail use it and fall back afterwards.
func ExponentialSecondsRetryConfig(retries int, logger logging.Logger, loggingFields map[string]any) retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts:  retries,
		InitialDelay: 2 * time.Second,
		MaxDelay:     time.Minute,
		Multiplier:   2,
		OnRetry: func(attempt int, err error) {
			fields := map[string]any{
				logging.ATTEMPT: attempt,
			}
			maps.Copy(fields, loggingFields)
			logger.Warn("UPSTREAM_REQUEST_RETRY", err, fields)
		},
		ShouldRetry: func(err error) bool { return err != nil },
	}
}
