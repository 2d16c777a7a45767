package singleton

import (
	"fmt"
	"time"

	"lolstreamsearch/lib/utils/logging"
)

// InitAsync connects to an external service (database, message queue, cache) in the background,
// retrying with a linear backoff. The returned channel closes once connectFn succeeded.
// Exhausting maxRetries is fatal.
func InitAsync(name string, maxRetries int, connectFn func() error) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		logger := logging.NewLogger(name)
		var lastErr error

		for i := 0; i < maxRetries; i++ {
			logger.Debug(fmt.Sprintf("%s_CONNECTING", name), map[string]any{
				logging.ATTEMPT: i + 1,
			})

			lastErr = connectFn()
			if lastErr == nil {
				logger.Debug(fmt.Sprintf("%s_CONNECTED", name), map[string]any{
					logging.STATUS:  "ready",
					logging.ATTEMPT: i + 1,
				})
				return
			}

			logger.Warn(fmt.Sprintf("%s_CONNECTION_FAILED", name), lastErr, map[string]any{
				logging.ATTEMPT: i + 1,
			})

			time.Sleep(time.Duration(i+1) * time.Second)
		}

		logger.Fatal(fmt.Sprintf("%s_CONNECTION_FAILED", name), lastErr, map[string]any{
			logging.ATTEMPTS: maxRetries,
		})
	}()

	return done
}
