package riot

import (
	"context"
	"net/http"
	"time"

	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/utils/logging"
)

// NewFromEnv builds a client from RIOT_* settings. When RIOT_API_KEY_FILE is set the key
// is read from that file and reloaded on change until ctx is done.
func NewFromEnv(ctx context.Context) *RiotClient {
	c := NewRiotClient(env.RiotAPIKey, env.RiotRouting,
		WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		WithDefaultPlatform(env.RiotDefaultPlatform),
		WithMatchCount(env.RiotMatchCount),
	)

	if env.RiotAPIKeyFile != "" {
		if err := WatchKeyFile(ctx, c, env.RiotAPIKeyFile); err != nil {
			logger.Warn("API_KEY_FILE_UNAVAILABLE", err, map[string]any{
				logging.PATH: env.RiotAPIKeyFile,
			})
		}
	}
	return c
}
