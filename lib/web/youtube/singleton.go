package youtube

import (
	"lolstreamsearch/lib/env"
)

// NewFromEnv builds a client from YT_API_KEY and YT_URL_BASE
func NewFromEnv() *YouTubeClient {
	return NewYouTubeClient(env.YouTubeAPIKey, env.YouTubeURLBase)
}
