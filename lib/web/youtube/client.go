package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lolstreamsearch/lib/monitoring/global_metrics"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/utils/network"
	"lolstreamsearch/lib/utils/retry"
)

var logger = logging.NewLogger("YOUTUBE_CLIENT")

var errNoVideo = errors.New("no video information available")

// VideoInfo is the subset of a video resource the catalog stores
type VideoInfo struct {
	Title       string
	Description string
	PublishedAt *time.Time // nil when unknown
	Channel     string
	ViewCount   int64
	LikeCount   int64
}

// Available reports whether the info came from the API rather than the fallback
func (v *VideoInfo) Available() bool {
	return v.Channel != unavailableChannel || v.Title != unavailableTitle
}

const (
	unavailableTitle   = "Unavailable"
	unavailableChannel = "Unknown"
)

func unavailable(err error) *VideoInfo {
	return &VideoInfo{
		Title:       unavailableTitle,
		Description: fmt.Sprintf("Video information unavailable: %v", err),
		Channel:     unavailableChannel,
	}
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			PublishedAt  *time.Time `json:"publishedAt"`
			Title        string     `json:"title"`
			Description  string     `json:"description"`
			ChannelTitle string     `json:"channelTitle"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount int64 `json:"viewCount,string"`
			LikeCount int64 `json:"likeCount,string"`
		} `json:"statistics"`
	} `json:"items"`
}

// YouTubeClient reads video metadata from the YouTube Data API v3
type YouTubeClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	retryConfig retry.RetryConfig
}

type Option func(*YouTubeClient)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *YouTubeClient) {
		c.httpClient = httpClient
	}
}

// WithRetryConfig replaces the default 3 tries with 2s and 4s waits
func WithRetryConfig(config retry.RetryConfig) Option {
	return func(c *YouTubeClient) {
		c.retryConfig = config
	}
}

func NewYouTubeClient(apiKey, baseURL string, opts ...Option) *YouTubeClient {
	c := &YouTubeClient{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL:     baseURL,
		apiKey:      apiKey,
		retryConfig: network.ExponentialSecondsRetryConfig(2, logger, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetVideoInfo fetches title, description, channel and statistics of a video.
// It never fails: after the last retry it returns a placeholder describing the error.
func (c *YouTubeClient) GetVideoInfo(ctx context.Context, videoID string) *VideoInfo {
	info, err := retry.WithRetryForResult(ctx, c.retryConfig, func(attempt int) (*VideoInfo, error) {
		return c.fetchVideo(ctx, videoID)
	})
	if err != nil {
		logger.Warn("VIDEO_INFO_UNAVAILABLE", err, map[string]any{
			logging.VIDEO_ID: videoID,
		})
		return unavailable(err)
	}
	return info
}

func (c *YouTubeClient) fetchVideo(ctx context.Context, videoID string) (*VideoInfo, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)
	u := c.baseURL + "/youtube/v3/videos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		global_metrics.YouTubeRequest.WithLabelValues("transport_error").Observe(float64(time.Since(start).Milliseconds()))
		return nil, err
	}
	defer resp.Body.Close()
	global_metrics.YouTubeRequest.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		// The key is part of the query string, keep it out of the error
		return nil, &network.HTTPStatusError{StatusCode: resp.StatusCode, URL: c.baseURL + "/youtube/v3/videos"}
	}

	var body videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode video response: %w", err)
	}
	if len(body.Items) == 0 {
		return nil, errNoVideo
	}

	item := body.Items[0]
	return &VideoInfo{
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		PublishedAt: item.Snippet.PublishedAt,
		Channel:     item.Snippet.ChannelTitle,
		ViewCount:   item.Statistics.ViewCount,
		LikeCount:   item.Statistics.LikeCount,
	}, nil
}
