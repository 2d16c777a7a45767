package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lolstreamsearch/lib/utils/network"
	"lolstreamsearch/lib/utils/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videoJSON = `{"kind":"youtube#videoListResponse","items":[{"id":"PDuIp8Y9aIY",
	"snippet":{"publishedAt":"2024-10-21T16:00:34Z","title":"VOLIBEAR TOP","description":"build https://op.gg/lol/summoners/euw/A-B/matches/x/1",
	"channelTitle":"Daveyx3 Gameplay"},
	"statistics":{"viewCount":"6584","likeCount":"267","favoriteCount":"0"}}]}`

func fastRetries() retry.RetryConfig {
	cfg := network.ExponentialSecondsRetryConfig(2, logger, nil)
	cfg.InitialDelay = time.Millisecond
	return cfg
}

func TestGetVideoInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		assert.Equal(t, "PDuIp8Y9aIY", r.URL.Query().Get("id"))
		assert.Equal(t, "snippet,statistics", r.URL.Query().Get("part"))
		assert.Equal(t, "yt-key", r.URL.Query().Get("key"))
		w.Write([]byte(videoJSON))
	}))
	defer srv.Close()

	c := NewYouTubeClient("yt-key", srv.URL, WithHTTPClient(srv.Client()))
	info := c.GetVideoInfo(context.Background(), "PDuIp8Y9aIY")

	assert.True(t, info.Available())
	assert.Equal(t, "VOLIBEAR TOP", info.Title)
	assert.Equal(t, "Daveyx3 Gameplay", info.Channel)
	assert.Equal(t, int64(6584), info.ViewCount)
	assert.Equal(t, int64(267), info.LikeCount)
	require.NotNil(t, info.PublishedAt)
	assert.Equal(t, 2024, info.PublishedAt.Year())
}

func TestGetVideoInfoRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(videoJSON))
	}))
	defer srv.Close()

	c := NewYouTubeClient("k", srv.URL, WithHTTPClient(srv.Client()), WithRetryConfig(fastRetries()))
	info := c.GetVideoInfo(context.Background(), "PDuIp8Y9aIY")

	assert.True(t, info.Available())
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetVideoInfoFallsBackAfterThreeTries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := NewYouTubeClient("k", srv.URL, WithHTTPClient(srv.Client()), WithRetryConfig(fastRetries()))
	info := c.GetVideoInfo(context.Background(), "PDuIp8Y9aIY")

	assert.Equal(t, int32(3), calls.Load())
	assert.False(t, info.Available())
	assert.Equal(t, "Unavailable", info.Title)
	assert.Equal(t, "Unknown", info.Channel)
	assert.Contains(t, info.Description, "Video information unavailable: ")
	assert.Contains(t, info.Description, "no video information available")
	assert.Zero(t, info.ViewCount)
	assert.Zero(t, info.LikeCount)
	assert.Nil(t, info.PublishedAt)
}

func TestGetVideoInfoMissingLikeCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"snippet":{"title":"t","channelTitle":"c"},"statistics":{"viewCount":"10"}}]}`))
	}))
	defer srv.Close()

	c := NewYouTubeClient("k", srv.URL, WithHTTPClient(srv.Client()))
	info := c.GetVideoInfo(context.Background(), "PDuIp8Y9aIY")

	assert.Equal(t, int64(10), info.ViewCount)
	assert.Zero(t, info.LikeCount)
	assert.Nil(t, info.PublishedAt)
}
