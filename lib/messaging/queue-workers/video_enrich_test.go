package queueworkers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/messaging/messages"
	"lolstreamsearch/lib/services/match_resolution"
	"lolstreamsearch/lib/utils/logging"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWorker struct {
	logging.Logger
	ctx context.Context
}

func (w testWorker) Context() context.Context {
	return w.ctx
}

func newTestWorker() testWorker {
	return testWorker{Logger: logging.NewLogger("TEST"), ctx: context.Background()}
}

type fakeResolver struct {
	resolution *match_resolution.VideoResolution
	err        error
	urls       []string
}

func (f *fakeResolver) ResolveVideo(ctx context.Context, videoURL string) (*match_resolution.VideoResolution, error) {
	f.urls = append(f.urls, videoURL)
	return f.resolution, f.err
}

type fakeStore struct {
	stored []*match_resolution.VideoResolution
	err    error
}

func (f *fakeStore) StoreResolution(ctx context.Context, resolution *match_resolution.VideoResolution) (*dto.VideoDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.stored = append(f.stored, resolution)
	return &dto.VideoDocument{ID: "doc-1", Champion: resolution.Record.ChampionName}, nil
}

func delivery(t *testing.T, videoURL string) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(messages.NewVideoEnrichMessage(videoURL))
	require.NoError(t, err)
	return amqp.Delivery{Body: body}
}

func TestVideoEnrichStoresResolution(t *testing.T) {
	resolution := &match_resolution.VideoResolution{
		VideoID: "Kryc40r9wOg",
		Record:  &dto.ParticipantRecord{ChampionName: "Yorick"},
	}
	resolver := &fakeResolver{resolution: resolution}
	store := &fakeStore{}

	err := processVideoEnrich(resolver, store)(newTestWorker(), delivery(t, "https://youtu.be/Kryc40r9wOg?t=1737"))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://youtu.be/Kryc40r9wOg?t=1737"}, resolver.urls)
	assert.Equal(t, []*match_resolution.VideoResolution{resolution}, store.stored)
}

func TestVideoEnrichSkipsExpectedFailures(t *testing.T) {
	resolver := &fakeResolver{err: &match_resolution.StageError{
		Stage: match_resolution.StageVideo,
		Err:   match_resolution.ErrNoMatchURL,
	}}
	store := &fakeStore{}

	err := processVideoEnrich(resolver, store)(newTestWorker(), delivery(t, "https://youtu.be/Kryc40r9wOg"))
	assert.NoError(t, err)
	assert.Empty(t, store.stored)
}

func TestVideoEnrichFailsOnUpstreamErrors(t *testing.T) {
	upstream := errors.New("riot api unavailable")
	resolver := &fakeResolver{err: &match_resolution.StageError{
		Stage: match_resolution.StageMatchFetch,
		Err:   upstream,
	}}

	err := processVideoEnrich(resolver, &fakeStore{})(newTestWorker(), delivery(t, "https://youtu.be/Kryc40r9wOg"))
	assert.ErrorIs(t, err, upstream)
}

func TestVideoEnrichFailsOnStoreError(t *testing.T) {
	resolver := &fakeResolver{resolution: &match_resolution.VideoResolution{
		Record: &dto.ParticipantRecord{ChampionName: "Yorick"},
	}}
	store := &fakeStore{err: errors.New("connection refused")}

	err := processVideoEnrich(resolver, store)(newTestWorker(), delivery(t, "https://youtu.be/Kryc40r9wOg"))
	assert.ErrorIs(t, err, store.err)
}

func TestVideoEnrichRejectsMalformedBody(t *testing.T) {
	resolver := &fakeResolver{}
	err := processVideoEnrich(resolver, &fakeStore{})(newTestWorker(), amqp.Delivery{Body: []byte("{")})
	assert.Error(t, err)
	assert.Empty(t, resolver.urls)
}

func TestVideoEnrichFailsWhenWorkerStopsMidResolution(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	stopped := errors.New("autoscaled_in")
	worker := testWorker{Logger: logging.NewLogger("TEST"), ctx: ctx}

	cases := []struct {
		name string
		err  error
	}{
		// YouTube answers with placeholder info, so no op.gg link is found
		{"placeholder video info", &match_resolution.StageError{
			Stage: match_resolution.StageVideo,
			Err:   match_resolution.ErrNoMatchURL,
		}},
		{"cancelled riot call", &match_resolution.StageError{
			Stage: match_resolution.StageIdentity,
			Err:   context.Canceled,
		}},
	}

	cancel(stopped)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			err := processVideoEnrich(&fakeResolver{err: tc.err}, store)(worker, delivery(t, "https://youtu.be/Kryc40r9wOg"))
			assert.ErrorIs(t, err, stopped)
			assert.Empty(t, store.stored)
		})
	}
}
