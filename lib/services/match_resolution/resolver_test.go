package match_resolution

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lolstreamsearch/lib/services/identity"
	"lolstreamsearch/lib/web/ddragon"
	"lolstreamsearch/lib/web/ddragon/ddragontest"
	"lolstreamsearch/lib/web/riot"
	"lolstreamsearch/lib/web/youtube"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideos struct {
	description string
	calls       int
}

func (f *fakeVideos) GetVideoInfo(ctx context.Context, videoID string) *youtube.VideoInfo {
	f.calls++
	return &youtube.VideoInfo{Title: "Yorick top", Description: f.description, Channel: "Chamkin"}
}

type riotFixture struct {
	matchIDs string
}

func (f *riotFixture) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/riot/account/v1/accounts/by-riot-id/Chamkin/EUW", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"puuid":"` + fixturePUUID + `","gameName":"Chamkin","tagLine":"EUW"}`))
	})
	mux.HandleFunc("/lol/match/v5/matches/by-puuid/"+fixturePUUID+"/ids", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1762466711", r.URL.Query().Get("startTime"))
		assert.Equal(t, "1762467011", r.URL.Query().Get("endTime"))
		w.Write([]byte(f.matchIDs))
	})
	mux.HandleFunc("/lol/match/v5/matches/"+fixtureMatchID, func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixtureMatchJSON(t))
	})
	return mux
}

func newFixtureResolver(t *testing.T, matchIDs string, videos VideoInfoProvider) *Resolver {
	t.Helper()
	fixture := &riotFixture{matchIDs: matchIDs}
	riotSrv := httptest.NewServer(fixture.handler(t))
	t.Cleanup(riotSrv.Close)
	ddSrv := ddragontest.NewServer(t)

	client := riot.NewRiotClient("key", riot.RoutingEurope,
		riot.WithBaseURL(riotSrv.URL),
		riot.WithHTTPClient(riotSrv.Client()),
		riot.WithRateLimit(nil, nil),
	)
	catalog := ddragon.NewCache(ddSrv.URL, ddragon.WithHTTPClient(ddSrv.Client()))
	return NewResolver(identity.NewCachedResolver(client, nil), client, catalog, videos)
}

func TestResolveFromMatchURL(t *testing.T) {
	r := newFixtureResolver(t, `["`+fixtureMatchID+`","EUW1_7594636000"]`, &fakeVideos{})

	record, err := r.ResolveFromMatchURL(context.Background(), fixtureOpggURL)
	require.NoError(t, err)

	assert.Equal(t, "Yorick", record.ChampionName)
	assert.Equal(t, "TOP", record.Lane)
	require.NotNil(t, record.Item0)
	assert.Equal(t, "Doran's Ring", *record.Item0)
	require.NotNil(t, record.Item1)
	assert.Equal(t, "Liandry's Torment", *record.Item1)
	assert.Nil(t, record.Item5)
	assert.Equal(t, []string{"Arcane Comet", "Manaflow Band", "Transcendence", "Gathering Storm"}, record.PrimaryRunes)
	assert.Equal(t, []string{"Biscuit Delivery", "Magical Footwear"}, record.SecondaryRunes)
	assert.Equal(t, "K'Sante", record.Participants.Opponent[0].ChampionName)
}

func TestResolveFromMatchURLEmptyWindow(t *testing.T) {
	r := newFixtureResolver(t, `[]`, &fakeVideos{})

	_, err := r.ResolveFromMatchURL(context.Background(), fixtureOpggURL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatchFound))
	assert.Equal(t, StageMatchList, FailedStage(err))
}

func TestResolveFromMatchURLInvalid(t *testing.T) {
	r := newFixtureResolver(t, `[]`, &fakeVideos{})

	_, err := r.ResolveFromMatchURL(context.Background(), "https://op.gg/lol/summoners/euw/Chamkin-EUW")
	assert.ErrorIs(t, err, ErrInvalidMatchURL)
	assert.Equal(t, StageParse, FailedStage(err))
}

func TestResolveFromMatchURLUnknownPlayer(t *testing.T) {
	r := newFixtureResolver(t, `[]`, &fakeVideos{})

	_, err := r.ResolveFromMatchURL(context.Background(), "https://op.gg/lol/summoners/euw/Nobody-0000/matches/x/1762466711000")
	require.Error(t, err)
	assert.Equal(t, StageIdentity, FailedStage(err))

	var lookupErr *riot.UpstreamLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.True(t, lookupErr.NotFound())
}

func TestResolveFromVideoURL(t *testing.T) {
	videos := &fakeVideos{description: "Full game\nop.gg: " + fixtureOpggURL + "\nsocials below"}
	r := newFixtureResolver(t, `["`+fixtureMatchID+`"]`, videos)

	resolution, err := r.ResolveVideo(context.Background(), "http://www.youtube.com/watch?v=uZeMAnXhoIU&t=1774s")
	require.NoError(t, err)

	assert.Equal(t, "uZeMAnXhoIU", resolution.VideoID)
	assert.Equal(t, 1774, resolution.Offset)
	assert.Equal(t, "https://www.youtube.com/watch?v=uZeMAnXhoIU&t=1774s", resolution.VideoURL)
	assert.Equal(t, fixtureOpggURL, resolution.MatchURL)
	assert.Equal(t, "Yorick", resolution.Record.ChampionName)
	assert.Equal(t, 1, videos.calls)
}

func TestResolveFromVideoURLWithoutLink(t *testing.T) {
	r := newFixtureResolver(t, `[]`, &fakeVideos{description: "no links"})

	_, err := r.ResolveFromVideoURL(context.Background(), "https://youtu.be/uZeMAnXhoIU")
	assert.ErrorIs(t, err, ErrNoMatchURL)
	assert.Equal(t, StageVideo, FailedStage(err))
}

func TestResolveFromVideoURLInvalid(t *testing.T) {
	videos := &fakeVideos{}
	r := newFixtureResolver(t, `[]`, videos)

	_, err := r.ResolveFromVideoURL(context.Background(), "https://vimeo.com/123")
	var parseErr *youtube.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, StageParse, FailedStage(err))
	assert.Zero(t, videos.calls)
}
