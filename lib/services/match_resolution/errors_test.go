package match_resolution

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"lolstreamsearch/lib/web/riot"
	"lolstreamsearch/lib/web/youtube"

	"github.com/stretchr/testify/assert"
)

func TestExpected(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"no match in window", &StageError{Stage: StageMatchList, Err: ErrNoMatchFound}, true},
		{"no op.gg link", &StageError{Stage: StageVideo, Err: ErrNoMatchURL}, true},
		{"bad op.gg link", &StageError{Stage: StageParse, Err: ErrInvalidMatchURL}, true},
		{"participant missing", &StageError{Stage: StageProject, Err: ErrParticipantNotFound}, true},
		{"bad video url", &StageError{Stage: StageParse, Err: &youtube.ParseError{URL: "x", Reason: "empty url"}}, true},
		{"unknown riot id", &StageError{Stage: StageIdentity, Err: &riot.UpstreamLookupError{Endpoint: "account", StatusCode: 404, Err: errors.New("not found")}}, true},
		{"account api down", &StageError{Stage: StageIdentity, Err: &riot.UpstreamLookupError{Endpoint: "account", StatusCode: 503, Err: errors.New("unavailable")}}, false},
		{"match fetch", &StageError{Stage: StageMatchFetch, Err: &riot.MatchFetchError{MatchID: "EUW1_1", StatusCode: 500, Err: errors.New("boom")}}, false},
		{"deadline", &StageError{Stage: StageMatchList, Err: context.DeadlineExceeded}, false},
		// A cancelled caller says nothing about the video, the same job can still succeed
		{"cancelled mid request", &StageError{Stage: StageIdentity, Err: &riot.UpstreamLookupError{
			Endpoint:   "account",
			StatusCode: -1,
			Err:        &url.Error{Op: "Get", URL: "https://europe.api.riotgames.com", Err: context.Canceled},
		}}, false},
		{"cancelled", context.Canceled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Expected(tc.err))
		})
	}
}
