package main

import (
	"context"
	"errors"
	"net/http"

	"lolstreamsearch/lib/services/match_resolution"
	"lolstreamsearch/lib/services/video_catalog"
	"lolstreamsearch/lib/web/riot"
	"lolstreamsearch/lib/web/youtube"
)

// errBadRequest marks request bodies and parameters the handlers reject themselves
var errBadRequest = errors.New("bad request")

// statusForError maps pipeline and catalog errors to HTTP status codes
func statusForError(err error) int {
	var parseErr *youtube.ParseError
	var lookupErr *riot.UpstreamLookupError
	var fetchErr *riot.MatchFetchError

	switch {
	case errors.Is(err, errBadRequest),
		errors.As(err, &parseErr),
		errors.Is(err, match_resolution.ErrInvalidMatchURL),
		errors.Is(err, video_catalog.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, match_resolution.ErrNoMatchFound),
		errors.Is(err, match_resolution.ErrNoMatchURL),
		errors.Is(err, match_resolution.ErrParticipantNotFound),
		errors.Is(err, video_catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &lookupErr):
		if lookupErr.NotFound() {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case match_resolution.FailedStage(err) != "":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
