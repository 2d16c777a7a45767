package match_resolution

import (
	"errors"
	"fmt"

	"lolstreamsearch/lib/web/riot"
	"lolstreamsearch/lib/web/youtube"
)

type Stage string

const (
	StageParse      Stage = "parse"
	StageVideo      Stage = "video"
	StageIdentity   Stage = "identity"
	StageMatchList  Stage = "match_list"
	StageMatchFetch Stage = "match_fetch"
	StageProject    Stage = "project"
)

var (
	// ErrNoMatchFound means the player has no game in the linked time window
	ErrNoMatchFound = errors.New("no match found in time window")
	// ErrNoMatchURL means the video description carries no op.gg match link
	ErrNoMatchURL = errors.New("no op.gg match url in video description")
	// ErrParticipantNotFound means the fetched match does not contain the resolved player exactly once
	ErrParticipantNotFound = errors.New("player not found in match")
	// ErrInvalidMatchURL means the op.gg link does not have the match-history shape
	ErrInvalidMatchURL = errors.New("invalid op.gg match url")
)

// StageError records which step of a resolution failed
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage err was raised in, or "" for errors from outside a resolution
func FailedStage(err error) Stage {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return ""
}

// Expected reports whether err comes from the input or the player's history rather than
// from a broken dependency. Retrying an expected failure gives the same result.
func Expected(err error) bool {
	var lookupErr *riot.UpstreamLookupError
	var parseErr *youtube.ParseError
	switch {
	case errors.Is(err, ErrNoMatchFound),
		errors.Is(err, ErrNoMatchURL),
		errors.Is(err, ErrInvalidMatchURL),
		errors.Is(err, ErrParticipantNotFound),
		errors.As(err, &parseErr),
		errors.As(err, &lookupErr) && lookupErr.NotFound():
		return true
	}
	return false
}
