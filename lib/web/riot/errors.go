package riot

import (
	"fmt"
	"net/http"
)

// UpstreamLookupError is returned when the account or match-list endpoint rejects a request
// (unknown player, bad API key, upstream outage)
type UpstreamLookupError struct {
	Endpoint   string // "account", "match_list"
	Subject    string // Riot ID or PUUID
	StatusCode int    // -1 when no response was received
	Err        error
}

func (e *UpstreamLookupError) Error() string {
	return fmt.Sprintf("%s lookup failed for %s: %v", e.Endpoint, e.Subject, e.Err)
}

func (e *UpstreamLookupError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the upstream answered 404, i.e. the subject does not exist
func (e *UpstreamLookupError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// MatchFetchError is returned when a resolved match id cannot be fetched
type MatchFetchError struct {
	MatchID    string
	StatusCode int
	Err        error
}

func (e *MatchFetchError) Error() string {
	return fmt.Sprintf("fetch match %s: %v", e.MatchID, e.Err)
}

func (e *MatchFetchError) Unwrap() error {
	return e.Err
}
