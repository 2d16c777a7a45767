package match_resolution

import (
	"context"
)

// matchWindowSeconds is how long after the linked timestamp a game may have started
const matchWindowSeconds = 300

// MatchLister lists match ids of a player within an epoch-second window
type MatchLister interface {
	GetMatchIDs(ctx context.Context, region, puuid string, startTime, endTime int64) ([]string, error)
}

// FindMatchID returns the match puuid started within five minutes of timestampMs.
// When several qualify the first listed one is used. No match yields ErrNoMatchFound.
func FindMatchID(ctx context.Context, lister MatchLister, region, puuid string, timestampMs int64) (string, error) {
	start := timestampMs / 1000
	ids, err := lister.GetMatchIDs(ctx, region, puuid, start, start+matchWindowSeconds)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", ErrNoMatchFound
	}
	return ids[0], nil
}
