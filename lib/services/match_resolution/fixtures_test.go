package match_resolution

import (
	"encoding/json"
	"os"
	"testing"

	"lolstreamsearch/lib/web/riot"

	"github.com/stretchr/testify/require"
)

const (
	fixtureMatchID = "EUW1_7594636490"
	fixturePUUID   = "puuid-chamkin"
	fixtureOpggURL = "https://op.gg/lol/summoners/euw/Chamkin-EUW/matches/KqFazGhft1WJ367iLRId1hqUYUZqfg9O20CuUS8cvCI%3D/1762466711000"
)

func loadFixtureMatch(t *testing.T) *riot.Match {
	t.Helper()
	raw, err := os.ReadFile("testdata/" + fixtureMatchID + ".json")
	require.NoError(t, err)

	var match riot.Match
	require.NoError(t, json.Unmarshal(raw, &match))
	return &match
}

func fixtureMatchJSON(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile("testdata/" + fixtureMatchID + ".json")
	require.NoError(t, err)
	return raw
}
