// Package opgg parses op.gg match-history deep links.
package opgg

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// MatchReference identifies one game from an op.gg link
type MatchReference struct {
	Platform    string // op.gg slug, e.g. "euw"
	GameName    string
	TagLine     string // may be empty when the Riot ID had no separator
	TimestampMs int64
}

// RiotID returns "gameName#tagLine"
func (m *MatchReference) RiotID() string {
	return m.GameName + "#" + m.TagLine
}

var (
	matchPathRegex = regexp.MustCompile(`/summoners/([^/]+)/([^/]+)/matches/[^/]+/(\d+)`)
	linkRegex      = regexp.MustCompile(`https://op\.gg/lol/[^\s]+`)
)

// ParseMatchURL extracts the platform, Riot ID and game timestamp from
// https://op.gg/lol/summoners/{platform}/{name}-{tag}/matches/{hash}/{timestampMs}.
// It returns false when the link does not have that shape.
func ParseMatchURL(raw string) (*MatchReference, bool) {
	m := matchPathRegex.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}

	timestamp, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return nil, false
	}

	riotID, err := url.PathUnescape(m[2])
	if err != nil {
		riotID = m[2]
	}

	gameName, tagLine := splitRiotID(riotID)
	if gameName == "" {
		return nil, false
	}

	return &MatchReference{
		Platform:    m[1],
		GameName:    gameName,
		TagLine:     tagLine,
		TimestampMs: timestamp,
	}, true
}

// riotIDSeparators are tried in order. op.gg writes "name-tag" but game names may
// themselves contain '-', so the last one wins.
var riotIDSeparators = []struct {
	sep  string
	last bool
}{
	{"-", true},
	{"#", false},
}

func splitRiotID(riotID string) (gameName, tagLine string) {
	for _, s := range riotIDSeparators {
		var i int
		if s.last {
			i = strings.LastIndex(riotID, s.sep)
		} else {
			i = strings.Index(riotID, s.sep)
		}
		if i >= 0 {
			return riotID[:i], riotID[i+len(s.sep):]
		}
	}
	return riotID, ""
}

// ExtractMatchURL returns the first op.gg link in text, or "" when there is none
func ExtractMatchURL(text string) string {
	return linkRegex.FindString(text)
}
