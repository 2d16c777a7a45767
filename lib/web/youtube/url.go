package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	maxURLLength  = 300
	videoIDLength = 11
)

var videoURLRegex = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[a-zA-Z0-9_-]{11}([?&][^&\s]*)*$`)

// ParseError reports a video URL that cannot be used
type ParseError struct {
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid youtube url %q: %s", e.URL, e.Reason)
}

// ValidateVideoURL checks that raw is an absolute http(s) YouTube watch or short link
// and returns it trimmed, with scheme and host lowercased and http upgraded to https.
func ValidateVideoURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", &ParseError{URL: raw, Reason: "empty url"}
	}
	if len(u) > maxURLLength {
		return "", &ParseError{URL: raw, Reason: "url is too long"}
	}

	parsed, err := url.Parse(u)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", &ParseError{URL: raw, Reason: "invalid url format"}
	}

	if !videoURLRegex.MatchString(u) {
		return "", &ParseError{URL: raw, Reason: "not a youtube video url"}
	}

	// Scheme and host are case-insensitive, the video id is not
	rest := u[len(parsed.Scheme)+len("://")+len(parsed.Host):]
	return "https://" + strings.ToLower(parsed.Host) + rest, nil
}

// ParseVideoURL returns the video id and start offset in seconds of
// https://youtu.be/<id>?t=<n> or https://www.youtube.com/watch?v=<id>&t=<n>s links.
// With validate set the URL is first checked by ValidateVideoURL.
func ParseVideoURL(raw string, validate bool) (string, int, error) {
	u := raw
	if validate {
		var err error
		if u, err = ValidateVideoURL(raw); err != nil {
			return "", 0, err
		}
	}

	var videoID, offset string
	if i := strings.Index(strings.ToLower(u), "youtu.be/"); i >= 0 {
		id, query, _ := strings.Cut(u[i+len("youtu.be/"):], "?")
		videoID = id
		offset = queryParam(query, "t")
	} else {
		_, query, ok := strings.Cut(u, "?")
		if !ok {
			return "", 0, &ParseError{URL: raw, Reason: "invalid youtube url structure"}
		}
		videoID = queryParam(query, "v")
		offset = queryParam(query, "t")
	}

	if len(videoID) != videoIDLength {
		return "", 0, &ParseError{URL: raw, Reason: "invalid youtube video id"}
	}

	seconds, err := parseOffset(offset)
	if err != nil {
		return "", 0, &ParseError{URL: raw, Reason: "invalid timestamp " + strconv.Quote(offset)}
	}
	return videoID, seconds, nil
}

// queryParam returns the value of the first key=value pair named key in a raw query string.
// Keys match case-insensitively.
func queryParam(query, key string) string {
	for _, param := range strings.Split(query, "&") {
		name, value, ok := strings.Cut(param, "=")
		if ok && strings.EqualFold(name, key) {
			return value
		}
	}
	return ""
}

// parseOffset accepts "", "1737", "1737s" and duration forms such as "1h2m3s"
func parseOffset(offset string) (int, error) {
	if offset == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(offset, "s")); err == nil && n >= 0 {
		return n, nil
	}
	d, err := time.ParseDuration(offset)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid offset %q", offset)
	}
	return int(d.Seconds()), nil
}
