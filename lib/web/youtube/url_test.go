package youtube

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoURLForms(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		id     string
		offset int
	}{
		{"short with feature", "https://youtu.be/Kryc40r9wOg?feature=shared&t=1737", "Kryc40r9wOg", 1737},
		{"long with seconds suffix", "https://www.youtube.com/watch?v=Kryc40r9wOg&t=1737s", "Kryc40r9wOg", 1737},
		{"long without offset", "https://www.youtube.com/watch?v=uZeMAnXhoIU", "uZeMAnXhoIU", 0},
		{"short without query", "https://youtu.be/uZeMAnXhoIU", "uZeMAnXhoIU", 0},
		{"duration offset", "https://youtu.be/uZeMAnXhoIU?t=1m14s", "uZeMAnXhoIU", 74},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, offset, err := ParseVideoURL(tt.url, false)
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.offset, offset)

			id, offset, err = ParseVideoURL(tt.url, true)
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestParseVideoURLRejectsBadIDs(t *testing.T) {
	for _, raw := range []string{
		"https://youtu.be/short",
		"https://www.youtube.com/watch?v=waytoolongvideoid",
		"https://www.youtube.com/watch?list=abc",
		"https://www.youtube.com/watch",
	} {
		_, _, err := ParseVideoURL(raw, false)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, raw)
	}
}

func TestValidateVideoURL(t *testing.T) {
	u, err := ValidateVideoURL("  http://www.youtube.com/watch?v=uZeMAnXhoIU&t=1774s ")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=uZeMAnXhoIU&t=1774s", u)

	u, err = ValidateVideoURL("HTTPS://YOUTU.BE/uZeMAnXhoIU")
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/uZeMAnXhoIU", u)

	for _, raw := range []string{
		"",
		"www.youtube.com/watch?v=uZeMAnXhoIU",
		"ftp://youtu.be/uZeMAnXhoIU",
		"https://vimeo.com/123456789",
		"https://www.youtube.com/watch?v=uZeMAnXhoIU&t=1 2",
		"https://youtu.be/uZeMAnXhoIU?x=" + strings.Repeat("a", 300),
	} {
		_, err := ValidateVideoURL(raw)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, raw)
	}
}

func TestParseVideoURLIgnoresSchemeAndHostCase(t *testing.T) {
	tests := []struct {
		url    string
		id     string
		offset int
	}{
		{"HTTPS://YOUTU.BE/uZeMAnXhoIU", "uZeMAnXhoIU", 0},
		{"Https://YouTu.be/Kryc40r9wOg?T=1737", "Kryc40r9wOg", 1737},
		{"HTTP://WWW.YOUTUBE.COM/WATCH?V=Kryc40r9wOg&T=1737s", "Kryc40r9wOg", 1737},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			id, offset, err := ParseVideoURL(tt.url, true)
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.offset, offset)
		})
	}
}
