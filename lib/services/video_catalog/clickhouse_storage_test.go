package video_catalog

import (
	"testing"

	"lolstreamsearch/lib/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchupRowKeepsListsNonNil(t *testing.T) {
	row := matchupRow(BuildFromResolution(yorickResolution()), *publishedAt())
	require.Len(t, row, 13)
	assert.Equal(t, []string{"Lee Sin"}, row[7])

	empty := matchupRow(&dto.VideoDocument{}, *publishedAt())
	assert.Equal(t, []string{}, empty[7])
	assert.Equal(t, []string{}, empty[10])
}
