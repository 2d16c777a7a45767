package video_catalog

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterQuery(t *testing.T) {
	query, args, err := buildFilterQuery(map[string][]string{
		"teamChampions": {"Lee Sin", "Nunu Willump"},
		"champion":      {"Yorick", "Garen"},
		"lane":          {},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT document FROM video_document WHERE document->>'champion' = ANY($1) AND document->'teamChampions' @> $2::jsonb ORDER BY created_at DESC",
		query)
	require.Len(t, args, 2)
	assert.Equal(t, pq.Array([]string{"Yorick", "Garen"}), args[0])
	assert.Equal(t, `["Lee Sin","Nunu Willump"]`, args[1])
}

func TestBuildFilterQueryWithoutFilters(t *testing.T) {
	query, args, err := buildFilterQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT document FROM video_document ORDER BY created_at DESC", query)
	assert.Empty(t, args)
}

func TestBuildFilterQueryRejectsUnknownField(t *testing.T) {
	_, _, err := buildFilterQuery(map[string][]string{"champion'; DROP TABLE video_document; --": {"x"}})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestBuildDistinctQuery(t *testing.T) {
	query, err := buildDistinctQuery("runes")
	require.NoError(t, err)
	assert.Contains(t, query, "jsonb_array_elements_text(document->'runes')")

	query, err = buildDistinctQuery("champion")
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT DISTINCT document->>'champion' AS value FROM video_document WHERE document->>'champion' IS NOT NULL ORDER BY value",
		query)

	_, err = buildDistinctQuery("description")
	assert.ErrorIs(t, err, ErrUnknownField)
}
