package backfill

import (
	"context"

	"lolstreamsearch/lib/database/clickhouse"
	"lolstreamsearch/lib/database/postgres"
	"lolstreamsearch/lib/services/video_catalog"
	"lolstreamsearch/lib/utils/logging"
)

var logger = logging.NewLogger("BACKFILL_MATCHUPS_TOOL")

// BackfillMatchups copies every stored video document into the ClickHouse matchup table.
// Run it against an empty video_matchup: matchup_counts sums every insert, including repeats.
func BackfillMatchups() {
	postgres.Wait()
	clickhouse.Wait()

	ctx := context.Background()
	store := video_catalog.NewPostgresStore(postgres.DB)
	sink := video_catalog.NewClickHouseSink(clickhouse.DB)

	docs, err := store.Filter(ctx, nil)
	if err != nil {
		logger.Error("DOCUMENT_LIST_FAILED", err, nil)
		return
	}

	failed := 0
	for i := range docs {
		if err := sink.Append(ctx, &docs[i]); err != nil {
			failed++
			logger.Warn("MATCHUP_APPEND_FAILED", err, map[string]any{
				logging.DOCUMENT_ID: docs[i].ID,
			})
		}
	}

	logger.Info("BACKFILL_COMPLETE", map[string]any{
		logging.TOTAL: len(docs),
		"failed":      failed,
	})
}
