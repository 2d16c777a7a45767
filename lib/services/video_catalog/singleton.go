package video_catalog

import (
	"lolstreamsearch/lib/database/clickhouse"
	"lolstreamsearch/lib/database/postgres"
	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/services/match_resolution"
)

// NewFromEnv builds a Service on the shared PostgreSQL connection. Stored documents are
// copied to ClickHouse unless CLICKHOUSE_ENABLED=false.
func NewFromEnv(videos match_resolution.VideoInfoProvider) *Service {
	postgres.Wait()

	var opts []Option
	if env.ClickHouseEnabled {
		clickhouse.Wait()
		opts = append(opts, WithMatchupSink(NewClickHouseSink(clickhouse.DB)))
	}
	return NewService(NewPostgresStore(postgres.DB), videos, opts...)
}
