package video_catalog

import (
	"context"
	"time"

	"lolstreamsearch/lib/dto"

	ch "github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MatchupSink receives every stored document for analytics
type MatchupSink interface {
	Append(ctx context.Context, doc *dto.VideoDocument) error
}

// ClickHouseSink writes one video_matchup row per document
type ClickHouseSink struct {
	conn ch.Conn
}

func NewClickHouseSink(conn ch.Conn) *ClickHouseSink {
	return &ClickHouseSink{conn: conn}
}

func (s *ClickHouseSink) Append(ctx context.Context, doc *dto.VideoDocument) error {
	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO video_matchup")
	if err != nil {
		return err
	}
	defer batch.Abort()

	err = batch.Append(matchupRow(doc, time.Now())...)
	if err != nil {
		return err
	}
	return batch.Send()
}

// matchupRow follows the column order of the video_matchup table
func matchupRow(doc *dto.VideoDocument, insertedAt time.Time) []any {
	return []any{
		doc.ID,
		doc.YTID,
		doc.Champion,
		doc.EnemyChampion,
		doc.Lane,
		doc.LolVersion,
		doc.Streamer,
		nonNil(doc.TeamChampions),
		nonNil(doc.EnemyTeamChampions),
		nonNil(doc.Runes),
		nonNil(doc.ChampionItems),
		doc.PublishedAt,
		insertedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
