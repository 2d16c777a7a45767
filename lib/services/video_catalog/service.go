package video_catalog

import (
	"context"
	"fmt"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/services/match_resolution"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/web/youtube"
)

var logger = logging.NewLogger("VIDEO_CATALOG_SERVICE")

// Service creates catalog documents from hand submissions and resolved videos
type Service struct {
	store  Store
	videos match_resolution.VideoInfoProvider
	sink   MatchupSink
}

type Option func(*Service)

// WithMatchupSink copies stored documents to an analytics sink
func WithMatchupSink(sink MatchupSink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

func NewService(store Store, videos match_resolution.VideoInfoProvider, opts ...Option) *Service {
	s := &Service{
		store:  store,
		videos: videos,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Store() Store {
	return s.store
}

// CreateFromSubmission stores a hand submitted video. The matchup comes from the
// submission, the rest from the video itself. New documents start inactive.
func (s *Service) CreateFromSubmission(ctx context.Context, sub *dto.VideoSubmission) (*dto.VideoDocument, error) {
	validated, err := youtube.ValidateVideoURL(sub.VideoURL)
	if err != nil {
		return nil, err
	}
	videoID, offset, err := youtube.ParseVideoURL(validated, false)
	if err != nil {
		return nil, err
	}

	info := s.videos.GetVideoInfo(ctx, videoID)
	doc := &dto.VideoDocument{
		YTID:               videoID,
		Timestamp:          offset,
		Title:              info.Title,
		Description:        info.Description,
		VideoURL:           validated,
		PublishedAt:        info.PublishedAt,
		Champion:           sub.Champion,
		EnemyChampion:      sub.EnemyChampion,
		TeamChampions:      nonNil(sub.TeamChampions),
		EnemyTeamChampions: nonNil(sub.EnemyTeamChampions),
		Lane:               sub.Lane,
		Runes:              nonNil(sub.Runes),
		ChampionItems:      nonNil(sub.ChampionItems),
		LolVersion:         sub.LolVersion,
		Streamer:           info.Channel,
		IsActive:           false,
	}

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// StoreResolution builds and stores the document of a resolved video
func (s *Service) StoreResolution(ctx context.Context, resolution *match_resolution.VideoResolution) (*dto.VideoDocument, error) {
	doc := BuildFromResolution(resolution)
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Stats returns live view and like counts of a stored video
func (s *Service) Stats(ctx context.Context, id string) (*dto.VideoStats, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	info := s.videos.GetVideoInfo(ctx, doc.YTID)
	return &dto.VideoStats{
		Views: info.ViewCount,
		Likes: info.LikeCount,
	}, nil
}

func (s *Service) save(ctx context.Context, doc *dto.VideoDocument) error {
	if err := s.store.Create(ctx, doc); err != nil {
		logger.Error("VIDEO_DOCUMENT_STORE_ERROR", err, map[string]any{
			logging.VIDEO_ID: doc.YTID,
		})
		return fmt.Errorf("store video %s: %w", doc.YTID, err)
	}

	logger.Info("VIDEO_DOCUMENT_STORED", map[string]any{
		logging.DOCUMENT_ID: doc.ID,
		logging.VIDEO_ID:    doc.YTID,
		logging.CHAMPION:    doc.Champion,
	})

	if s.sink != nil {
		if err := s.sink.Append(ctx, doc); err != nil {
			logger.Warn("VIDEO_MATCHUP_APPEND_FAILED", err, map[string]any{
				logging.DOCUMENT_ID: doc.ID,
			})
		}
	}
	return nil
}

// BuildFromResolution fills a document from a video and the record of the match played in it
func BuildFromResolution(resolution *match_resolution.VideoResolution) *dto.VideoDocument {
	record := resolution.Record
	info := resolution.Info

	team, enemy := record.Participants.Champions(record.TeamID)
	enemyChampion := ""
	if len(record.Participants.Opponent) > 0 {
		enemyChampion = record.Participants.Opponent[0].ChampionName
	}

	return &dto.VideoDocument{
		YTID:               resolution.VideoID,
		Timestamp:          resolution.Offset,
		Title:              info.Title,
		Description:        info.Description,
		VideoURL:           resolution.VideoURL,
		PublishedAt:        info.PublishedAt,
		Champion:           record.ChampionName,
		EnemyChampion:      enemyChampion,
		TeamChampions:      team,
		EnemyTeamChampions: enemy,
		Lane:               record.IndividualPosition,
		Runes:              record.Runes(),
		ChampionItems:      record.Items(),
		LolVersion:         record.GameVersion,
		Streamer:           info.Channel,
		IsActive:           false,
	}
}
