package match_resolution

import (
	"context"
	"errors"
	"time"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/monitoring/global_metrics"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/web/opgg"
	"lolstreamsearch/lib/web/riot"
	"lolstreamsearch/lib/web/youtube"
)

var logger = logging.NewLogger("MATCH_RESOLUTION_SERVICE")

const (
	sourceOpgg  = "opgg"
	sourceVideo = "video"
)

// IdentityResolver resolves a Riot ID to the player's identity
type IdentityResolver interface {
	Resolve(ctx context.Context, region, gameName, tagLine string) (*dto.PlayerIdentity, error)
}

// MatchSource lists and fetches matches
type MatchSource interface {
	MatchLister
	GetMatch(ctx context.Context, region, matchID string) (*riot.Match, error)
}

// VideoInfoProvider reads video metadata. It never fails.
type VideoInfoProvider interface {
	GetVideoInfo(ctx context.Context, videoID string) *youtube.VideoInfo
}

// Resolver runs the op.gg link -> identity -> match id -> match -> record pipeline
type Resolver struct {
	identity  IdentityResolver
	matches   MatchSource
	projector *Projector
	videos    VideoInfoProvider
	timeout   time.Duration
}

type Option func(*Resolver)

// WithTimeout bounds each resolution. Zero disables the deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

func NewResolver(identity IdentityResolver, matches MatchSource, catalog Catalog, videos VideoInfoProvider, opts ...Option) *Resolver {
	r := &Resolver{
		identity:  identity,
		matches:   matches,
		projector: NewProjector(catalog),
		videos:    videos,
		timeout:   20 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// VideoResolution is a video together with the match found through its description
type VideoResolution struct {
	VideoID  string
	VideoURL string // validated, https
	Offset   int    // seconds
	Info     *youtube.VideoInfo
	MatchURL string
	Record   *dto.ParticipantRecord
}

// ResolveFromMatchURL returns the record of the player and game an op.gg match link points to
func (r *Resolver) ResolveFromMatchURL(ctx context.Context, opggURL string) (*dto.ParticipantRecord, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	start := time.Now()
	record, err := r.resolveMatchURL(ctx, opggURL)
	observe(sourceOpgg, start, err)
	if err != nil {
		logFailure(err, map[string]any{logging.URL: opggURL})
	}
	return record, err
}

// ResolveFromVideoURL finds the op.gg link in a video's description and resolves it
func (r *Resolver) ResolveFromVideoURL(ctx context.Context, videoURL string) (*dto.ParticipantRecord, error) {
	resolution, err := r.ResolveVideo(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	return resolution.Record, nil
}

// ResolveVideo is ResolveFromVideoURL keeping the video details gathered on the way
func (r *Resolver) ResolveVideo(ctx context.Context, videoURL string) (*VideoResolution, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	start := time.Now()
	resolution, err := r.resolveVideo(ctx, videoURL)
	observe(sourceVideo, start, err)
	if err != nil {
		logFailure(err, map[string]any{logging.URL: videoURL})
	}
	return resolution, err
}

func (r *Resolver) resolveVideo(ctx context.Context, videoURL string) (*VideoResolution, error) {
	validated, err := youtube.ValidateVideoURL(videoURL)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	videoID, offset, err := youtube.ParseVideoURL(validated, false)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}

	info := r.videos.GetVideoInfo(ctx, videoID)
	matchURL := opgg.ExtractMatchURL(info.Description)
	if matchURL == "" {
		logger.Debug("NO_MATCH_URL_IN_DESCRIPTION", map[string]any{
			logging.VIDEO_ID: videoID,
		})
		return nil, &StageError{Stage: StageVideo, Err: ErrNoMatchURL}
	}

	record, err := r.resolveMatchURL(ctx, matchURL)
	if err != nil {
		return nil, err
	}

	return &VideoResolution{
		VideoID:  videoID,
		VideoURL: validated,
		Offset:   offset,
		Info:     info,
		MatchURL: matchURL,
		Record:   record,
	}, nil
}

func (r *Resolver) resolveMatchURL(ctx context.Context, opggURL string) (*dto.ParticipantRecord, error) {
	ref, ok := opgg.ParseMatchURL(opggURL)
	if !ok {
		return nil, &StageError{Stage: StageParse, Err: ErrInvalidMatchURL}
	}

	// Unknown platforms fall back to the client's configured routing
	region := riot.RoutingForPlatform(ref.Platform)

	player, err := r.identity.Resolve(ctx, region, ref.GameName, ref.TagLine)
	if err != nil {
		return nil, &StageError{Stage: StageIdentity, Err: err}
	}

	matchID, err := FindMatchID(ctx, r.matches, region, player.PUUID, ref.TimestampMs)
	if err != nil {
		return nil, &StageError{Stage: StageMatchList, Err: err}
	}

	match, err := r.matches.GetMatch(ctx, region, matchID)
	if err != nil {
		return nil, &StageError{Stage: StageMatchFetch, Err: err}
	}

	record := r.projector.Project(ctx, match, player.PUUID)
	if record == nil {
		return nil, &StageError{Stage: StageProject, Err: ErrParticipantNotFound}
	}

	logger.Info("MATCH_RESOLVED", map[string]any{
		logging.MATCH_ID:  matchID,
		logging.GAME_NAME: player.GameName,
		logging.TAG_LINE:  player.TagLine,
		logging.PLATFORM:  ref.Platform,
		logging.CHAMPION:  record.ChampionName,
	})
	return record, nil
}

func (r *Resolver) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func observe(source string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = string(FailedStage(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	global_metrics.MatchResolution.WithLabelValues(source, outcome).Inc()
	global_metrics.MatchResolutionDuration.WithLabelValues(source).Observe(float64(time.Since(start).Milliseconds()))
}

// logFailure warns about expected failures and abandoned resolutions, and reports
// everything else as an error
func logFailure(err error, fields map[string]any) {
	fields[logging.STAGE] = string(FailedStage(err))
	if Expected(err) || errors.Is(err, context.Canceled) {
		logger.Warn("MATCH_RESOLUTION_FAILED", err, fields)
	} else {
		logger.Error("MATCH_RESOLUTION_ERROR", err, fields)
	}
}
