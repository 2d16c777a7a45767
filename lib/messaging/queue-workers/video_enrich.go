package queueworkers

import (
	"context"
	"fmt"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/messaging/messages"
	"lolstreamsearch/lib/messaging/processing"
	"lolstreamsearch/lib/messaging/routing"
	"lolstreamsearch/lib/services/match_resolution"
	"lolstreamsearch/lib/utils/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

// VideoResolver finds the match played in a video
type VideoResolver interface {
	ResolveVideo(ctx context.Context, videoURL string) (*match_resolution.VideoResolution, error)
}

// ResolutionStore persists a resolved video
type ResolutionStore interface {
	StoreResolution(ctx context.Context, resolution *match_resolution.VideoResolution) (*dto.VideoDocument, error)
}

// VideoEnrichTopic creates the video enrichment topic. Every call to the Riot API goes
// through one rate limiter, so a handful of workers is enough.
func VideoEnrichTopic(resolver VideoResolver, store ResolutionStore) processing.Topic {
	return processing.NewTopic(processing.TopicConfig{
		QueueName:          routing.VideoEnrich,
		MinWorkers:         1,
		MaxWorkers:         4,
		DesiredWorkers:     2,
		PrefetchCount:      1,
		ScaleUpThreshold:   50,
		ScaleDownThreshold: 5,
	}, processVideoEnrich(resolver, store))
}

func processVideoEnrich(resolver VideoResolver, store ResolutionStore) processing.ProcessorFunc {
	return func(worker processing.WorkerInterface, message amqp.Delivery) error {
		msg, err := processing.ParseJSON[messages.VideoEnrichMessage](worker, message.Body)
		if err != nil {
			return err
		}
		fields := map[string]any{
			logging.JOB_ID: msg.JobID,
			logging.URL:    msg.VideoURL,
		}
		worker.Debug("PROCESSING_VIDEO_ENRICH", fields)

		resolution, err := resolver.ResolveVideo(worker.Context(), msg.VideoURL)
		if err != nil {
			// A stopped worker sees cancelled calls and placeholder video info, not the real outcome
			if cause := context.Cause(worker.Context()); cause != nil {
				return fmt.Errorf("video enrich %s interrupted: %w", msg.JobID, cause)
			}
			// The same video would fail the same way again
			if match_resolution.Expected(err) {
				fields[logging.STAGE] = string(match_resolution.FailedStage(err))
				worker.Info("VIDEO_ENRICH_SKIPPED", fields)
				return nil
			}
			return err
		}

		doc, err := store.StoreResolution(worker.Context(), resolution)
		if err != nil {
			return err
		}

		fields[logging.DOCUMENT_ID] = doc.ID
		fields[logging.CHAMPION] = doc.Champion
		worker.Info("VIDEO_ENRICHED", fields)
		return nil
	}
}
