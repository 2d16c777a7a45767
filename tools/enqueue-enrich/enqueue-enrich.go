package enqueue

import (
	"bufio"
	"context"
	"flag"
	"os"
	"strings"

	"lolstreamsearch/lib/messaging/messages"
	"lolstreamsearch/lib/messaging/publishing"
	"lolstreamsearch/lib/messaging/routing"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/web/youtube"
)

var logger = logging.NewLogger("ENQUEUE_ENRICH_TOOL")

// EnqueueEnrich queues enrichment jobs for the video URLs given as arguments, or read
// one per line from stdin when none are given.
func EnqueueEnrich() {
	urls := flag.Args()[1:]
	if len(urls) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				urls = append(urls, line)
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Error("STDIN_READ_FAILED", err, nil)
			return
		}
	}

	publishing.Init()
	publisher := publishing.RabbitPublisher{}
	ctx := context.Background()

	queued, skipped := 0, 0
	for _, raw := range urls {
		videoURL, err := youtube.ValidateVideoURL(raw)
		if err != nil {
			logger.Warn("INVALID_VIDEO_URL", err, map[string]any{
				logging.URL: raw,
			})
			skipped++
			continue
		}

		msg := messages.NewVideoEnrichMessage(videoURL)
		if err := publisher.PublishJSONMessage(ctx, routing.VideoEnrich, msg); err != nil {
			logger.Error("ENRICH_PUBLISH_ERROR", err, map[string]any{
				logging.URL: videoURL,
			})
			return
		}
		queued++
		logger.Debug("ENRICH_QUEUED", map[string]any{
			logging.JOB_ID: msg.JobID,
			logging.URL:    videoURL,
		})
	}

	logger.Info("ENQUEUE_COMPLETE", map[string]any{
		logging.COUNT: queued,
		logging.TOTAL: len(urls),
		"skipped":     skipped,
	})
}
