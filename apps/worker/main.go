package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"lolstreamsearch/lib/messaging/processing"
	qw "lolstreamsearch/lib/messaging/queue-workers"
	"lolstreamsearch/lib/messaging/rabbit"
	"lolstreamsearch/lib/monitoring"
	"lolstreamsearch/lib/services/match_resolution"
	"lolstreamsearch/lib/services/video_catalog"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/web/youtube"
)

var (
	topicName   = flag.String("topic", "", "queue to consume. If empty, starts all topics.")
	metricsPort = flag.String("metrics-port", "", "overrides WORKER_METRICS_PORT")
	logger      = logging.NewLogger("WORKER")
)

func main() {
	logging.ParseFlags()

	flushSentry, recoverSentry := logger.InitSentry()
	defer flushSentry()
	defer recoverSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitoring.RegisterWorkerMetrics(*metricsPort)
	rabbit.Init()

	videos := youtube.NewFromEnv()
	resolver := match_resolution.NewFromEnv(ctx)
	catalog := video_catalog.NewFromEnv(videos)

	topics := []processing.Topic{
		qw.VideoEnrichTopic(resolver, catalog),
	}

	var managers []*processing.TopicManager
	for _, t := range topics {
		if *topicName != "" && t.Config.QueueName != *topicName {
			continue
		}
		tm, err := processing.StartTopicManager(ctx, t, logger)
		if err != nil {
			logger.Error("TOPIC_START_FAILED", err, map[string]any{
				logging.QUEUE: t.Config.QueueName,
			})
			continue
		}
		managers = append(managers, tm)
		logger.Info("TOPIC_STARTED", map[string]any{
			logging.QUEUE:        t.Config.QueueName,
			logging.WORKER_COUNT: tm.WorkerCount(),
		})
	}

	if len(managers) == 0 {
		logger.Fatal("NO_TOPICS_STARTED", nil, map[string]any{
			logging.QUEUE: *topicName,
		})
	}

	logger.Info("SERVICE_READY", map[string]any{
		logging.COUNT: len(managers),
	})
	for _, tm := range managers {
		tm.Wait()
	}
	logger.Info("SERVICE_STOPPED", nil)
}
