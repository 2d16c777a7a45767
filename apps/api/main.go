package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/messaging/publishing"
	"lolstreamsearch/lib/monitoring"
	"lolstreamsearch/lib/services/match_resolution"
	"lolstreamsearch/lib/services/video_catalog"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/web/youtube"
)

var (
	port   = flag.String("port", "", "port to listen on (defaults to API_PORT env var)")
	logger = logging.NewLogger("API")
)

func main() {
	logging.ParseFlags()

	flushSentry, recoverSentry := logger.InitSentry()
	defer flushSentry()
	defer recoverSentry()

	if *port == "" {
		*port = env.APIPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitoring.RegisterAPIMetrics()
	go metricsWorker()

	publishing.Init()

	s := &server{
		resolver:  match_resolution.NewFromEnv(ctx),
		catalog:   video_catalog.NewFromEnv(youtube.NewFromEnv()),
		publisher: publishing.RabbitPublisher{},
		apiKey:    env.APIKey,
	}

	httpServer := &http.Server{
		Addr:              ":" + *port,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("SERVER_SHUTDOWN_ERROR", err, nil)
		}
	}()

	logger.Info("SERVICE_READY", map[string]any{
		logging.PORT: *port,
	})
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("SERVER_FAILED", err, map[string]any{
			logging.PORT: *port,
		})
	}
	logger.Info("SERVICE_STOPPED", nil)
}
