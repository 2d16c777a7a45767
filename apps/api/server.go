package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/messaging/publishing"
	"lolstreamsearch/lib/services/video_catalog"
	"lolstreamsearch/lib/utils/logging"
)

const maxBodyBytes = 1 << 20

type matchResolver interface {
	ResolveFromMatchURL(ctx context.Context, opggURL string) (*dto.ParticipantRecord, error)
	ResolveFromVideoURL(ctx context.Context, videoURL string) (*dto.ParticipantRecord, error)
}

type server struct {
	resolver  matchResolver
	catalog   *video_catalog.Service
	publisher publishing.MessagePublisher
	apiKey    string // empty leaves mutating routes open
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /league/match", s.handleMatch)
	mux.HandleFunc("POST /league/match-from-video", s.handleMatchFromVideo)

	mux.HandleFunc("GET /ytvideos", s.handleListVideos)
	mux.HandleFunc("POST /ytvideos", s.requireKey(s.handleCreateVideo))
	mux.HandleFunc("POST /ytvideos/enrich", s.requireKey(s.handleEnrichVideo))
	mux.HandleFunc("GET /ytvideos/{id}", s.handleGetVideo)
	mux.HandleFunc("DELETE /ytvideos/{id}", s.requireKey(s.handleDeleteVideo))
	mux.HandleFunc("PUT /ytvideos/{id}/active", s.requireKey(s.handleSetActive))
	mux.HandleFunc("GET /ytvideos/{id}/stats", s.handleVideoStats)

	mux.HandleFunc("GET /keywords/{field}", s.handleKeywords)

	return instrument(mux)
}

// requireKey rejects requests without the configured X-API-Key
func (s *server) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get("X-API-Key")), []byte(s.apiKey)) != 1 {
			logger.Warn("SECURITY_CHECK_FAILED", errors.New("api key mismatch"), map[string]any{
				logging.METHOD: r.Method,
				logging.PATH:   r.URL.Path,
			})
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing or invalid api key"})
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records one metrics event per request, labelled by the matched route pattern
func instrument(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		mux.ServeHTTP(rec, r)

		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}
		recordRequest(route, rec.status, time.Since(start))
		logger.Debug("REQUEST_SERVED", map[string]any{
			logging.METHOD:      r.Method,
			logging.PATH:        r.URL.Path,
			logging.STATUS_CODE: rec.status,
			logging.DURATION:    time.Since(start).Milliseconds(),
		})
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("RESPONSE_ENCODE_ERROR", err, nil)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), errorBody{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return fmt.Errorf("%w: invalid json body: %v", errBadRequest, err)
	}
	return nil
}
