package main

import (
	"fmt"
	"net/http"
	"strings"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/messaging/messages"
	"lolstreamsearch/lib/messaging/routing"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/web/youtube"
)

type matchRequest struct {
	OpggURL string `json:"opgg_url"`
}

type videoMatchRequest struct {
	YtURL string `json:"yt_url"`
}

type activeRequest struct {
	IsActive *bool `json:"isActive"`
}

type enrichRequest struct {
	VideoURL string `json:"videoUrl"`
}

type enrichResponse struct {
	JobID string `json:"jobId"`
}

func (s *server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.OpggURL) == "" {
		writeError(w, fmt.Errorf("%w: opgg_url is required", errBadRequest))
		return
	}

	record, err := s.resolver.ResolveFromMatchURL(r.Context(), req.OpggURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *server) handleMatchFromVideo(w http.ResponseWriter, r *http.Request) {
	var req videoMatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	record, err := s.resolver.ResolveFromVideoURL(r.Context(), req.YtURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleListVideos filters on every query parameter; repeated parameters give several values
func (s *server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	filters := map[string][]string(r.URL.Query())
	docs, err := s.catalog.Store().Filter(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *server) handleCreateVideo(w http.ResponseWriter, r *http.Request) {
	var sub dto.VideoSubmission
	if err := decodeBody(w, r, &sub); err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.catalog.CreateFromSubmission(r.Context(), &sub)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	doc, err := s.catalog.Store().Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Store().Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.IsActive == nil {
		writeError(w, fmt.Errorf("%w: isActive is required", errBadRequest))
		return
	}

	if err := s.catalog.Store().SetActive(r.Context(), r.PathValue("id"), *req.IsActive); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleVideoStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleEnrichVideo queues a video for match resolution. The URL is validated here so
// malformed links never reach the queue.
func (s *server) handleEnrichVideo(w http.ResponseWriter, r *http.Request) {
	var req enrichRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	videoURL, err := youtube.ValidateVideoURL(req.VideoURL)
	if err != nil {
		writeError(w, err)
		return
	}

	msg := messages.NewVideoEnrichMessage(videoURL)
	if err := s.publisher.PublishJSONMessage(r.Context(), routing.VideoEnrich, msg); err != nil {
		logger.Error("ENRICH_PUBLISH_ERROR", err, map[string]any{
			logging.JOB_ID: msg.JobID,
			logging.URL:    videoURL,
		})
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "enrichment queue unavailable"})
		return
	}

	logger.Info("ENRICH_QUEUED", map[string]any{
		logging.JOB_ID: msg.JobID,
		logging.URL:    videoURL,
	})
	writeJSON(w, http.StatusAccepted, enrichResponse{JobID: msg.JobID})
}

func (s *server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	field := r.PathValue("field")
	values, err := s.catalog.Store().Distinct(r.Context(), field)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{field: values})
}
