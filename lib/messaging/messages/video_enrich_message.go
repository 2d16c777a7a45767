package messages

import "github.com/google/uuid"

// VideoEnrichMessage matches lib/messaging/queue-workers/video_enrich.go
type VideoEnrichMessage struct {
	JobID    string `json:"jobId"`
	VideoURL string `json:"videoUrl"`
}

// NewVideoEnrichMessage creates a message with a fresh job id
func NewVideoEnrichMessage(videoURL string) VideoEnrichMessage {
	return VideoEnrichMessage{
		JobID:    uuid.NewString(),
		VideoURL: videoURL,
	}
}
