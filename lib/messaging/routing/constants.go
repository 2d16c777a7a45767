package routing

// Queue routing constants for all async processing
const (
	// Resolve a video's match and store it in the catalog
	VideoEnrich = "video_enrich"
)

// Queues lists every queue a publisher may write to
var Queues = []string{
	VideoEnrich,
}
