package processing

import (
	"encoding/json"
	"fmt"
)

// ParseJSON decodes a message body. A malformed body is a permanent failure, so it is logged here
// and returned for the worker to dead-letter.
func ParseJSON[T any](worker WorkerInterface, body []byte) (T, error) {
	var msg T
	if err := json.Unmarshal(body, &msg); err != nil {
		worker.Warn("MESSAGE_PARSE_ERROR", err, map[string]any{
			"size": len(body),
		})
		return msg, fmt.Errorf("failed to parse message: %w", err)
	}
	return msg, nil
}
