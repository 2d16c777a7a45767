package resolvematch

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/services/match_resolution"
	"lolstreamsearch/lib/utils/logging"
)

var logger = logging.NewLogger("RESOLVE_MATCH_TOOL")

// ResolveMatch prints the participant record for an op.gg match link or a YouTube video link
func ResolveMatch() {
	if flag.NArg() < 2 {
		logger.Error("USAGE_ERROR", nil, map[string]any{
			logging.REASON: "usage: tools resolve-match <op.gg url | youtube url>",
		})
		return
	}
	link := flag.Arg(1)

	ctx := context.Background()
	resolver := match_resolution.NewFromEnv(ctx)

	var record *dto.ParticipantRecord
	var err error
	if strings.Contains(link, "op.gg") {
		record, err = resolver.ResolveFromMatchURL(ctx, link)
	} else {
		record, err = resolver.ResolveFromVideoURL(ctx, link)
	}
	if err != nil {
		logger.Error("RESOLVE_FAILED", err, map[string]any{
			logging.URL:   link,
			logging.STAGE: match_resolution.FailedStage(err),
		})
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		logger.Error("OUTPUT_FAILED", err, nil)
	}
}
