package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"lolstreamsearch/lib/utils/logging"
	backfill "lolstreamsearch/tools/backfill-matchups"
	enqueue "lolstreamsearch/tools/enqueue-enrich"
	refreshcatalog "lolstreamsearch/tools/refresh-catalog"
	resolvematch "lolstreamsearch/tools/resolve-match"

	"github.com/joho/godotenv"
)

var logger = logging.NewLogger("TOOLS")

var commands = map[string]func(){
	"resolve-match":     resolvematch.ResolveMatch,
	"refresh-catalog":   refreshcatalog.RefreshCatalog,
	"enqueue-enrich":    enqueue.EnqueueEnrich,
	"backfill-matchups": backfill.BackfillMatchups,
}

func main() {
	logging.ParseFlags()

	if flag.NArg() == 0 {
		printUsage(commands)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	fn, exists := commands[cmd]
	if !exists {
		fmt.Printf("Unknown command: %s\n", cmd)
		printUsage(commands)
		os.Exit(1)
	}

	// Variables may come from the environment instead
	if err := godotenv.Load(); err != nil {
		logger.Debug("ENV_FILE_NOT_LOADED", map[string]any{
			logging.REASON: err.Error(),
		})
	}

	fn()
}

func printUsage(commands map[string]func()) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Usage: ./bin/tools <command> [args]")
	fmt.Println("\nAvailable commands:")
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
}
