package logging

import (
	"flag"
	"strings"
	"sync"

	"lolstreamsearch/lib/env"
)

var (
	verbose          bool
	logLevel         string
	once             sync.Once
	verboseFlag      *bool
	verboseLongFlag  *bool
	logLevelFlag     *string
	logLevelLongFlag *string
)

// logLevelPriority maps log levels to their numeric priority (higher = more important)
var logLevelPriority = map[string]int{
	Debug: 0,
	Info:  1,
	Warn:  2,
	Error: 3,
	// fatal is not a configurable level - it's always shown when error level is enabled
}

func init() {
	logLevel = Info

	if isValidLogLevel(env.LogLevel) {
		logLevel = strings.ToLower(env.LogLevel)
	}

	verboseFlag = flag.Bool("v", false, "enable verbose (debug) logging")
	verboseLongFlag = flag.Bool("verbose", false, "enable verbose (debug) logging")
	logLevelFlag = flag.String("log", "", "set log level (debug, info, warn, error)")
	logLevelLongFlag = flag.String("log-level", "", "set log level (debug, info, warn, error)")
}

// ParseFlags parses command-line flags and applies the logging flags (-v, -verbose, -log, -log-level).
//
// Call it in main() instead of flag.Parse(), after defining the application's own flags.
// Parsing happens once; later calls are no-ops.
func ParseFlags() {
	once.Do(func() {
		if !flag.Parsed() {
			flag.Parse()
		}

		// -v overrides the env log level
		if *verboseFlag || *verboseLongFlag {
			verbose = true
			logLevel = Debug
		}

		// -log-level overrides both the env var and -v
		for _, lvl := range []string{*logLevelFlag, *logLevelLongFlag} {
			if isValidLogLevel(lvl) {
				logLevel = strings.ToLower(lvl)
				verbose = logLevel == Debug
				break
			}
		}
	})
}

func isValidLogLevel(level string) bool {
	if level == "" {
		return false
	}
	_, ok := logLevelPriority[strings.ToLower(level)]
	return ok
}

// IsVerbose returns true if verbose logging is enabled via either flag or log level is debug
func IsVerbose() bool {
	return verbose || logLevel == Debug
}

// GetLogLevel returns the current log level
func GetLogLevel() string {
	return logLevel
}

// SetLogLevel programmatically sets the log level
func SetLogLevel(level string) {
	if isValidLogLevel(level) {
		logLevel = strings.ToLower(level)
		verbose = logLevel == Debug
	}
}

// ShouldLog checks if a given log level should be logged based on current log level
func ShouldLog(level string) bool {
	return logLevelPriority[level] >= logLevelPriority[logLevel]
}
