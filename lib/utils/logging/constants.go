package logging

// Log levels
const (
	DEBUG = "DEBUG" // Diagnostic information, only with -v or LOG_LEVEL=debug
	INFO  = "INFO"  // Service start/stop, configuration assumptions
	WARN  = "WARN"  // Recoverable issues (fallbacks, degraded lookups, retries) - no alerts
	ERROR = "ERROR" // Operation-fatal errors - forwarded to Sentry
	FATAL = "FATAL" // Service-fatal errors, exits with code 1
)

const (
	Error = "error"
	Fatal = "fatal"
	Warn  = "warn"
	Info  = "info"
	Debug = "debug"
)

// Standard logging field keys
const (
	// Core fields
	ACTION  = "action"
	CACHE   = "cache"
	COUNT   = "count"
	KEY     = "key"
	NAME    = "name"
	PATH    = "path"
	REASON  = "reason"
	STAGE   = "stage"
	STATUS  = "status"
	TYPE    = "type"
	VERSION = "version"

	// Infrastructure fields
	HOST    = "host"
	PORT    = "port"
	QUEUE   = "queue"
	SERVICE = "service"
	SOURCE  = "source"

	// Network/HTTP fields
	ENDPOINT    = "endpoint"
	METHOD      = "method"
	STATUS_CODE = "status_code"
	URL         = "url"

	// Database fields
	ATTEMPTS = "attempts"
	FILENAME = "filename"
	TABLE    = "table"

	// Domain fields
	CHAMPION    = "champion"
	DOCUMENT_ID = "document_id"
	GAME_NAME   = "game_name"
	MATCH_ID    = "match_id"
	PLATFORM    = "platform"
	PUUID       = "puuid"
	REGION      = "region"
	TAG_LINE    = "tag_line"
	TIMESTAMP   = "timestamp"
	VIDEO_ID    = "video_id"
	WINDOW      = "window"

	// Process/Operation fields
	ATTEMPT      = "attempt"
	DIRECTION    = "direction"
	FROM         = "from"
	JOB_ID       = "job_id"
	QUEUE_DEPTH  = "queue_depth"
	TO           = "to"
	TOTAL        = "total"
	WORKER_COUNT = "worker_count"
	WORKER_ID    = "worker_id"

	// Timing
	DURATION = "duration"
)
