package env

import (
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

var (
	// Riot
	RiotAPIKey          string
	RiotAPIKeyFile      string
	RiotRouting         string
	RiotDefaultPlatform string
	RiotMatchCount      int

	// Data Dragon
	DDragonURLBase      string
	DDragonSnapshotPath string

	// YouTube
	YouTubeAPIKey  string
	YouTubeURLBase string

	// Database
	PostgresHost     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresPort     string

	// ClickHouse
	ClickHouseEnabled  bool
	ClickHouseHost     string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseDB       string
	ClickHousePort     string

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQUser     string
	RabbitMQPassword string
	RabbitMQPort     string

	// Redis (optional, PUUID cache)
	RedisAddr string

	// Sentry (optional)
	SentryDSN   string
	Environment string
	Release     string

	// Logging
	LogLevel   string
	StdoutPath string
	StderrPath string

	// API
	APIKey string // guards mutating endpoints when set

	// Ports
	APIPort           string
	APIMetricsPort    string
	WorkerMetricsPort string

	// Pipeline
	ResolveTimeout time.Duration
)

var envIssues []string

func init() {
	// Load .env file (ignore error - variables may be set via environment)
	godotenv.Load()

	// Riot
	RiotAPIKey = getEnv("RIOT_API_KEY")
	RiotAPIKeyFile = getEnv("RIOT_API_KEY_FILE")
	if RiotAPIKey == "" && RiotAPIKeyFile == "" {
		envIssues = append(envIssues, "RIOT_API_KEY")
	}
	RiotRouting = getEnvWithDefault("RIOT_ROUTING", "europe")
	RiotDefaultPlatform = getEnvWithDefault("RIOT_DEFAULT_PLATFORM", "EUW1")
	RiotMatchCount = getIntEnvWithDefault("RIOT_MATCH_COUNT", 100)

	// Data Dragon
	DDragonURLBase = getEnvWithDefault("DDRAGON_URL_BASE", "https://ddragon.leagueoflegends.com")
	DDragonSnapshotPath = getEnv("DDRAGON_SNAPSHOT_PATH") // Optional, disables the snapshot when empty

	// YouTube
	YouTubeAPIKey = requireEnv("YT_API_KEY")
	YouTubeURLBase = getEnvWithDefault("YT_URL_BASE", "https://www.googleapis.com")

	// Database (defaults: user=postgres, password="", db=lolstreamsearch)
	PostgresHost = getHostEnv("POSTGRES_HOST")
	PostgresUser = getEnvWithDefault("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD")
	PostgresDB = getEnvWithDefault("POSTGRES_DB", "lolstreamsearch")
	PostgresPort = getEnvWithDefault("POSTGRES_PORT", "5432")

	// ClickHouse (defaults: user=default, password="", db=default)
	ClickHouseEnabled = getEnvWithDefault("CLICKHOUSE_ENABLED", "true") == "true"
	ClickHouseHost = getHostEnv("CLICKHOUSE_HOST")
	ClickHouseUser = getEnvWithDefault("CLICKHOUSE_USER", "default")
	ClickHousePassword = getEnv("CLICKHOUSE_PASSWORD")
	ClickHouseDB = getEnvWithDefault("CLICKHOUSE_DB", "default")
	ClickHousePort = getEnvWithDefault("CLICKHOUSE_PORT", "9000")

	// RabbitMQ (defaults: user=guest, password=guest)
	RabbitMQHost = getHostEnv("RABBITMQ_HOST")
	RabbitMQUser = getEnvWithDefault("RABBITMQ_USER", "guest")
	RabbitMQPassword = getEnvWithDefault("RABBITMQ_PASSWORD", "guest")
	RabbitMQPort = getEnvWithDefault("RABBITMQ_PORT", "5672")

	RedisAddr = getEnv("REDIS_ADDR")

	SentryDSN = getEnv("SENTRY_DSN")
	Environment = getEnvWithDefault("ENVIRONMENT", "development")
	Release = getEnv("RELEASE")

	LogLevel = getEnv("LOG_LEVEL")
	StdoutPath = getEnv("STDOUT")
	StderrPath = getEnv("STDERR")

	APIKey = getEnv("API_KEY")
	APIPort = getEnvWithDefault("API_PORT", "8000")
	APIMetricsPort = getEnv("API_METRICS_PORT")
	WorkerMetricsPort = getEnv("WORKER_METRICS_PORT")

	ResolveTimeout = getDurationEnvWithDefault("RESOLVE_TIMEOUT", 20*time.Second)

	// Package tests construct their own clients and never read the credentials
	if len(envIssues) > 0 && !testing.Testing() {
		panic("required environment variables are not set: " + strings.Join(envIssues, ", "))
	}
}

func getEnv(key string) string {
	return os.Getenv(key)
}

func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		envIssues = append(envIssues, key)
	}
	return val
}

func getEnvWithDefault(key string, defaultValue string) string {
	if val := getEnv(key); val != "" {
		return val
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	val := getEnv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		envIssues = append(envIssues, key+" (not an integer)")
		return defaultValue
	}
	return n
}

func getDurationEnvWithDefault(key string, defaultValue time.Duration) time.Duration {
	val := getEnv(key)
	if val == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		envIssues = append(envIssues, key+" (not a duration)")
		return defaultValue
	}
	return d
}

func getHostEnv(key string) string {
	return getEnvWithDefault(key, "localhost")
}
