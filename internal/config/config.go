package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds every tunable the service reads from the environment.
type AppConfig struct {
	// NOAABaseURL is the observation API endpoint.
	NOAABaseURL string

	// MirrorBaseURL is the root of the GHCN-Daily reference-file mirror.
	MirrorBaseURL string

	// DataDir is where reference files are kept locally.
	DataDir string

	// DownloadLargeFiles also pulls the full daily archive during the
	// one-time bulk download.
	DownloadLargeFiles bool

	// HTTPTimeout applies to every outbound request.
	HTTPTimeout time.Duration

	// FetchConcurrency bounds the executor's worker pool.
	FetchConcurrency int

	// FetchInterval controls how often the scheduler refreshes data.
	FetchInterval time.Duration

	// FetchLookback is the date window the scheduler requests.
	FetchLookback time.Duration

	// Countries the scheduler tracks.
	Countries []string

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per country set (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	LogLevel string
	Env      string
	Port     string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.NOAABaseURL = getenvDefault("NOAA_BASE_URL",
		"https://www.ncei.noaa.gov/access/services/data/v1")
	cfg.MirrorBaseURL = getenvDefault("NOAA_MIRROR_BASE_URL",
		"https://www.ncei.noaa.gov/pub/data/ghcn/daily")
	cfg.DataDir = getenvDefault("DATA_DIR", "data/noaa")
	cfg.DownloadLargeFiles = getenvDefault("DOWNLOAD_LARGE_FILES", "false") == "true"

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.FetchConcurrency = getenvInt("FETCH_CONCURRENCY", 4)

	// Scheduler interval: default 6 hours, GHCN-Daily data is daily.
	intervalStr := getenvDefault("FETCH_INTERVAL", "6h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	lookbackStr := getenvDefault("FETCH_LOOKBACK", "168h") // one week
	lookback, err := time.ParseDuration(lookbackStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_LOOKBACK: %w", err)
	}
	cfg.FetchLookback = lookback

	cfg.Countries = splitList(os.Getenv("FETCH_COUNTRIES"))

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 28) // a week at 6-hour intervals
	maxAgeStr := getenvDefault("STORE_MAX_AGE", "168h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Env = getenvDefault("APP_ENV", "development")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
