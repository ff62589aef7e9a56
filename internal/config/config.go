package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/subosito/gotenv"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	// Boundary geometry.
	ShapeFilePath         string
	DistrictShapeFilePath string

	// Vote feeds.
	SenateBaseURL   string
	HouseBaseURL    string
	HouseMembersURL string
	FetchTimeout    time.Duration
	VoteCacheSize   int

	// Output.
	OutputDir   string
	PaletteFile string

	// Serve mode.
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Logging.
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first without
// overriding variables already set.
func Load() (*Config, error) {
	_ = gotenv.Load()

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("VOTE_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ShapeFilePath:         os.Getenv("SHAPE_FILE_PATH"),
		DistrictShapeFilePath: os.Getenv("DISTRICT_SHAPE_FILE_PATH"),

		SenateBaseURL:   envOrDefault("SENATE_BASE_URL", "https://www.senate.gov/legislative/LIS/roll_call_votes"),
		HouseBaseURL:    envOrDefault("HOUSE_BASE_URL", "https://clerk.house.gov/evs"),
		HouseMembersURL: envOrDefault("HOUSE_MEMBERS_URL", "https://clerk.house.gov/xml/lists/MemberData.xml"),
		FetchTimeout:    fetchTimeout,
		VoteCacheSize:   cacheSize,

		OutputDir:   envOrDefault("OUTPUT_DIR", "out"),
		PaletteFile: os.Getenv("PALETTE_FILE"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: shutdownTimeout,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.ShapeFilePath == "" {
		return nil, errors.New("SHAPE_FILE_PATH is required")
	}
	if cfg.SenateBaseURL == "" {
		return nil, errors.New("SENATE_BASE_URL is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
