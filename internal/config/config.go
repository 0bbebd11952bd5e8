package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidListing = errors.New("invalid listing")

const (
	defaultName         = "bourse"
	defaultPassInterval = 250 * time.Millisecond
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
)

// Listing is one instrument to list at startup.
type Listing struct {
	Code  string
	Name  string
	Price int64
}

type Config struct {
	Name         string
	Listings     []Listing
	PassInterval time.Duration
	LogLevel     string
	LogFormat    string // console or json
}

func Default() Config {
	return Config{
		Name:         defaultName,
		PassInterval: defaultPassInterval,
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
	}
}

// Load reads an optional .env file and then the environment. Values already
// set in the environment take priority over the file.
func Load(envPath string) (Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", envPath, err)
		}
	} else {
		_ = godotenv.Load() // .env in the working directory is optional
	}

	cfg := Default()
	cfg.Name = getEnv("EXCHANGE_NAME", cfg.Name)
	cfg.LogLevel = getEnv("EXCHANGE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("EXCHANGE_LOG_FORMAT", cfg.LogFormat)

	interval, err := getEnvDuration("EXCHANGE_PASS_INTERVAL", cfg.PassInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.PassInterval = interval

	if raw := os.Getenv("EXCHANGE_LISTINGS"); raw != "" {
		listings, err := ParseListings(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.Listings = listings
	}
	return cfg, nil
}

// ParseListings parses "CODE:Name:price" entries separated by commas.
func ParseListings(raw string) ([]Listing, error) {
	var listings []Listing
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q, want CODE:Name:price", ErrInvalidListing, item)
		}
		price, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidListing, item, err)
		}
		listings = append(listings, Listing{
			Code:  strings.TrimSpace(parts[0]),
			Name:  strings.TrimSpace(parts[1]),
			Price: price,
		})
	}
	return listings, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive", key)
	}
	return d, nil
}
