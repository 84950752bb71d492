// Package config loads the service settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings read at startup.
type Config struct {
	HTTPAddr    string
	Environment string
	LogLevel    string
	ServiceName string
	ZipkinURL   string
	RateLimit   float64
	RateBurst   int
}

var defaults = map[string]string{
	"HTTP_ADDR":    ":8080",
	"ENVIRONMENT":  "development",
	"LOG_LEVEL":    "info",
	"SERVICE_NAME": "freightbooking",
	"ZIPKIN_URL":   "",
	"RATE_LIMIT":   "100",
	"RATE_BURST":   "100",
}

// Load reads the configuration. Environment variables win over the .env
// file, which wins over defaults.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.SetConfigName(".env")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	v.AutomaticEnv()

	// .env is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
		ServiceName: v.GetString("SERVICE_NAME"),
		ZipkinURL:   v.GetString("ZIPKIN_URL"),
	}

	limit, err := strconv.ParseFloat(v.GetString("RATE_LIMIT"), 64)
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be a positive number, got %q", v.GetString("RATE_LIMIT"))
	}
	cfg.RateLimit = limit

	burst, err := strconv.Atoi(v.GetString("RATE_BURST"))
	if err != nil || burst <= 0 {
		return nil, fmt.Errorf("RATE_BURST must be a positive integer, got %q", v.GetString("RATE_BURST"))
	}
	cfg.RateBurst = burst

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}

	return cfg, nil
}
