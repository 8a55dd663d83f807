package main

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Environment is development, staging or production.
	Environment string `koanf:"environment"`

	// LogLevel controls zerolog verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// FeedCapacity bounds the live event feed.
	FeedCapacity int `koanf:"feed_capacity"`

	// EventIntervalSeconds is the live-event tick.
	EventIntervalSeconds int `koanf:"event_interval_seconds"`

	// RefreshIntervalSeconds is the health/state refresh tick.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// API-Football integration. An empty key disables the provider path and
	// the service runs purely on the simulator.
	APIFootballKey          string `koanf:"api_football_key"`
	ProviderBaseURL         string `koanf:"provider_base_url"`
	ProviderLeagueID        int    `koanf:"provider_league_id"`
	ProviderSeason          int    `koanf:"provider_season"`
	ProviderCacheTTLSeconds int    `koanf:"provider_cache_ttl_seconds"`
}

func defaultConfig() *Config {
	return &Config{
		Addr:                    ":8080",
		Environment:             "development",
		LogLevel:                "info",
		FeedCapacity:            20,
		EventIntervalSeconds:    5,
		RefreshIntervalSeconds:  30,
		ProviderBaseURL:         "https://v3.football.api-sports.io",
		ProviderLeagueID:        399,
		ProviderSeason:          2024,
		ProviderCacheTTLSeconds: 60,
	}
}

// loadConfig layers configuration: defaults, then an optional YAML file
// named by PULSE_CONFIG, then PULSE_-prefixed environment variables. A
// config.env file is read first so local setups mirror production env vars.
func loadConfig() (*Config, error) {
	// Optional; absence is the normal case outside local development.
	_ = godotenv.Load("config.env")

	cfg := defaultConfig()
	k := koanf.New(".")

	if path := os.Getenv("PULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("PULSE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PULSE_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// The provider key keeps its historical unprefixed name.
	if key := os.Getenv("API_FOOTBALL_KEY"); key != "" {
		cfg.APIFootballKey = key
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.FeedCapacity <= 0 {
		return nil, errors.New("feed_capacity must be positive")
	}
	return cfg, nil
}
