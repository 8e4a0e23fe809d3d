// Package config содержит логику чтения конфигурации сервиса поиска премиальных билетов.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress     = "localhost:8080"
	defaultSeatsAeroURL   = "https://seats.aero/partnerapi"
	defaultSuggestLimit   = 10
	defaultDebounceDelay  = 300 * time.Millisecond
	defaultDotEnvFilename = ".env"
)

// Config содержит параметры конфигурации сервиса.
type Config struct {
	RunAddress            string        `env:"RUN_ADDRESS"`
	DatabaseURI           string        `env:"DATABASE_URI"`
	SeatsAeroAddress      string        `env:"SEATS_AERO_ADDRESS"`
	SeatsAeroAPIKey       string        `env:"SEATS_AERO_API_KEY"`
	AirportDataPath       string        `env:"AIRPORT_DATA_PATH"`
	AirportServiceAddress string        `env:"AIRPORT_SERVICE_ADDRESS"`
	ClientSecret          string        `env:"CLIENT_SECRET"`
	SuggestLimit          int           `env:"SUGGEST_LIMIT" envDefault:"10"`
	DebounceDelay         time.Duration `env:"DEBOUNCE_DELAY" envDefault:"300ms"`
	CORSAllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Parse считывает конфигурацию из файла .env, флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	if err := godotenv.Load(defaultDotEnvFilename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", defaultDotEnvFilename, err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envSeatsAeroAddress := cfg.SeatsAeroAddress
	envSeatsAeroAPIKey := cfg.SeatsAeroAPIKey
	envAirportDataPath := cfg.AirportDataPath
	envAirportServiceAddress := cfg.AirportServiceAddress

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.SeatsAeroAddress, "r", defaultSeatsAeroURL, "seats.aero partner API address")
	flag.StringVar(&cfg.SeatsAeroAPIKey, "k", "", "seats.aero partner API key")
	flag.StringVar(&cfg.AirportDataPath, "p", "", "path to airport-codes CSV file")
	flag.StringVar(&cfg.AirportServiceAddress, "s", "", "remote airport search service address")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envSeatsAeroAddress != "" {
		cfg.SeatsAeroAddress = envSeatsAeroAddress
	}
	if envSeatsAeroAPIKey != "" {
		cfg.SeatsAeroAPIKey = envSeatsAeroAPIKey
	}
	if envAirportDataPath != "" {
		cfg.AirportDataPath = envAirportDataPath
	}
	if envAirportServiceAddress != "" {
		cfg.AirportServiceAddress = envAirportServiceAddress
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.SeatsAeroAddress == "" {
		cfg.SeatsAeroAddress = defaultSeatsAeroURL
	}
	if cfg.SuggestLimit <= 0 {
		cfg.SuggestLimit = defaultSuggestLimit
	}
	if cfg.DebounceDelay < 0 {
		cfg.DebounceDelay = defaultDebounceDelay
	}

	return cfg, nil
}
