package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	defaultDBPath = "./safedrive.db"
	defaultPort   = "8080"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	// DBPath is the sqlite database file path.
	DBPath string

	// Port is the HTTP listen port for the web interface.
	Port string

	// ReferenceYear anchors vehicle-age calculations. Defaults to the
	// current calendar year; pin it for reproducible pricing runs.
	ReferenceYear int
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		DBPath: os.Getenv("DB_PATH"),
		Port:   os.Getenv("PORT"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	cfg.ReferenceYear = time.Now().Year()
	if v := os.Getenv("REFERENCE_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1900 {
			log.Printf("warning: ignoring invalid REFERENCE_YEAR %q", v)
		} else {
			cfg.ReferenceYear = year
		}
	}

	return cfg
}
