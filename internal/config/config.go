package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	AirportsPath   string // IATA -> lat/lon reference (CSV or JSON)
	TimezonesPath  string // IATA -> IANA timezone JSON
	StatsDir       string // aggregate snapshot directory
	CategoriesPath string // ordinal category table persisted with the model
	ModelURL       string // model-serving endpoint; empty enables the stub
	CorpusRoot     string // historical corpus root for the offline builder
	ScanWorkers    int    // parallel corpus files in the offline builder
}

// Load reads configuration from the environment, with .env support
func Load() *Config {
	// Missing .env is fine; real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", ":8080"),
		DBPath:         getEnv("DB_PATH", "./data/predictions.db"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		AirportsPath:   getEnv("AIRPORTS_PATH", "./data/airports.csv"),
		TimezonesPath:  getEnv("TIMEZONES_PATH", "./data/airport_timezones.json"),
		StatsDir:       getEnv("STATS_DIR", "./data/aggregates"),
		CategoriesPath: getEnv("CATEGORIES_PATH", "./data/model_categories.json"),
		ModelURL:       getEnv("MODEL_URL", ""),
		CorpusRoot:     getEnv("CORPUS_ROOT", "./data/flights_corpus"),
		ScanWorkers:    getEnvInt("SCAN_WORKERS", 4),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
