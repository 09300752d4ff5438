// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/samdwyer/mazegen/internal/maze"
)

// Config holds the application's configuration values.
type Config struct {
	Size         int    // Maze edge length
	Seed         int64  // Seed for generation; 0 picks one from the clock
	Preset       string // Preset ID; overrides Size and Seed when set
	Port         string // HTTP port for serve mode
	DBPath       string // SQLite database file
	LogLevel     string // zerolog level name
	ClientOrigin string // Allowed CORS origin for the HTTP API
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Debug().Err(err).Msg(".env file not loaded")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	size, err := getEnvAsInt("MAZE_SIZE", maze.DefaultSize)
	if err != nil {
		return Config{}, err
	}
	seed, err := getEnvAsInt64("MAZE_SEED", 0)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Size:         size,
		Seed:         seed,
		Preset:       getEnvWithDefault("MAZE_PRESET", ""),
		Port:         getEnvWithDefault("PORT", "8080"),
		DBPath:       getEnvWithDefault("DB_PATH", "./data/mazes.db"),
		LogLevel:     getEnvWithDefault("LOG_LEVEL", "info"),
		ClientOrigin: getEnvWithDefault("CLIENT_ORIGIN", "*"),
	}, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, returning defaultValue when unset.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := getEnvWithDefault(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

// getEnvAsInt64 is getEnvAsInt for 64-bit values.
func getEnvAsInt64(key string, defaultValue int64) (int64, error) {
	valueStr := getEnvWithDefault(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}
