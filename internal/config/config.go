// Package config resolves lolstats settings from the environment, optional
// .env files, and files under ~/.lolstats.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pable/go-lol-stats/internal/cache"
	"github.com/pable/go-lol-stats/internal/riot"
)

// DirName is the per-user settings directory under $HOME.
const DirName = ".lolstats"

// ErrNoAPIKey is returned when no Riot API key can be found.
var ErrNoAPIKey = errors.New("riot API key not found: set RIOT_API_KEY or create ~/.lolstats/riot_api_key")

// EnvFiles are the .env locations tried in order; the first that loads wins.
var EnvFiles = []string{".env", "../.env"}

// Config is the resolved runtime configuration.
type Config struct {
	APIKey    string
	Region    string
	Redis     cache.RedisOptions
	Champions string // optional champion.json override
}

// RedisEnabled reports whether a Redis cache is configured.
func (c Config) RedisEnabled() bool { return c.Redis.Host != "" }

// LoadEnv loads the first readable .env file into the process environment.
// Variables already set are not overridden. It returns the file used, or "".
func LoadEnv() string {
	for _, path := range EnvFiles {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads settings from the environment. A missing API key is not an
// error here; commands that talk to Riot call APIKeyOrErr.
func Load() Config {
	region := os.Getenv("RIOT_REGION")
	if region == "" {
		region = riot.DefaultRegion
	}
	key, _ := loadAPIKey()
	return Config{
		APIKey: key,
		Region: strings.ToLower(region),
		Redis: cache.RedisOptions{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Champions: os.Getenv("LOLSTATS_CHAMPIONS"),
	}
}

// APIKeyOrErr returns the API key or ErrNoAPIKey.
func (c Config) APIKeyOrErr() (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}
	return c.APIKey, nil
}

// loadAPIKey returns the key from RIOT_API_KEY or ~/.lolstats/riot_api_key.
func loadAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv("RIOT_API_KEY")); key != "" {
		return key, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(home, DirName, "riot_api_key"))
	if err != nil {
		return "", ErrNoAPIKey
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%s/riot_api_key is empty", DirName)
	}
	return key, nil
}
