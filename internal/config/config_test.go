package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RIOT_API_KEY", " RGAPI-test \n")
	t.Setenv("RIOT_REGION", "EUROPE")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("LOLSTATS_CHAMPIONS", "/tmp/champion.json")

	c := Load()
	if c.APIKey != "RGAPI-test" {
		t.Errorf("APIKey = %q", c.APIKey)
	}
	if c.Region != "europe" {
		t.Errorf("Region = %q", c.Region)
	}
	if !c.RedisEnabled() || c.Redis.Port != "6380" {
		t.Errorf("Redis = %+v", c.Redis)
	}
	if c.Champions != "/tmp/champion.json" {
		t.Errorf("Champions = %q", c.Champions)
	}
}

func TestAPIKeyFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RIOT_API_KEY", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("RIOT_REGION", "")

	c := Load()
	if _, err := c.APIKeyOrErr(); err != ErrNoAPIKey {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
	if c.Region != "americas" || c.RedisEnabled() {
		t.Errorf("defaults = %+v", c)
	}

	if err := os.MkdirAll(filepath.Join(home, DirName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, DirName, "riot_api_key"), []byte("RGAPI-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	key, err := Load().APIKeyOrErr()
	if err != nil || key != "RGAPI-file" {
		t.Errorf("APIKeyOrErr = %q, %v", key, err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lolstats.env"), []byte("LOLSTATS_TEST_VAR=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	old := EnvFiles
	EnvFiles = []string{filepath.Join(dir, "missing.env"), filepath.Join(dir, "lolstats.env")}
	t.Cleanup(func() {
		EnvFiles = old
		os.Unsetenv("LOLSTATS_TEST_VAR")
	})

	if got := LoadEnv(); got != EnvFiles[1] {
		t.Errorf("LoadEnv = %q", got)
	}
	if v := os.Getenv("LOLSTATS_TEST_VAR"); v != "from-file" {
		t.Errorf("LOLSTATS_TEST_VAR = %q", v)
	}
}
