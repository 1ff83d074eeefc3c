package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileWithDefaults(t *testing.T) {
	path := writeConfig(t, `
postgres:
  dsn: postgres://wordle@localhost/wordle
discord:
  token: abc
  channel_id: "42"
  timezone: Europe/London
scrape:
  page_size: 500
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "postgres://wordle@localhost/wordle", cfg.Postgres.DSN)
	require.Equal(t, "42", cfg.Discord.ChannelID)
	require.Equal(t, DefaultDiscordAPIBaseURL, cfg.Discord.APIBaseURL)
	require.Equal(t, DefaultWordleAppID, cfg.Discord.WordleAppID)
	require.Equal(t, 100, cfg.Scrape.PageSize, "page size is capped at the Discord maximum")
	require.Equal(t, time.Second, cfg.Scrape.BatchDelay)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "Europe/London", cfg.Location().String())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
postgres:
  dsn: postgres://file
nats:
  url: nats://file:4222
`)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("SCRAPE_BATCH_DELAY", "250ms")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "postgres://env", cfg.Postgres.DSN)
	require.Equal(t, "nats://file:4222", cfg.NATS.URL)
	require.Equal(t, 250*time.Millisecond, cfg.Scrape.BatchDelay)
	require.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadConfig_InvalidEnvValue(t *testing.T) {
	path := writeConfig(t, "postgres:\n  dsn: x\n")
	t.Setenv("SCRAPE_MAX_PAGES", "lots")

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "SCRAPE_MAX_PAGES")
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	t.Run("requires database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := LoadConfig(missing)
		require.Error(t, err)
	})

	t.Run("loads from env", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env")
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("DISCORD_TIMEZONE", "Not/AZone")

		cfg, err := LoadConfig(missing)
		require.NoError(t, err)
		require.Equal(t, "token", cfg.Discord.Token)
		require.Equal(t, time.UTC, cfg.Location())
	})
}
