package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/viper"

	"github.com/stokaro/leaguesync/config"
)

func TestDefaultConfig(t *testing.T) {
	c := qt.New(t)

	cfg := config.DefaultConfig()

	c.Assert(cfg.Season, qt.Equals, time.Now().Year())
	c.Assert(cfg.PageSize, qt.Equals, 3500)
	c.Assert(cfg.HTTPTimeout, qt.Equals, 30*time.Second)
	c.Assert(cfg.Public, qt.IsFalse)
}

func TestWithLeague(t *testing.T) {
	c := qt.New(t)

	cfg := config.WithLeague("12345", 2024)

	c.Assert(cfg.LeagueID, qt.Equals, "12345")
	c.Assert(cfg.Season, qt.Equals, 2024)
	c.Assert(cfg.PageSize, qt.Equals, config.DefaultPageSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	c := qt.New(t)
	t.Setenv("LEAGUESYNC_LEAGUE_ID", "777")
	t.Setenv("LEAGUESYNC_SEASON", "2023")
	t.Setenv("LEAGUESYNC_PUBLIC", "true")
	t.Setenv("LEAGUESYNC_HTTP_TIMEOUT", "5s")
	t.Setenv("LEAGUESYNC_DATABASE_URL", "sqlite://:memory:")

	cfg, err := config.Load(viper.New(), "")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.LeagueID, qt.Equals, "777")
	c.Assert(cfg.Season, qt.Equals, 2023)
	c.Assert(cfg.Public, qt.IsTrue)
	c.Assert(cfg.HTTPTimeout, qt.Equals, 5*time.Second)
	c.Assert(cfg.PageSize, qt.Equals, 3500)
	c.Assert(cfg.DatabaseURL, qt.Equals, "sqlite://:memory:")
	c.Assert(cfg.Validate(), qt.IsNil)
}

func TestLoadFromFile(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "leaguesync.yaml")
	err := os.WriteFile(path, []byte("league_id: \"42\"\nespn_s2: s2cookie\nswid: \"{GUID}\"\npage_size: 100\n"), 0o600)
	c.Assert(err, qt.IsNil)
	t.Setenv("LEAGUESYNC_PAGE_SIZE", "250")

	cfg, err := config.Load(viper.New(), path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.LeagueID, qt.Equals, "42")
	c.Assert(cfg.SWID, qt.Equals, "{GUID}")
	c.Assert(cfg.PageSize, qt.Equals, 250)
	c.Assert(cfg.Validate(), qt.IsNil)
}

func TestLoadMissingFile(t *testing.T) {
	c := qt.New(t)

	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	c.Assert(err, qt.ErrorMatches, "failed to read config file .*")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *config.Config)
		message string
	}{
		{
			name:    "missing league",
			modify:  func(cfg *config.Config) { cfg.LeagueID = " " },
			message: "league id is required",
		},
		{
			name:    "private without espn_s2",
			modify:  func(cfg *config.Config) { cfg.ESPNS2 = "" },
			message: "espn_s2 is required for a private league",
		},
		{
			name:    "private without swid",
			modify:  func(cfg *config.Config) { cfg.SWID = "" },
			message: "swid is required for a private league",
		},
		{
			name:    "bad page size",
			modify:  func(cfg *config.Config) { cfg.PageSize = 0 },
			message: "page size must be positive, got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			cfg := config.WithLeague("1", 2025)
			cfg.ESPNS2, cfg.SWID = "s2", "{SWID}"
			tt.modify(cfg)

			err := cfg.Validate()
			c.Assert(errors.Is(err, config.ErrInvalidConfiguration), qt.IsTrue)
			c.Assert(err, qt.ErrorMatches, "(?s).*"+tt.message+".*")
		})
	}
}

func TestValidatePublicLeagueNeedsNoCookies(t *testing.T) {
	c := qt.New(t)
	cfg := config.WithLeague("1", 2025)
	cfg.Public = true

	c.Assert(cfg.Validate(), qt.IsNil)
	c.Assert(errors.Is(cfg.ValidateDatabase(), config.ErrInvalidConfiguration), qt.IsTrue)

	cfg.DatabaseURL = "postgres://localhost/league"
	c.Assert(cfg.ValidateDatabase(), qt.IsNil)
}
