// Package config provides the configuration of a league sync run.
//
// Values come from, in increasing precedence: the defaults below, an optional
// config file (any format viper reads) and environment variables prefixed with
// LEAGUESYNC_, for example LEAGUESYNC_LEAGUE_ID or LEAGUESYNC_DATABASE_URL.
// Command line flags are applied on top by the cmd packages.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidConfiguration is returned when a required setting is missing or
// malformed.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LEAGUESYNC"

const (
	// DefaultPageSize is the number of players requested per page.
	DefaultPageSize = 3500
	// DefaultHTTPTimeout bounds every API request.
	DefaultHTTPTimeout = 30 * time.Second
)

// Setting keys, shared by the config file and the environment.
const (
	KeyLeagueID    = "league_id"
	KeySeason      = "season"
	KeyESPNS2      = "espn_s2"
	KeySWID        = "swid"
	KeyPublic      = "public"
	KeyDatabaseURL = "database_url"
	KeyHTTPTimeout = "http_timeout"
	KeyPageSize    = "page_size"
	KeyBaseURL     = "base_url"
)

// Config holds the settings of a sync run.
type Config struct {
	// LeagueID is the fantasy league to read.
	LeagueID string `mapstructure:"league_id"`
	// Season is the year of the league season.
	Season int `mapstructure:"season"`
	// ESPNS2 and SWID are the session cookies a private league requires.
	ESPNS2 string `mapstructure:"espn_s2"`
	SWID   string `mapstructure:"swid"`
	// Public marks a league readable without cookies.
	Public bool `mapstructure:"public"`
	// DatabaseURL selects the row store, e.g. postgres://... or sqlite://...
	DatabaseURL string `mapstructure:"database_url"`

	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	PageSize    int           `mapstructure:"page_size"`
	// BaseURL overrides the league API URL. Empty means the public API.
	BaseURL string `mapstructure:"base_url"`
}

// DefaultConfig returns a private-league configuration for the current season.
func DefaultConfig() *Config {
	return &Config{
		Season:      time.Now().Year(),
		HTTPTimeout: DefaultHTTPTimeout,
		PageSize:    DefaultPageSize,
	}
}

// WithLeague returns the default configuration for one league and season.
//
// Example:
//
//	cfg := config.WithLeague("12345", 2025)
//	cfg.ESPNS2, cfg.SWID = s2, swid
func WithLeague(leagueID string, season int) *Config {
	cfg := DefaultConfig()
	cfg.LeagueID = leagueID
	cfg.Season = season
	return cfg
}

// Load reads the configuration from v. When configFile is not empty it is
// read first; a missing or unreadable file is an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	defaults := DefaultConfig()
	v.SetDefault(KeyLeagueID, "")
	v.SetDefault(KeySeason, defaults.Season)
	v.SetDefault(KeyESPNS2, "")
	v.SetDefault(KeySWID, "")
	v.SetDefault(KeyPublic, false)
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeyHTTPTimeout, defaults.HTTPTimeout)
	v.SetDefault(KeyPageSize, defaults.PageSize)
	v.SetDefault(KeyBaseURL, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings needed to fetch the league.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.LeagueID) == "" {
		errs = append(errs, errors.New("league id is required"))
	}
	if c.Season <= 0 {
		errs = append(errs, fmt.Errorf("season must be positive, got %d", c.Season))
	}
	if !c.Public {
		if c.ESPNS2 == "" {
			errs = append(errs, errors.New("espn_s2 is required for a private league"))
		}
		if c.SWID == "" {
			errs = append(errs, errors.New("swid is required for a private league"))
		}
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", c.PageSize))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("http timeout must not be negative, got %s", c.HTTPTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}

// ValidateDatabase checks that a database URL is set.
func (c *Config) ValidateDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("%w: database url is required", ErrInvalidConfiguration)
	}
	return nil
}
