// Package runenv holds the flags and setup shared by the leaguesync commands.
package runenv

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stokaro/leaguesync/config"
	"github.com/stokaro/leaguesync/dbschema"
	"github.com/stokaro/leaguesync/rowstore"
	"github.com/stokaro/leaguesync/rowstore/memory"
	"github.com/stokaro/leaguesync/rowstore/sqlstore"
	"github.com/stokaro/leaguesync/source"
)

const (
	ConfigFlag      = "config"
	LeagueIDFlag    = "league-id"
	SeasonFlag      = "season"
	ESPNS2Flag      = "espn-s2"
	SWIDFlag        = "swid"
	PublicFlag      = "public"
	DatabaseURLFlag = "database-url"
	TimeoutFlag     = "timeout"
)

// LeagueFlags returns a fresh set of the flags selecting and authenticating a
// league. Every command registers its own set.
func LeagueFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		ConfigFlag: &cobraflags.StringFlag{
			Name:  ConfigFlag,
			Value: "",
			Usage: "Config file (yaml, json, toml). Environment variables use the LEAGUESYNC_ prefix",
		},
		LeagueIDFlag: &cobraflags.StringFlag{
			Name:  LeagueIDFlag,
			Value: "",
			Usage: "Fantasy league id",
		},
		SeasonFlag: &cobraflags.IntFlag{
			Name:  SeasonFlag,
			Value: 0,
			Usage: "Season year (default: current year)",
		},
		ESPNS2Flag: &cobraflags.StringFlag{
			Name:  ESPNS2Flag,
			Value: "",
			Usage: "espn_s2 session cookie, required for private leagues",
		},
		SWIDFlag: &cobraflags.StringFlag{
			Name:  SWIDFlag,
			Value: "",
			Usage: "SWID session cookie, required for private leagues",
		},
		PublicFlag: &cobraflags.BoolFlag{
			Name:  PublicFlag,
			Value: false,
			Usage: "The league is public and needs no cookies",
		},
		TimeoutFlag: &cobraflags.StringFlag{
			Name:  TimeoutFlag,
			Value: "",
			Usage: "HTTP request timeout, e.g. 45s (default 30s)",
		},
	}
}

// DatabaseFlags returns the flags selecting the row store.
func DatabaseFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		DatabaseURLFlag: &cobraflags.StringFlag{
			Name:  DatabaseURLFlag,
			Value: "",
			Usage: "Database URL (postgres://, mysql://, sqlite://)",
		},
	}
}

// Merge returns a map holding the flags of every set.
func Merge(sets ...map[string]cobraflags.Flag) map[string]cobraflags.Flag {
	out := make(map[string]cobraflags.Flag)
	for _, set := range sets {
		for name, flag := range set {
			out[name] = flag
		}
	}
	return out
}

// LoadConfig reads the configuration file and environment, then applies the
// flags the user set explicitly.
func LoadConfig(cmd *cobra.Command, flags map[string]cobraflags.Flag) (*config.Config, error) {
	configFile := ""
	if f, ok := flags[ConfigFlag]; ok {
		configFile = f.GetString()
	}
	cfg, err := config.Load(viper.New(), configFile)
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		_, ok := flags[name]
		return ok && cmd.Flags().Changed(name)
	}
	if changed(LeagueIDFlag) {
		cfg.LeagueID = flags[LeagueIDFlag].GetString()
	}
	if changed(SeasonFlag) {
		cfg.Season = flags[SeasonFlag].GetInt()
	}
	if changed(ESPNS2Flag) {
		cfg.ESPNS2 = flags[ESPNS2Flag].GetString()
	}
	if changed(SWIDFlag) {
		cfg.SWID = flags[SWIDFlag].GetString()
	}
	if changed(PublicFlag) {
		cfg.Public = flags[PublicFlag].GetBool()
	}
	if changed(TimeoutFlag) {
		timeout, err := time.ParseDuration(flags[TimeoutFlag].GetString())
		if err != nil {
			return nil, fmt.Errorf("%w: bad --%s: %w", config.ErrInvalidConfiguration, TimeoutFlag, err)
		}
		cfg.HTTPTimeout = timeout
	}
	if changed(DatabaseURLFlag) {
		cfg.DatabaseURL = flags[DatabaseURLFlag].GetString()
	}
	return cfg, nil
}

// NewSource validates cfg and returns the HTTP client for its league.
func NewSource(cfg *config.Config) (*source.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := source.NewClient(source.ClientOptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}
	return client.WithLogger(slog.Default()), nil
}

// OpenStore returns the row store for cfg and a function releasing it. A dry
// run writes to memory and needs no database.
func OpenStore(ctx context.Context, cfg *config.Config, dryRun bool) (rowstore.RowStore, func() error, error) {
	if dryRun {
		slog.Info("Dry run, writing to memory")
		return memory.New(), func() error { return nil }, nil
	}
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, nil, err
	}
	conn, err := dbschema.ConnectToDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	info := conn.Info()
	slog.Info("Connected to database", "dialect", info.Dialect, "version", info.Version)
	return sqlstore.New(conn).WithLogger(slog.Default()), conn.Close, nil
}
