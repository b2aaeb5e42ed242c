package registries

import (
	"fmt"
	"log/slog"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/stokaro/leaguesync/cmd/internal/runenv"
	"github.com/stokaro/leaguesync/ingest"
)

const dryRunFlag = "dry-run"

var registriesFlags = runenv.Merge(runenv.DatabaseFlags(), map[string]cobraflags.Flag{
	runenv.ConfigFlag: runenv.LeagueFlags()[runenv.ConfigFlag],
	dryRunFlag: &cobraflags.BoolFlag{
		Name:  dryRunFlag,
		Value: false,
		Usage: "Write to an in-memory store instead of the database",
	},
})

func NewRegistriesCommand() *cobra.Command {
	registriesCmd := &cobra.Command{
		Use:   "registries",
		Short: "Write the positions and stats tables",
		Long: `Write one row per known position and stat code, including the DEFAULT
entries unknown codes resolve to. No league is fetched.`,
		RunE: registriesCommand,
	}

	cobraflags.RegisterMap(registriesCmd, registriesFlags)
	return registriesCmd
}

func registriesCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := runenv.LoadConfig(cmd, registriesFlags)
	if err != nil {
		return err
	}
	store, closeStore, err := runenv.OpenStore(ctx, cfg, registriesFlags[dryRunFlag].GetBool())
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}()

	stats, err := ingest.New(nil, store).WithLogger(slog.Default()).Registries(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registries: %d inserted, %d updated, %d failed\n", stats.Inserted, stats.Updated, stats.Failed)
	if stats.Failed > 0 {
		return fmt.Errorf("%d registry rows failed to write", stats.Failed)
	}
	return nil
}
