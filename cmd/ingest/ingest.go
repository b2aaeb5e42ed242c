package ingest

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/stokaro/leaguesync/cmd/internal/runenv"
	pipeline "github.com/stokaro/leaguesync/ingest"
	"github.com/stokaro/leaguesync/metrics"
)

const (
	dryRunFlag         = "dry-run"
	withRegistriesFlag = "with-registries"
	withDraftFlag      = "with-draft"
	metricsFileFlag    = "metrics-file"
)

var ingestFlags = runenv.Merge(runenv.LeagueFlags(), runenv.DatabaseFlags(), map[string]cobraflags.Flag{
	dryRunFlag: &cobraflags.BoolFlag{
		Name:  dryRunFlag,
		Value: false,
		Usage: "Write to an in-memory store instead of the database",
	},
	withRegistriesFlag: &cobraflags.BoolFlag{
		Name:  withRegistriesFlag,
		Value: false,
		Usage: "Also write the positions and stats tables",
	},
	withDraftFlag: &cobraflags.BoolFlag{
		Name:  withDraftFlag,
		Value: true,
		Usage: "Fetch the draft detail when the league bundle has no picks",
	},
	metricsFileFlag: &cobraflags.StringFlag{
		Name:  metricsFileFlag,
		Value: "",
		Usage: "Write run metrics in Prometheus text format to this file",
	},
})

func NewIngestCommand() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch a league and write it to the database",
		Long: `Fetch the league bundle (teams, rosters, matchups, settings, standings),
build the league graph and write it to the database in dependency order.

Rows that already exist are updated in place, so running ingest repeatedly
does not duplicate data. A row that fails to write is logged and skipped;
the command exits with an error when any row failed.

Examples:
  leaguesync ingest --league-id 12345 --public --database-url sqlite://league.db
  leaguesync ingest --config leaguesync.yaml --with-registries
  leaguesync ingest --league-id 12345 --public --dry-run`,
		RunE: ingestCommand,
	}

	cobraflags.RegisterMap(ingestCmd, ingestFlags)
	return ingestCmd
}

func ingestCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dryRun := ingestFlags[dryRunFlag].GetBool()
	metricsFile := ingestFlags[metricsFileFlag].GetString()

	cfg, err := runenv.LoadConfig(cmd, ingestFlags)
	if err != nil {
		return err
	}
	src, err := runenv.NewSource(cfg)
	if err != nil {
		return err
	}
	store, closeStore, err := runenv.OpenStore(ctx, cfg, dryRun)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}()

	m := metrics.New()
	p := pipeline.New(pipeline.Observed(src, m), store).
		WithLogger(slog.Default()).
		WithRecorder(m)

	res, runErr := p.Run(ctx, pipeline.Options{
		IncludeRegistries: ingestFlags[withRegistriesFlag].GetBool(),
		IncludeDraft:      ingestFlags[withDraftFlag].GetBool(),
	})
	if runErr == nil && res.Stats.Failed == 0 {
		m.MarkSuccess(time.Now())
	}
	if metricsFile != "" {
		if err := m.WriteTextfile(metricsFile); err != nil {
			slog.Warn("Failed to write metrics", "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	for _, table := range res.Stats.Order {
		ts := res.Stats.PerTable[table]
		if ts == nil {
			continue
		}
		fmt.Fprintf(out, "%-42s inserted=%d updated=%d failed=%d\n", table, ts.Inserted, ts.Updated, ts.Failed)
	}
	fmt.Fprintf(out, "Total: %d inserted, %d updated, %d failed\n", res.Stats.Inserted, res.Stats.Updated, res.Stats.Failed)

	if res.Stats.Failed > 0 {
		return fmt.Errorf("%d of %d rows failed to write", res.Stats.Failed, res.Stats.Inserted+res.Stats.Updated+res.Stats.Failed)
	}
	return nil
}
