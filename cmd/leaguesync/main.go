package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stokaro/leaguesync/cmd/ingest"
	"github.com/stokaro/leaguesync/cmd/members"
	"github.com/stokaro/leaguesync/cmd/players"
	"github.com/stokaro/leaguesync/cmd/registries"
)

func newRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "leaguesync",
		Short:         "Sync fantasy baseball league data into a relational database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(ingest.NewIngestCommand())
	rootCmd.AddCommand(members.NewMembersCommand())
	rootCmd.AddCommand(registries.NewRegistriesCommand())
	rootCmd.AddCommand(players.NewPlayersCommand())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
