package players

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/stokaro/leaguesync/cmd/internal/runenv"
	"github.com/stokaro/leaguesync/ingest"
)

const (
	pageSizeFlag = "page-size"
	outputFlag   = "output"
)

var playersFlags = runenv.Merge(runenv.LeagueFlags(), map[string]cobraflags.Flag{
	pageSizeFlag: &cobraflags.IntFlag{
		Name:  pageSizeFlag,
		Value: 0,
		Usage: "Players per request (default 3500)",
	},
	outputFlag: &cobraflags.StringFlag{
		Name:  outputFlag,
		Value: "",
		Usage: "Write the players as a JSON array to this file",
	},
})

func NewPlayersCommand() *cobra.Command {
	playersCmd := &cobra.Command{
		Use:   "players",
		Short: "Page through the professional player list",
		Long: `Request the active player list page by page until an empty page comes
back, then print how many players were read.`,
		RunE: playersCommand,
	}

	cobraflags.RegisterMap(playersCmd, playersFlags)
	return playersCmd
}

func playersCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := runenv.LoadConfig(cmd, playersFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(pageSizeFlag) {
		cfg.PageSize = playersFlags[pageSizeFlag].GetInt()
	}
	src, err := runenv.NewSource(cfg)
	if err != nil {
		return err
	}

	players, err := ingest.New(src, nil).WithLogger(slog.Default()).Players(cmd.Context(), cfg.PageSize)
	if err != nil {
		return err
	}

	if output := playersFlags[outputFlag].GetString(); output != "" {
		data := oj.JSON(players, &oj.Options{Indent: 2})
		if err := os.WriteFile(output, []byte(data), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Players: %d\n", len(players))
	return nil
}
