package members

import (
	"encoding/json"
	"log/slog"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/stokaro/leaguesync/cmd/internal/runenv"
	"github.com/stokaro/leaguesync/ingest"
)

var membersFlags = runenv.LeagueFlags()

func NewMembersCommand() *cobra.Command {
	membersCmd := &cobra.Command{
		Use:   "members",
		Short: "Print league members and the team each one owns",
		Long: `Fetch the league bundle and print every member with the id of the team
whose primary owner they are, as a JSON array. A member without a team has
"team_id": null.`,
		RunE: membersCommand,
	}

	cobraflags.RegisterMap(membersCmd, membersFlags)
	return membersCmd
}

func membersCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := runenv.LoadConfig(cmd, membersFlags)
	if err != nil {
		return err
	}
	src, err := runenv.NewSource(cfg)
	if err != nil {
		return err
	}

	members, err := ingest.New(src, nil).WithLogger(slog.Default()).Members(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(members)
}
