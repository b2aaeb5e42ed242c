package builder

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/stokaro/leaguesync/core/valueparse"
)

// MemberSummary maps a league member to the team they own. ID is the raw
// member id as the source reports it, braces included.
type MemberSummary struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	ID       string `json:"id"`
	TeamID   *int64 `json:"team_id"`
}

// LeagueMembers derives the member → team mapping from a league bundle. The
// team of a member is the team whose primaryOwner equals the member id; when
// several match the last one wins, when none does TeamID is nil.
func LeagueMembers(doc any) ([]MemberSummary, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, &MalformedPayloadError{View: ViewLeague, Path: "$", Reason: fmt.Sprintf("expected object, got %T", doc)}
	}
	p := &parser{view: ViewLeague}
	obj := object{p: p, path: "$", data: root}

	members := obj.objects("members")
	teams := obj.objects("teams")
	if p.err != nil {
		return nil, p.err
	}

	owners := make(map[string]int64, len(teams))
	for _, t := range teams {
		owner, ok := valueparse.String(t.get("primaryOwner"))
		if !ok {
			continue
		}
		if id, ok := valueparse.Int(t.get("id")); ok {
			owners[owner] = id
		}
	}

	out := make([]MemberSummary, 0, len(members))
	for _, m := range members {
		summary := MemberSummary{
			Name:     norm.NFC.String(strings.TrimSpace(deref(m.str("firstName")) + " " + deref(m.str("lastName")))),
			Username: norm.NFC.String(deref(m.str("displayName"))),
			ID:       deref(m.str("id")),
		}
		if teamID, ok := owners[summary.ID]; ok {
			summary.TeamID = &teamID
		}
		out = append(out, summary)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
