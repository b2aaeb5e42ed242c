package plan

import (
	"github.com/stokaro/leaguesync/core/entity"
	"github.com/stokaro/leaguesync/core/valueparse"
)

// Options tunes Flatten.
type Options struct {
	// IncludeRegistries adds the positions and stats registry rows.
	IncludeRegistries bool
}

// flattener remembers the nodes that other nodes refer to by source value.
type flattener struct {
	arena     *Arena
	divisions map[string]NodeIndex
	members   map[string]NodeIndex
	teams     map[string]NodeIndex
}

// Flatten turns the league graph into an arena.
//
// Owned children are bound to their parent node. References by value, such as
// a team's division or a pick's team, are bound to the node carrying that
// source id. A reference without a matching node keeps its source value and
// gets no binding.
func Flatten(league *entity.League, opts Options) *Arena {
	f := &flattener{
		arena:     NewArena(),
		divisions: make(map[string]NodeIndex),
		members:   make(map[string]NodeIndex),
		teams:     make(map[string]NodeIndex),
	}
	if opts.IncludeRegistries {
		AddRegistries(f.arena)
	}
	if league == nil {
		return f.arena
	}

	root := f.arena.Add(league, NoNode)
	for _, d := range league.Divisions {
		idx := f.arena.Add(d, root, Binding{Column: "league_id", Target: root})
		if d.ID != nil {
			f.divisions[key(*d.ID)] = idx
		}
	}
	for _, m := range league.Members {
		f.member(root, m)
	}
	for _, t := range league.Teams {
		f.team(root, t)
	}
	if league.Settings != nil {
		f.settings(root, league.Settings)
	}
	for _, p := range league.DraftPicks {
		idx := f.arena.Add(p, root, Binding{Column: "league_id", Target: root})
		f.bindRef(idx, "team_id", p.TeamID, f.teams)
		f.bindRef(idx, "member_id", p.MemberID, f.members)
	}
	return f.arena
}

// AddRegistries appends the positions and stats registry rows to a.
func AddRegistries(a *Arena) {
	for _, p := range entity.PositionRecords() {
		a.Add(p, NoNode)
	}
	for _, s := range entity.StatRecords() {
		a.Add(s, NoNode)
	}
}

func key(v any) string {
	s, _ := valueparse.String(v)
	return s
}

func (f *flattener) bindRef(idx NodeIndex, column string, ref entity.Ref, targets map[string]NodeIndex) {
	if !ref.Valid {
		return
	}
	if target, ok := targets[key(ref.Value)]; ok {
		f.arena.Bind(idx, column, target)
	}
}

func (f *flattener) member(root NodeIndex, m *entity.Member) {
	idx := f.arena.Add(m, root, Binding{Column: "league_id", Target: root})
	if m.ID != "" {
		f.members[m.ID] = idx
	}
	for _, n := range m.NotificationSettings {
		f.arena.Add(n, idx, Binding{Column: "member_id", Target: idx})
	}
}

func (f *flattener) team(root NodeIndex, t *entity.Team) {
	idx := f.arena.Add(t, root, Binding{Column: "league_id", Target: root})
	f.bindRef(idx, "division_id", t.DivisionID, f.divisions)
	f.bindRef(idx, "primary_owner_id", t.PrimaryOwnerID, f.members)
	if t.ID != nil {
		f.teams[key(*t.ID)] = idx
	}
	for _, o := range t.Owners {
		owner := f.arena.Add(o, idx, Binding{Column: "team_id", Target: idx})
		f.bindRef(owner, "owner_id", o.OwnerID, f.members)
	}
	for _, r := range t.Roster {
		f.arena.Add(r, idx, Binding{Column: "team_id", Target: idx})
	}
}

func (f *flattener) settings(root NodeIndex, s *entity.Settings) {
	a := f.arena
	idx := a.Add(s, root, Binding{Column: "league_id", Target: root})

	if acq := s.Acquisition; acq != nil {
		sub := a.Add(acq, idx)
		a.Bind(idx, "acquisition_id", sub)
		for _, d := range acq.WaiverProcessDays {
			a.Add(d, sub, Binding{Column: "settings_acquisition_id", Target: sub})
		}
	}
	if s.Finance != nil {
		a.Bind(idx, "finance_id", a.Add(s.Finance, idx))
	}
	if draft := s.Draft; draft != nil {
		sub := a.Add(draft, idx)
		a.Bind(idx, "draft_id", sub)
		for _, p := range draft.PickOrder {
			pick := a.Add(p, sub, Binding{Column: "settings_draft_id", Target: sub})
			f.bindRef(pick, "team_id", p.TeamID, f.teams)
		}
	}
	if roster := s.Roster; roster != nil {
		sub := a.Add(roster, idx)
		a.Bind(idx, "roster_id", sub)
		for _, c := range roster.LineupSlotCounts {
			a.Add(c, sub, Binding{Column: "settings_roster_id", Target: sub})
		}
		for _, l := range roster.PositionLimits {
			a.Add(l, sub, Binding{Column: "settings_roster_id", Target: sub})
		}
		for _, l := range roster.LineupSlotStatLimits {
			a.Add(l, sub, Binding{Column: "settings_roster_id", Target: sub})
		}
		for _, u := range roster.UniverseIDs {
			a.Add(u, sub, Binding{Column: "settings_roster_id", Target: sub})
		}
	}
	if schedule := s.Schedule; schedule != nil {
		sub := a.Add(schedule, idx)
		a.Bind(idx, "schedule_id", sub)
		for _, p := range schedule.MatchupPeriods {
			a.Add(p, sub, Binding{Column: "settings_schedule_id", Target: sub})
		}
		for _, d := range schedule.Divisions {
			div := a.Add(d, sub, Binding{Column: "settings_schedule_id", Target: sub})
			f.bindRef(div, "division_id", d.DivisionID, f.divisions)
		}
	}
	if scoring := s.Scoring; scoring != nil {
		sub := a.Add(scoring, idx)
		a.Bind(idx, "scoring_id", sub)
		for _, item := range scoring.Items {
			it := a.Add(item, sub, Binding{Column: "settings_scoring_id", Target: sub})
			for _, o := range item.PointOverrides {
				a.Add(o, it, Binding{Column: "settings_scoring_item_id", Target: it})
			}
		}
	}
	if s.Trade != nil {
		a.Bind(idx, "trade_id", a.Add(s.Trade, idx))
	}
}
