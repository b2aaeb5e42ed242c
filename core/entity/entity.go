// Package entity defines the typed graph built from a league payload.
//
// Each kind of row is an explicit struct. Columns are the fields tagged with
// `db:"column[,omitempty]"`; nested entities and containers are relationships
// and never columns. Foreign keys are Ref values that stay unset until the
// referenced row has an id.
package entity

// Kind names an entity type.
type Kind string

const (
	KindLeague              Kind = "League"
	KindDivision            Kind = "Division"
	KindMember              Kind = "Member"
	KindNotificationSetting Kind = "NotificationSetting"
	KindTeam                Kind = "Team"
	KindTeamOwner           Kind = "TeamOwner"
	KindRosterEntry         Kind = "RosterEntry"
	KindDraftPick           Kind = "DraftPick"
	KindSettings            Kind = "Settings"
	KindFinanceSettings     Kind = "FinanceSettings"
	KindAcquisitionSettings Kind = "AcquisitionSettings"
	KindWaiverProcessDay    Kind = "WaiverProcessDay"
	KindDraftSettings       Kind = "DraftSettings"
	KindPickOrder           Kind = "PickOrder"
	KindRosterSettings      Kind = "RosterSettings"
	KindLineupSlotCount     Kind = "LineupSlotCount"
	KindPositionLimit       Kind = "PositionLimit"
	KindLineupSlotStatLimit Kind = "LineupSlotStatLimit"
	KindUniverseID          Kind = "UniverseID"
	KindScheduleSettings    Kind = "ScheduleSettings"
	KindMatchupPeriod       Kind = "MatchupPeriod"
	KindScheduleDivision    Kind = "ScheduleDivision"
	KindScoringSettings     Kind = "ScoringSettings"
	KindScoringItem         Kind = "ScoringItem"
	KindPointOverride       Kind = "PointOverride"
	KindTradeSettings       Kind = "TradeSettings"
	KindPosition            Kind = "Position"
	KindStat                Kind = "Stat"
)

var tables = map[Kind]string{
	KindLeague:              "leagues",
	KindDivision:            "divisions",
	KindMember:              "members",
	KindNotificationSetting: "members_notification_settings",
	KindTeam:                "teams",
	KindTeamOwner:           "teams_owners",
	KindRosterEntry:         "teams_roster_entries",
	KindDraftPick:           "draft_picks",
	KindSettings:            "settings",
	KindFinanceSettings:     "settings_finance",
	KindAcquisitionSettings: "settings_acquisition",
	KindWaiverProcessDay:    "settings_acquisition_waiver_process_days",
	KindDraftSettings:       "settings_draft",
	KindPickOrder:           "settings_draft_pick_order",
	KindRosterSettings:      "settings_roster",
	KindLineupSlotCount:     "settings_roster_lineup_slot_counts",
	KindPositionLimit:       "settings_roster_position_limits",
	KindLineupSlotStatLimit: "settings_roster_lineup_slot_stat_limits",
	KindUniverseID:          "settings_roster_universe_ids",
	KindScheduleSettings:    "settings_schedule",
	KindMatchupPeriod:       "settings_schedule_matchup_periods",
	KindScheduleDivision:    "settings_schedule_divisions",
	KindScoringSettings:     "settings_scoring",
	KindScoringItem:         "settings_scoring_items",
	KindPointOverride:       "settings_scoring_items_point_overrides",
	KindTradeSettings:       "settings_trade",
	KindPosition:            "positions",
	KindStat:                "stats",
}

// Table returns the table rows of this kind are written to. Unregistered
// kinds use their own name.
func (k Kind) Table() string {
	if t, ok := tables[k]; ok {
		return t
	}
	return string(k)
}

func (k Kind) String() string { return string(k) }

// Entity is one row-to-be.
type Entity interface {
	Kind() Kind
}

// Row is a flat column → scalar mapping.
type Row map[string]any

// Clone returns a shallow copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Ref is a foreign key placeholder. Valid is false until the referenced row's
// id is known, or the source supplied the value directly.
type Ref struct {
	Value any
	Valid bool
}

// RefTo returns a Ref holding v. A nil v yields an unset Ref.
func RefTo(v any) Ref {
	if v == nil {
		return Ref{}
	}
	return Ref{Value: v, Valid: true}
}

// Set stores id in r; a nil id clears it.
func (r *Ref) Set(id any) {
	*r = RefTo(id)
}

// Clear unsets r.
func (r *Ref) Clear() {
	*r = Ref{}
}
