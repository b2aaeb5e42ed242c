package entity

import "time"

// League is the root of the graph. Its id comes from the source.
type League struct {
	ID              *int64 `db:"id,omitempty"`
	SeasonID        *int64 `db:"season_id"`
	SegmentID       *int64 `db:"segment_id"`
	ScoringPeriodID *int64 `db:"scoring_period_id"`
	GameID          *int64 `db:"game_id"`

	Settings   *Settings
	Divisions  []*Division
	Members    []*Member
	Teams      []*Team
	DraftPicks []*DraftPick
}

func (*League) Kind() Kind { return KindLeague }

// Division groups teams within a league. Its id comes from the source.
type Division struct {
	ID       *int64  `db:"id,omitempty"`
	LeagueID Ref     `db:"league_id"`
	Name     *string `db:"name"`
	Size     *int64  `db:"size"`
}

func (*Division) Kind() Kind { return KindDivision }

// Member is a league member. ID is the source GUID without braces.
type Member struct {
	ID              string  `db:"id,omitempty"`
	LeagueID        Ref     `db:"league_id"`
	Username        *string `db:"username"`
	FirstName       *string `db:"first_name"`
	LastName        *string `db:"last_name"`
	IsLeagueCreator bool    `db:"is_league_creator"`
	IsLeagueManager bool    `db:"is_league_manager"`

	NotificationSettings []*NotificationSetting
}

func (*Member) Kind() Kind { return KindMember }

// NotificationSetting is one notification preference of a member.
type NotificationSetting struct {
	ID        Ref     `db:"id,omitempty"`
	MemberID  Ref     `db:"member_id"`
	SettingID *int64  `db:"setting_id"`
	Type      *string `db:"type"`
	Enabled   bool    `db:"enabled"`
}

func (*NotificationSetting) Kind() Kind { return KindNotificationSetting }

// Team is a fantasy team with its standings. DivisionID and PrimaryOwnerID
// start out holding the source values and are rebound to the written rows.
type Team struct {
	ID                    *int64   `db:"id,omitempty"`
	LeagueID              Ref      `db:"league_id"`
	DivisionID            Ref      `db:"division_id"`
	PrimaryOwnerID        Ref      `db:"primary_owner_id"`
	Name                  *string  `db:"name"`
	Abbreviation          *string  `db:"abbreviation"`
	Logo                  *string  `db:"logo"`
	LogoType              *string  `db:"logo_type"`
	PlayoffSeed           int64    `db:"playoff_seed"`
	PlayoffClinchType     *string  `db:"playoff_clinch_type"`
	Points                float64  `db:"points"`
	PointsAdjusted        float64  `db:"points_adjusted"`
	PointsDelta           float64  `db:"points_delta"`
	CurrentProjectedRank  int64    `db:"current_projected_rank"`
	DraftDayProjectedRank int64    `db:"draft_day_projected_rank"`
	RankCalculatedFinal   int64    `db:"rank_calculated_final"`
	RankFinal             int64    `db:"rank_final"`
	WaiverRank            int64    `db:"waiver_rank"`
	IsActive              bool     `db:"is_active"`
	Wins                  *int64   `db:"wins"`
	Losses                *int64   `db:"losses"`
	Ties                  *int64   `db:"ties"`
	PointsFor             float64  `db:"points_for"`
	PointsAgainst         float64  `db:"points_against"`
	WinPercentage         *float64 `db:"win_percentage"`

	Owners []*TeamOwner
	Roster []*RosterEntry
}

func (*Team) Kind() Kind { return KindTeam }

// TeamOwner links a team to one of its owners.
type TeamOwner struct {
	ID      Ref `db:"id,omitempty"`
	TeamID  Ref `db:"team_id"`
	OwnerID Ref `db:"owner_id"`
}

func (*TeamOwner) Kind() Kind { return KindTeamOwner }

// RosterEntry is one player slot on a team roster. LineupSlotID is omitted when
// the slot code resolves to the DEFAULT position.
type RosterEntry struct {
	ID              Ref        `db:"id,omitempty"`
	TeamID          Ref        `db:"team_id"`
	PlayerID        *int64     `db:"player_id"`
	PlayerName      *string    `db:"player_name"`
	LineupSlotID    *int64     `db:"lineup_slot_id,omitempty"`
	AcquisitionType *string    `db:"acquisition_type"`
	AcquisitionDate *time.Time `db:"acquisition_date"`
	InjuryStatus    *string    `db:"injury_status"`
	Status          *string    `db:"status"`
}

func (*RosterEntry) Kind() Kind { return KindRosterEntry }

// DraftPick is one completed pick of the league draft.
type DraftPick struct {
	ID                Ref     `db:"id,omitempty"`
	LeagueID          Ref     `db:"league_id"`
	TeamID            Ref     `db:"team_id"`
	MemberID          Ref     `db:"member_id"`
	OverallPickNumber *int64  `db:"overall_pick_number"`
	RoundID           *int64  `db:"round_id"`
	RoundPickNumber   *int64  `db:"round_pick_number"`
	PlayerID          *int64  `db:"player_id"`
	BidAmount         float64 `db:"bid_amount"`
	Keeper            bool    `db:"keeper"`
	ReservedForKeeper bool    `db:"reserved_for_keeper"`
	AutoDraftTypeID   *int64  `db:"auto_draft_type_id"`
}

func (*DraftPick) Kind() Kind { return KindDraftPick }
