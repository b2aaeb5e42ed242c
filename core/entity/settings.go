package entity

import "time"

// Settings is the league configuration. The seven sub-settings are written
// before it and referenced through the *_id columns.
type Settings struct {
	ID              Ref     `db:"id,omitempty"`
	LeagueID        Ref     `db:"league_id"`
	AcquisitionID   Ref     `db:"acquisition_id"`
	FinanceID       Ref     `db:"finance_id"`
	DraftID         Ref     `db:"draft_id"`
	RosterID        Ref     `db:"roster_id"`
	ScheduleID      Ref     `db:"schedule_id"`
	ScoringID       Ref     `db:"scoring_id"`
	TradeID         Ref     `db:"trade_id"`
	Name            *string `db:"name"`
	Size            *int64  `db:"size"`
	RestrictionType *string `db:"restriction_type"`
	IsPublic        bool    `db:"is_public"`
	IsCustomizable  bool    `db:"is_customizable"`

	Acquisition *AcquisitionSettings
	Finance     *FinanceSettings
	Draft       *DraftSettings
	Roster      *RosterSettings
	Schedule    *ScheduleSettings
	Scoring     *ScoringSettings
	Trade       *TradeSettings
}

func (*Settings) Kind() Kind { return KindSettings }

// FinanceSettings holds the league fees.
type FinanceSettings struct {
	ID                 Ref     `db:"id,omitempty"`
	EntryFee           float64 `db:"entry_fee"`
	MiscFee            float64 `db:"misc_fee"`
	PerLoss            float64 `db:"per_loss"`
	PerTrade           float64 `db:"per_trade"`
	PlayerAcquisition  float64 `db:"player_acquisition"`
	PlayerDrop         float64 `db:"player_drop"`
	PlayerMoveToActive float64 `db:"player_move_to_active"`
	PlayerMoveToIR     float64 `db:"player_move_to_ir"`
}

func (*FinanceSettings) Kind() Kind { return KindFinanceSettings }

// AcquisitionSettings holds the waiver and acquisition rules.
type AcquisitionSettings struct {
	ID                             Ref     `db:"id,omitempty"`
	AcquisitionBudget              *int64  `db:"acquisition_budget"`
	AcquisitionLimit               *int64  `db:"acquisition_limit"`
	AcquisitionType                *string `db:"acquisition_type"`
	FinalPlaceTransactionEligible  *int64  `db:"final_place_transaction_eligible"`
	MatchupAcquisitionLimit        *int64  `db:"matchup_acquisition_limit"`
	MinimumBid                     *int64  `db:"minimum_bid"`
	WaiverHours                    *int64  `db:"waiver_hours"`
	WaiverProcessHour              *int64  `db:"waiver_process_hour"`
	IsTransactionLockingEnabled    bool    `db:"is_transaction_locking_enabled"`
	IsMatchupLimitPerScoringPeriod bool    `db:"is_matchup_limit_per_scoring_period"`
	IsUsingAcquisitionBudget       bool    `db:"is_using_acquisition_budget"`
	IsWaiverOrderReset             bool    `db:"is_waiver_order_reset"`

	WaiverProcessDays []*WaiverProcessDay
}

func (*AcquisitionSettings) Kind() Kind { return KindAcquisitionSettings }

// WaiverProcessDay is one weekday on which waivers are processed.
type WaiverProcessDay struct {
	ID                    Ref     `db:"id,omitempty"`
	SettingsAcquisitionID Ref     `db:"settings_acquisition_id"`
	Day                   *string `db:"day"`
}

func (*WaiverProcessDay) Kind() Kind { return KindWaiverProcessDay }

// DraftSettings describes the draft and owns the pick order.
type DraftSettings struct {
	ID                Ref        `db:"id,omitempty"`
	AuctionBudget     *int64     `db:"auction_budget"`
	KeeperCount       *int64     `db:"keeper_count"`
	KeeperCountFuture *int64     `db:"keeper_count_future"`
	KeeperOrderType   *string    `db:"keeper_order_type"`
	LeagueSubType     *string    `db:"league_sub_type"`
	OrderType         *string    `db:"order_type"`
	TimePerSelection  *int64     `db:"time_per_selection"`
	Type              *string    `db:"type"`
	IsTradingEnabled  bool       `db:"is_trading_enabled"`
	AvailableDate     *time.Time `db:"available_date"`
	Date              *time.Time `db:"date"`

	PickOrder []*PickOrder
}

func (*DraftSettings) Kind() Kind { return KindDraftSettings }

// PickOrder is one slot of the draft order. Position is 0-based.
type PickOrder struct {
	ID              Ref   `db:"id,omitempty"`
	SettingsDraftID Ref   `db:"settings_draft_id"`
	TeamID          Ref   `db:"team_id"`
	Position        int64 `db:"position"`
}

func (*PickOrder) Kind() Kind { return KindPickOrder }

// RosterSettings holds roster rules and the per-position limits.
type RosterSettings struct {
	ID                     Ref     `db:"id,omitempty"`
	LineupLocktimeType     *string `db:"lineup_locktime_type"`
	MoveLimit              *int64  `db:"move_limit"`
	RosterLocktimeType     *string `db:"roster_locktime_type"`
	IsBenchUnlimited       bool    `db:"is_bench_unlimited"`
	IsUsingUndroppableList bool    `db:"is_using_undroppable_list"`

	LineupSlotCounts     []*LineupSlotCount
	PositionLimits       []*PositionLimit
	LineupSlotStatLimits []*LineupSlotStatLimit
	UniverseIDs          []*UniverseID
}

func (*RosterSettings) Kind() Kind { return KindRosterSettings }

// LineupSlotCount is the number of lineup slots for one position.
type LineupSlotCount struct {
	ID               Ref    `db:"id,omitempty"`
	SettingsRosterID Ref    `db:"settings_roster_id"`
	PositionID       *int64 `db:"position_id,omitempty"`
	SlotCount        int64  `db:"slot_count"`
}

func (*LineupSlotCount) Kind() Kind { return KindLineupSlotCount }

// PositionLimit caps how many players of one position a roster holds.
type PositionLimit struct {
	ID               Ref    `db:"id,omitempty"`
	SettingsRosterID Ref    `db:"settings_roster_id"`
	PositionID       *int64 `db:"position_id,omitempty"`
	PositionLimit    int64  `db:"position_limit"`
}

func (*PositionLimit) Kind() Kind { return KindPositionLimit }

// LineupSlotStatLimit caps one stat for a lineup slot.
type LineupSlotStatLimit struct {
	ID               Ref      `db:"id,omitempty"`
	SettingsRosterID Ref      `db:"settings_roster_id"`
	PositionID       *int64   `db:"position_id,omitempty"`
	StatID           *int64   `db:"stat_id,omitempty"`
	StatLimit        *float64 `db:"stat_limit"`
}

func (*LineupSlotStatLimit) Kind() Kind { return KindLineupSlotStatLimit }

// UniverseID is one player universe the roster draws from.
type UniverseID struct {
	ID               Ref   `db:"id,omitempty"`
	SettingsRosterID Ref   `db:"settings_roster_id"`
	UniverseID       int64 `db:"universe_id"`
}

func (*UniverseID) Kind() Kind { return KindUniverseID }

// ScheduleSettings describes the season schedule and playoffs.
type ScheduleSettings struct {
	ID                                   Ref     `db:"id,omitempty"`
	MatchupPeriodCount                   *int64  `db:"matchup_period_count"`
	MatchupPeriodLength                  *int64  `db:"matchup_period_length"`
	PeriodTypeID                         *int64  `db:"period_type_id"`
	PlayoffMatchupPeriodLength           *int64  `db:"playoff_matchup_period_length"`
	PlayoffSeedingRule                   *string `db:"playoff_seeding_rule"`
	PlayoffSeedingRuleBy                 *int64  `db:"playoff_seeding_rule_by"`
	PlayoffTeamCount                     *int64  `db:"playoff_team_count"`
	IsPlayoffReseed                      bool    `db:"is_playoff_reseed"`
	IsVariablePlayoffMatchupPeriodLength bool    `db:"is_variable_playoff_matchup_period_length"`

	MatchupPeriods []*MatchupPeriod
	Divisions      []*ScheduleDivision
}

func (*ScheduleSettings) Kind() Kind { return KindScheduleSettings }

// MatchupPeriod is one (matchup, scoring period) pair.
type MatchupPeriod struct {
	ID                 Ref   `db:"id,omitempty"`
	SettingsScheduleID Ref   `db:"settings_schedule_id"`
	MatchupID          int64 `db:"matchup_id"`
	PeriodID           int64 `db:"period_id"`
}

func (*MatchupPeriod) Kind() Kind { return KindMatchupPeriod }

// ScheduleDivision places a division in the schedule.
type ScheduleDivision struct {
	ID                 Ref `db:"id,omitempty"`
	SettingsScheduleID Ref `db:"settings_schedule_id"`
	DivisionID         Ref `db:"division_id"`
}

func (*ScheduleDivision) Kind() Kind { return KindScheduleDivision }

// ScoringSettings holds the scoring type and its items.
type ScoringSettings struct {
	ID                        Ref     `db:"id,omitempty"`
	ScoringType               *string `db:"scoring_type"`
	HomeTeamBonus             float64 `db:"home_team_bonus"`
	MatchupTieRule            *string `db:"matchup_tie_rule"`
	MatchupTieRuleBy          *int64  `db:"matchup_tie_rule_by"`
	PlayerRankType            *string `db:"player_rank_type"`
	PlayoffHomeTeamBonus      float64 `db:"playoff_home_team_bonus"`
	PlayoffMatchupTieRule     *string `db:"playoff_matchup_tie_rule"`
	PlayoffMatchupTieRuleBy   *int64  `db:"playoff_matchup_tie_rule_by"`
	AllowOutOfPositionScoring bool    `db:"allow_out_of_position_scoring"`

	Items []*ScoringItem
}

func (*ScoringSettings) Kind() Kind { return KindScoringSettings }

// ScoringItem awards points for one stat.
type ScoringItem struct {
	ID                Ref     `db:"id,omitempty"`
	SettingsScoringID Ref     `db:"settings_scoring_id"`
	StatID            *int64  `db:"stat_id,omitempty"`
	Points            float64 `db:"points"`
	LeagueRanking     float64 `db:"league_ranking"`
	LeagueTotal       float64 `db:"league_total"`
	IsReverseItem     bool    `db:"is_reverse_item"`

	PointOverrides []*PointOverride
}

func (*ScoringItem) Kind() Kind { return KindScoringItem }

// PointOverride replaces an item's points for one lineup slot.
type PointOverride struct {
	ID                    Ref      `db:"id,omitempty"`
	SettingsScoringItemID Ref      `db:"settings_scoring_item_id"`
	Key                   string   `db:"key"`
	Value                 *float64 `db:"value"`
}

func (*PointOverride) Kind() Kind { return KindPointOverride }

// TradeSettings holds the trade rules.
type TradeSettings struct {
	ID                 Ref        `db:"id,omitempty"`
	MaxTrades          *int64     `db:"max_trades"`
	RevisionHours      *int64     `db:"revision_hours"`
	VetoVotesRequired  *int64     `db:"veto_votes_required"`
	DeadlineDate       *time.Time `db:"deadline_date"`
	AllowOutOfUniverse bool       `db:"allow_out_of_universe"`
}

func (*TradeSettings) Kind() Kind { return KindTradeSettings }
