package enums

import (
	"github.com/go-extras/go-kit/must"
)

// Stat is a scoring statistic.
type Stat struct {
	ID        int
	Shorthand string
	Label     string
}

func (s Stat) code() int { return s.ID }

// IsDefault reports whether s is the not-found sentinel.
func (s Stat) IsDefault() bool { return s.ID == DefaultID }

// Equal compares stats by id.
func (s Stat) Equal(other Stat) bool { return s.ID == other.ID }

func (s Stat) String() string { return s.Shorthand }

// ColumnID returns the id to persist, or nil for DEFAULT.
func (s Stat) ColumnID() *int64 { return columnID(s.ID, s.IsDefault()) }

var (
	DefaultStat = Stat{DefaultID, "DEF", "DEFAULT"}

	StatAtBats                   = Stat{0, "AB", "At Bats"}
	StatHits                     = Stat{1, "H", "Hits"}
	StatBattingAverage           = Stat{2, "AVG", "Batting Average"}
	StatDoubles                  = Stat{3, "2B", "Doubles"}
	StatTriples                  = Stat{4, "3B", "Triples"}
	StatHomeRuns                 = Stat{5, "HR", "Home Runs"}
	StatExtraBaseHits            = Stat{6, "XBH", "Extra Base Hits"}
	StatSingles                  = Stat{7, "1B", "Singles"}
	StatTotalBases               = Stat{8, "TB", "Total Bases"}
	StatSluggingPercentage       = Stat{9, "SLG", "Slugging Percentage"}
	StatWalks                    = Stat{10, "B_BB", "Base on Balls (Walks)"}
	StatIntentionalWalks         = Stat{11, "B_IBB", "Intentional Walks"}
	StatHitByPitch               = Stat{12, "HBP", "Hit By Pitch"}
	StatSacrificeFly             = Stat{13, "SF", "Sacrifice Fly"}
	StatSacrificeHit             = Stat{14, "SH", "Sacrifice Hit (Bunt)"}
	StatSacrifices               = Stat{15, "SAC", "Total Sacrifices"}
	StatPlateAppearances         = Stat{16, "PA", "Plate Appearances"}
	StatOnBasePercentage         = Stat{17, "OBP", "On Base Percentage"}
	StatOnBasePlusSlugging       = Stat{18, "OPS", "On-base Plus Slugging"}
	StatRunsCreated              = Stat{19, "RC", "Runs Created"}
	StatRuns                     = Stat{20, "R", "Runs"}
	StatRunsBattedIn             = Stat{21, "RBI", "Runs Batted In"}
	StatStolenBases              = Stat{23, "SB", "Stolen Bases"}
	StatCaughtStealing           = Stat{24, "CS", "Caught Stealing"}
	StatNetSteals                = Stat{25, "SB-CS", "Net Steals (Steals minus Caught Stealing)"}
	StatGroundedDoublePlay       = Stat{26, "GDP", "Grounded Into Double Play"}
	StatBatterStrikeOuts         = Stat{27, "B_SO", "Strikeouts (Batter)"}
	StatPitchesSeen              = Stat{28, "PS", "Pitches Seen"}
	StatPitchesPerAppearance     = Stat{29, "PPA", "Pitches Per Appearance"}
	StatCycle                    = Stat{31, "CYC", "Cycle"}
	StatGamesPitched             = Stat{32, "GP", "Games Pitched"}
	StatGamesStarted             = Stat{33, "GS", "Games Started"}
	StatOuts                     = Stat{34, "OUTS", "Outs Recorded"}
	StatTotalBattersFaced        = Stat{35, "TBF", "Total Batters Faced"}
	StatPitches                  = Stat{36, "P", "Pitches"}
	StatHitsAllowed              = Stat{37, "P_H", "Hits Allowed"}
	StatOpponentBattingAverage   = Stat{38, "OBA", "Opponent Batting Average"}
	StatWalksAllowed             = Stat{39, "P_BB", "Walks Allowed"}
	StatIntentionalWalksAllowed  = Stat{40, "P_IBB", "Intentional Walks Allowed"}
	StatWhip                     = Stat{41, "WHIP", "Walks plus Hits per Inning Pitched"}
	StatPitcherHitByPitch        = Stat{42, "HBP", "Hit By Pitch (Pitcher)"}
	StatOpponentOnBasePercentage = Stat{43, "OOBP", "Opponent On-base Percentage"}
	StatRunsAllowed              = Stat{44, "P_R", "Runs Allowed"}
	StatEarnedRuns               = Stat{45, "ER", "Earned Runs"}
	StatHomeRunsAllowed          = Stat{46, "P_HR", "Home Runs Allowed"}
	StatEarnedRunAverage         = Stat{47, "ERA", "Earned Run Average"}
	StatStrikeOuts               = Stat{48, "K", "Strikeouts"}
	StatStrikeOutsPer9Innings    = Stat{49, "K/9", "Strikeouts per 9 Innings"}
	StatWildPitches              = Stat{50, "WP", "Wild Pitches"}
	StatBlockedPitches           = Stat{51, "BLK", "Blocked Pitches"}
	StatPickoffs                 = Stat{52, "PK", "Pickoffs"}
	StatWins                     = Stat{53, "W", "Wins"}
	StatLosses                   = Stat{54, "L", "Losses"}
	StatWinPercentage            = Stat{55, "WPCT", "Win Percentage"}
	StatSaveOpportunities        = Stat{56, "SVO", "Save Opportunities"}
	StatSaves                    = Stat{57, "SV", "Saves"}
	StatBlownSaves               = Stat{58, "BLSV", "Blown Saves"}
	StatSavePercentage           = Stat{59, "SV%", "Save Percentage"}
	StatHolds                    = Stat{60, "HLD", "Holds"}
	StatCompleteGames            = Stat{62, "CG", "Complete Games"}
	StatQualityStarts            = Stat{63, "QS", "Quality Starts"}
	StatNoHitter                 = Stat{65, "NH", "No-hitter"}
	StatPerfectGame              = Stat{66, "PG", "Perfect Game"}
	StatTotalChances             = Stat{67, "TC", "Total Chances"}
	StatPutouts                  = Stat{68, "PO", "Putouts"}
	StatAssists                  = Stat{69, "A", "Assists"}
	StatOutfieldAssists          = Stat{70, "OFA", "Outfield Assists"}
	StatFieldingPercentage       = Stat{71, "FPCT", "Fielding Percentage"}
	StatErrors                   = Stat{72, "E", "Errors"}
	StatDoublePlaysTurned        = Stat{73, "DP", "Double Plays Turned"}
	StatBatterGamesWon           = Stat{74, "B_G_W", "Batter Games Won"}
	StatBatterGamesLost          = Stat{75, "B_G_L", "Batter Games Lost"}
	StatPitcherGamesWon          = Stat{76, "P_G_W", "Pitcher Games Won"}
	StatPitcherGamesLost         = Stat{77, "P_G_L", "Pitcher Games Lost"}
	StatGamesPlayed              = Stat{81, "G", "Games Played"}
	StatStrikeoutsPerWalk        = Stat{82, "K/BB", "Strikeout-to-Walk Ratio"}
	StatSavesAndHolds            = Stat{83, "SVHD", "Saves + Holds"}
	StatStarter                  = Stat{99, "STARTER", "Starter"}
)

var stats = must.Must(newRegistry("Stat", DefaultStat,
	StatAtBats,
	StatHits,
	StatBattingAverage,
	StatDoubles,
	StatTriples,
	StatHomeRuns,
	StatExtraBaseHits,
	StatSingles,
	StatTotalBases,
	StatSluggingPercentage,
	StatWalks,
	StatIntentionalWalks,
	StatHitByPitch,
	StatSacrificeFly,
	StatSacrificeHit,
	StatSacrifices,
	StatPlateAppearances,
	StatOnBasePercentage,
	StatOnBasePlusSlugging,
	StatRunsCreated,
	StatRuns,
	StatRunsBattedIn,
	StatStolenBases,
	StatCaughtStealing,
	StatNetSteals,
	StatGroundedDoublePlay,
	StatBatterStrikeOuts,
	StatPitchesSeen,
	StatPitchesPerAppearance,
	StatCycle,
	StatGamesPitched,
	StatGamesStarted,
	StatOuts,
	StatTotalBattersFaced,
	StatPitches,
	StatHitsAllowed,
	StatOpponentBattingAverage,
	StatWalksAllowed,
	StatIntentionalWalksAllowed,
	StatWhip,
	StatPitcherHitByPitch,
	StatOpponentOnBasePercentage,
	StatRunsAllowed,
	StatEarnedRuns,
	StatHomeRunsAllowed,
	StatEarnedRunAverage,
	StatStrikeOuts,
	StatStrikeOutsPer9Innings,
	StatWildPitches,
	StatBlockedPitches,
	StatPickoffs,
	StatWins,
	StatLosses,
	StatWinPercentage,
	StatSaveOpportunities,
	StatSaves,
	StatBlownSaves,
	StatSavePercentage,
	StatHolds,
	StatCompleteGames,
	StatQualityStarts,
	StatNoHitter,
	StatPerfectGame,
	StatTotalChances,
	StatPutouts,
	StatAssists,
	StatOutfieldAssists,
	StatFieldingPercentage,
	StatErrors,
	StatDoublePlaysTurned,
	StatBatterGamesWon,
	StatBatterGamesLost,
	StatPitcherGamesWon,
	StatPitcherGamesLost,
	StatGamesPlayed,
	StatStrikeoutsPerWalk,
	StatSavesAndHolds,
	StatStarter,
))

// LookupStat resolves a stat code. It reports false when code is absent or
// not an integer; unknown integers resolve to DefaultStat.
func LookupStat(code any) (Stat, bool) {
	return stats.lookup(code)
}

// StatID looks up code and returns the id to persist, or nil.
func StatID(code any) *int64 {
	s, ok := LookupStat(code)
	if !ok {
		return nil
	}
	return s.ColumnID()
}

// Stats lists every registered stat ordered by id, without DEFAULT.
func Stats() []Stat {
	return stats.members()
}
