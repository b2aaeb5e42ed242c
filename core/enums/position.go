package enums

import (
	"github.com/go-extras/go-kit/must"
)

// Position is a roster slot or player position.
type Position struct {
	ID        int
	Shorthand string
	Label     string
}

func (p Position) code() int { return p.ID }

// IsDefault reports whether p is the not-found sentinel.
func (p Position) IsDefault() bool { return p.ID == DefaultID }

// Equal compares positions by id.
func (p Position) Equal(other Position) bool { return p.ID == other.ID }

func (p Position) String() string { return p.Shorthand }

// ColumnID returns the id to persist, or nil for DEFAULT.
func (p Position) ColumnID() *int64 { return columnID(p.ID, p.IsDefault()) }

var (
	DefaultPosition = Position{DefaultID, "_", "DEFAULT"}

	PositionCatcher                         = Position{0, "C", "Catcher"}
	PositionFirstBase                       = Position{1, "1B", "First Baseman"}
	PositionSecondBase                      = Position{2, "2B", "Second Baseman"}
	PositionThirdBase                       = Position{3, "3B", "Third Baseman"}
	PositionShortstop                       = Position{4, "SS", "Shortstop"}
	PositionOutfield                        = Position{5, "OF", "Outfielder"}
	PositionSecondBaseShortstop             = Position{6, "2B/SS", "Second Baseman/Shortstop"}
	PositionFirstBaseThirdBase              = Position{7, "1B/3B", "First Baseman/Third Baseman"}
	PositionLeftField                       = Position{8, "LF", "Left Fielder"}
	PositionCenterField                     = Position{9, "CF", "Center Fielder"}
	PositionRightField                      = Position{10, "RF", "Right Fielder"}
	PositionDesignatedHitter                = Position{11, "DH", "Designated Hitter"}
	PositionUtility                         = Position{12, "UTIL", "Utility"}
	PositionPitcher                         = Position{13, "P", "Pitcher"}
	PositionStartingPitcher                 = Position{14, "SP", "Starting Pitcher"}
	PositionReliefPitcher                   = Position{15, "RP", "Relief Pitcher"}
	PositionBench                           = Position{16, "BE", "Bench"}
	PositionInjuredList                     = Position{17, "IL", "Injured List"}
	PositionUnknown                         = Position{18, "_", "Unknown"}
	PositionInfielder                       = Position{19, "IF", "Infielder"}
	PositionUnknownAlt                      = Position{21, "-", "Unknown Alt"}
	PositionDesignatedHitterStartingPitcher = Position{22, "DH/SP", "Designated Hitter/Starting Pitcher"}
)

var positions = must.Must(newRegistry("Position", DefaultPosition,
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionShortstop,
	PositionOutfield,
	PositionSecondBaseShortstop,
	PositionFirstBaseThirdBase,
	PositionLeftField,
	PositionCenterField,
	PositionRightField,
	PositionDesignatedHitter,
	PositionUtility,
	PositionPitcher,
	PositionStartingPitcher,
	PositionReliefPitcher,
	PositionBench,
	PositionInjuredList,
	PositionUnknown,
	PositionInfielder,
	PositionUnknownAlt,
	PositionDesignatedHitterStartingPitcher,
))

// LookupPosition resolves a position code. It reports false when code is
// absent or not an integer; unknown integers resolve to DefaultPosition.
func LookupPosition(code any) (Position, bool) {
	return positions.lookup(code)
}

// PositionID looks up code and returns the id to persist. Absent input and
// DEFAULT both yield nil.
func PositionID(code any) *int64 {
	p, ok := LookupPosition(code)
	if !ok {
		return nil
	}
	return p.ColumnID()
}

// Positions lists every registered position ordered by id, without DEFAULT.
func Positions() []Position {
	return positions.members()
}
