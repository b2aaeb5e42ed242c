package entity

import "github.com/stokaro/leaguesync/core/enums"

// PositionRecord is a row of the positions registry table.
type PositionRecord struct {
	ID        int64  `db:"id"`
	Shorthand string `db:"shorthand"`
	Label     string `db:"label"`
}

func (*PositionRecord) Kind() Kind { return KindPosition }

// StatRecord is a row of the stats registry table.
type StatRecord struct {
	ID        int64  `db:"id"`
	Shorthand string `db:"shorthand"`
	Label     string `db:"label"`
}

func (*StatRecord) Kind() Kind { return KindStat }

// PositionRecords returns one record per registered position.
func PositionRecords() []*PositionRecord {
	positions := enums.Positions()
	out := make([]*PositionRecord, 0, len(positions))
	for _, p := range positions {
		out = append(out, &PositionRecord{ID: int64(p.ID), Shorthand: p.Shorthand, Label: p.Label})
	}
	return out
}

// StatRecords returns one record per registered stat.
func StatRecords() []*StatRecord {
	stats := enums.Stats()
	out := make([]*StatRecord, 0, len(stats))
	for _, s := range stats {
		out = append(out, &StatRecord{ID: int64(s.ID), Shorthand: s.Shorthand, Label: s.Label})
	}
	return out
}
