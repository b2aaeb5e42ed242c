package sqlstore_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-extras/go-kit/must"
	"github.com/ohler55/ojg/oj"

	"github.com/stokaro/leaguesync/core/builder"
	"github.com/stokaro/leaguesync/core/plan"
	"github.com/stokaro/leaguesync/core/writer"
	"github.com/stokaro/leaguesync/dbschema"
	"github.com/stokaro/leaguesync/rowstore"
	"github.com/stokaro/leaguesync/rowstore/sqlstore"
)

func openStore(c *qt.C) (*dbschema.DatabaseConnection, *sqlstore.Store, *bytes.Buffer) {
	ctx := context.Background()
	conn, err := dbschema.ConnectToDatabase(ctx, "sqlite://:memory:")
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { _ = conn.Close() })

	schema := string(must.Must(os.ReadFile("testdata/schema.sql")))
	for _, stmt := range strings.Split(schema, ";\n") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := conn.ExecContext(ctx, stmt)
		c.Assert(err, qt.IsNil, qt.Commentf("statement %s", stmt))
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return conn, sqlstore.New(conn).WithLogger(logger), &logs
}

func TestInsertFindUpdate(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	_, store, _ := openStore(c)

	id, err := store.Insert(ctx, "settings_trade", rowstore.Row{"max_trades": int64(10), "revision_hours": nil, "allow_out_of_universe": false})
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, int64(1))

	found, err := store.FindByColumns(ctx, "settings_trade", rowstore.Row{"max_trades": int64(10), "revision_hours": nil, "allow_out_of_universe": false})
	c.Assert(err, qt.IsNil)
	c.Assert(found, qt.DeepEquals, []any{int64(1)})

	found, err = store.FindByColumns(ctx, "settings_trade", rowstore.Row{"max_trades": int64(10), "revision_hours": int64(24)})
	c.Assert(err, qt.IsNil)
	c.Assert(found, qt.HasLen, 0)

	second, err := store.Insert(ctx, "settings_trade", rowstore.Row{"max_trades": int64(10), "revision_hours": nil, "allow_out_of_universe": false})
	c.Assert(err, qt.IsNil)
	found, err = store.FindByColumns(ctx, "settings_trade", rowstore.Row{"max_trades": int64(10), "revision_hours": nil})
	c.Assert(err, qt.IsNil)
	c.Assert(found, qt.DeepEquals, []any{int64(1), second})

	c.Assert(store.Update(ctx, "settings_trade", id, rowstore.Row{"id": int64(99), "revision_hours": int64(24)}), qt.IsNil)
	row, err := store.GetByID(ctx, "settings_trade", int64(1))
	c.Assert(err, qt.IsNil)
	c.Assert(row["revision_hours"], qt.Equals, int64(24))
	c.Assert(row["max_trades"], qt.Equals, int64(10))

	err = store.Update(ctx, "settings_trade", int64(42), rowstore.Row{"max_trades": int64(1)})
	c.Assert(errors.Is(err, rowstore.ErrNotFound), qt.IsTrue)

	_, err = store.GetByID(ctx, "settings_trade", int64(42))
	c.Assert(errors.Is(err, rowstore.ErrNotFound), qt.IsTrue)
}

func TestInsertKeepsSuppliedIDs(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	_, store, _ := openStore(c)

	id, err := store.Insert(ctx, "members", rowstore.Row{"id": "A1B2", "username": "jd1"})
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, "A1B2")

	id, err = store.Insert(ctx, "divisions", rowstore.Row{"id": int64(0), "name": "East"})
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, int64(0))

	rows, err := store.GetByColumn(ctx, "members", "username", "jd1")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 1)
	c.Assert(rows[0]["id"], qt.Equals, "A1B2")
	c.Assert(rows[0]["first_name"], qt.IsNil)
}

func TestUnknownColumnsAndTables(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	_, store, logs := openStore(c)

	_, err := store.Insert(ctx, "divisions", rowstore.Row{"name": "East", "nickname": "E"})
	c.Assert(err, qt.IsNil)
	_, err = store.Insert(ctx, "divisions", rowstore.Row{"name": "West", "nickname": "W"})
	c.Assert(err, qt.IsNil)
	c.Assert(strings.Count(logs.String(), "Dropping column missing from table"), qt.Equals, 1)
	c.Assert(logs.String(), qt.Contains, "column=nickname")

	_, err = store.Insert(ctx, "standings", rowstore.Row{"wins": 1})
	c.Assert(errors.Is(err, rowstore.ErrUnknownTable), qt.IsTrue)

	_, err = store.GetByColumn(ctx, "divisions", "nickname", "E")
	c.Assert(err, qt.ErrorMatches, "table divisions has no column nickname")
}

const leagueJSON = `{
  "id": 501,
  "seasonId": 2025,
  "settings": {
    "name": "Rotisserie Club",
    "draftSettings": {"pickOrder": [10, 11], "date": 1680000000123},
    "rosterSettings": {"lineupSlotCounts": {"0": 1, "12": 3}},
    "scheduleSettings": {
      "divisions": [{"id": 0, "name": "East", "size": 2}],
      "matchupPeriods": {"1": [1, 2]}
    },
    "scoringSettings": {"scoringItems": [{"statId": 20, "points": 1.5}]},
    "tradeSettings": {"max": 3, "deadlineDate": 1690000000000}
  },
  "members": [{"id": "{M1}", "firstName": "Ana", "lastName": "Ruiz", "displayName": "ana"}],
  "teams": [
    {"id": 10, "name": "Comets", "divisionId": 0, "primaryOwner": "{M1}", "owners": ["{M1}"], "points": 12.5,
     "record": {"overall": {"wins": 1, "losses": 0, "ties": 0, "pointsFor": 12.5, "pointsAgainst": 3, "percentage": 1}},
     "roster": {"entries": [{"playerId": 1, "lineupSlotId": 0, "acquisitionDate": 1680000000999}]}},
    {"id": 11, "name": "Rockets", "divisionId": 0}
  ],
  "draftDetail": {"picks": [{"overallPickNumber": 1, "roundId": 1, "roundPickNumber": 1, "playerId": 1, "teamId": 10, "memberId": "{M1}"}]}
}`

func countRows(c *qt.C, conn *dbschema.DatabaseConnection, tables []string) map[string]int {
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		var n int
		err := conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM "`+table+`"`).Scan(&n)
		c.Assert(err, qt.IsNil)
		counts[table] = n
	}
	return counts
}

func TestWriterIsIdempotentOnSQLite(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	conn, store, _ := openStore(c)
	w := writer.New(store).WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	build := func() *plan.Arena {
		league, err := builder.New().Build(builder.ViewLeague, must.Must(oj.ParseString(leagueJSON)))
		c.Assert(err, qt.IsNil)
		return plan.Flatten(league, plan.Options{IncludeRegistries: true})
	}

	first, err := w.Write(ctx, build())
	c.Assert(err, qt.IsNil)
	c.Assert(first.Failed, qt.Equals, 0, qt.Commentf("failures: %v", first.Failures))
	before := countRows(c, conn, first.Order)

	second, err := w.Write(ctx, build())
	c.Assert(err, qt.IsNil)
	c.Assert(second.Failed, qt.Equals, 0)
	c.Assert(second.Inserted, qt.Equals, 0)
	c.Assert(countRows(c, conn, second.Order), qt.DeepEquals, before)

	c.Assert(before["teams"], qt.Equals, 2)
	c.Assert(before["settings_schedule_matchup_periods"], qt.Equals, 2)

	var divisionID int64
	err = conn.QueryRowContext(ctx, `SELECT division_id FROM settings_schedule_divisions`).Scan(&divisionID)
	c.Assert(err, qt.IsNil)
	c.Assert(divisionID, qt.Equals, int64(0))

	var ownerID string
	err = conn.QueryRowContext(ctx, `SELECT primary_owner_id FROM teams WHERE id = 10`).Scan(&ownerID)
	c.Assert(err, qt.IsNil)
	c.Assert(ownerID, qt.Equals, "M1")
}
