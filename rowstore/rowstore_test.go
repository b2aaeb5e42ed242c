package rowstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/stokaro/leaguesync/rowstore"
	"github.com/stokaro/leaguesync/rowstore/memory"
)

func TestInsertOrUpdate(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	s := memory.New()

	row := rowstore.Row{"name": "East", "size": int64(4)}
	id, outcome, err := rowstore.InsertOrUpdate(ctx, s, "divisions", row, row, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(outcome, qt.Equals, rowstore.OutcomeInserted)

	again, outcome, err := rowstore.InsertOrUpdate(ctx, s, "divisions", row, row, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(outcome, qt.Equals, rowstore.OutcomeUpdated)
	c.Assert(again, qt.Equals, id)
	c.Assert(s.Count("divisions"), qt.Equals, 1)
}

func TestInsertOrUpdateByID(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	s := memory.New()

	_, _, err := rowstore.InsertOrUpdate(ctx, s, "teams", rowstore.Row{"id": int64(7)}, rowstore.Row{"id": int64(7), "name": "Old"}, nil)
	c.Assert(err, qt.IsNil)

	id, outcome, err := rowstore.InsertOrUpdate(ctx, s, "teams", rowstore.Row{"id": int64(7)}, rowstore.Row{"id": int64(7), "name": "New"}, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(outcome, qt.Equals, rowstore.OutcomeUpdated)
	c.Assert(id, qt.Equals, int64(7))

	got, err := s.GetByID(ctx, "teams", 7)
	c.Assert(err, qt.IsNil)
	c.Assert(got["name"], qt.Equals, "New")
}

type failingStore struct {
	*memory.Store
	findErr error
}

func (f failingStore) FindByColumns(context.Context, string, rowstore.Row) ([]any, error) {
	return nil, f.findErr
}

func TestInsertOrUpdateLookupFailure(t *testing.T) {
	c := qt.New(t)
	boom := errors.New("boom")

	_, outcome, err := rowstore.InsertOrUpdate(context.Background(), failingStore{Store: memory.New(), findErr: boom}, "teams", rowstore.Row{}, rowstore.Row{}, nil)
	c.Assert(outcome, qt.Equals, rowstore.OutcomeFailed)
	c.Assert(errors.Is(err, boom), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, "failed to look up teams row: boom")
}

func TestInsertOrUpdateSkipsClaimedRows(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	s := memory.New()
	row := rowstore.Row{"settings_roster_id": int64(3), "slot_count": int64(1)}

	// Two identical rows in one pass get a row each.
	claims := rowstore.NewClaims()
	first, outcome, err := rowstore.InsertOrUpdate(ctx, s, "settings_roster_lineup_slot_counts", row, row, claims)
	c.Assert(err, qt.IsNil)
	c.Assert(outcome, qt.Equals, rowstore.OutcomeInserted)
	claims.Claim("settings_roster_lineup_slot_counts", first)

	second, outcome, err := rowstore.InsertOrUpdate(ctx, s, "settings_roster_lineup_slot_counts", row, row, claims)
	c.Assert(err, qt.IsNil)
	c.Assert(outcome, qt.Equals, rowstore.OutcomeInserted)
	c.Assert(second, qt.Not(qt.Equals), first)
	claims.Claim("settings_roster_lineup_slot_counts", second)
	c.Assert(s.Count("settings_roster_lineup_slot_counts"), qt.Equals, 2)

	// The next pass matches them one to one.
	claims = rowstore.NewClaims()
	var got []any
	for range 2 {
		id, outcome, err := rowstore.InsertOrUpdate(ctx, s, "settings_roster_lineup_slot_counts", row, row, claims)
		c.Assert(err, qt.IsNil)
		c.Assert(outcome, qt.Equals, rowstore.OutcomeUpdated)
		claims.Claim("settings_roster_lineup_slot_counts", id)
		got = append(got, id)
	}
	c.Assert(got, qt.DeepEquals, []any{first, second})
	c.Assert(s.Count("settings_roster_lineup_slot_counts"), qt.Equals, 2)
}

func TestClaims(t *testing.T) {
	c := qt.New(t)
	var none *rowstore.Claims
	c.Assert(none.Claimed("teams", int64(1)), qt.IsFalse)
	none.Claim("teams", int64(1))

	claims := rowstore.NewClaims()
	claims.Claim("teams", int64(1))
	claims.Claim("teams", nil)
	c.Assert(claims.Claimed("teams", int64(1)), qt.IsTrue)
	c.Assert(claims.Claimed("teams", int64(2)), qt.IsFalse)
	c.Assert(claims.Claimed("divisions", int64(1)), qt.IsFalse)
}

func TestValuesEqual(t *testing.T) {
	when := time.Unix(1700000000, 0)
	tests := []struct {
		name     string
		a, b     any
		expected bool
	}{
		{name: "nil nil", a: nil, b: nil, expected: true},
		{name: "nil value", a: nil, b: int64(0), expected: false},
		{name: "int kinds", a: int64(3), b: 3, expected: true},
		{name: "int float", a: int64(3), b: 3.0, expected: true},
		{name: "fraction", a: 2.5, b: float32(2.5), expected: true},
		{name: "number string", a: int64(3), b: "3", expected: false},
		{name: "strings", a: "A", b: "A", expected: true},
		{name: "times", a: when, b: when.UTC(), expected: true},
		{name: "bools", a: true, b: false, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(rowstore.ValuesEqual(tt.a, tt.b), qt.Equals, tt.expected)
		})
	}
}
