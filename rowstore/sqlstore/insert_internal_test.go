package sqlstore

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

type execResult struct {
	id  int64
	err error
}

func (r execResult) LastInsertId() (int64, error) { return r.id, r.err }
func (r execResult) RowsAffected() (int64, error) { return 1, nil }

func TestInsertedID(t *testing.T) {
	noID := errors.New("LastInsertId is not supported")
	tests := []struct {
		name     string
		supplied any
		res      execResult
		want     any
		wantErr  bool
	}{
		{name: "explicit zero replaced by generated id", supplied: int64(0), res: execResult{id: 7}, want: int64(7)},
		{name: "explicit zero kept", supplied: int64(0), res: execResult{}, want: int64(0)},
		{name: "supplied string id", supplied: "A1B2", res: execResult{id: 3}, want: "A1B2"},
		{name: "supplied number id", supplied: int64(42), res: execResult{id: 42}, want: int64(42)},
		{name: "generated id", res: execResult{id: 5}, want: int64(5)},
		{name: "supplied id without generated id", supplied: int64(0), res: execResult{err: noID}, want: int64(0)},
		{name: "no id at all", res: execResult{err: noID}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			got, err := insertedID(tt.supplied, tt.res)
			if tt.wantErr {
				c.Assert(errors.Is(err, noID), qt.IsTrue)
				return
			}
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}
