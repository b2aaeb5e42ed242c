package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/stokaro/leaguesync/metrics"
	"github.com/stokaro/leaguesync/rowstore"
)

func TestRecord(t *testing.T) {
	c := qt.New(t)
	m := metrics.New()

	m.Record("teams", rowstore.OutcomeInserted)
	m.Record("teams", rowstore.OutcomeInserted)
	m.Record("teams", rowstore.OutcomeFailed)

	c.Assert(testutil.ToFloat64(m.RowsWritten.WithLabelValues("teams", "inserted")), qt.Equals, 2.0)
	c.Assert(testutil.ToFloat64(m.RowsWritten.WithLabelValues("teams", "failed")), qt.Equals, 1.0)
	c.Assert(testutil.ToFloat64(m.RowsWritten.WithLabelValues("divisions", "updated")), qt.Equals, 0.0)
}

func TestObserveFetch(t *testing.T) {
	c := qt.New(t)
	m := metrics.New()

	m.ObserveFetch(120*time.Millisecond, nil)
	m.ObserveFetch(time.Second, errors.New("timeout"))

	c.Assert(testutil.ToFloat64(m.Fetches.WithLabelValues("ok")), qt.Equals, 1.0)
	c.Assert(testutil.ToFloat64(m.Fetches.WithLabelValues("error")), qt.Equals, 1.0)
	c.Assert(testutil.CollectAndCount(m.FetchDuration), qt.Equals, 1)
}

func TestWriteTextfile(t *testing.T) {
	c := qt.New(t)
	m := metrics.New()
	m.Record("leagues", rowstore.OutcomeUpdated)
	m.MarkSuccess(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "leaguesync.prom")
	c.Assert(m.WriteTextfile(path), qt.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, `leaguesync_rows_written_total{outcome="updated",table="leagues"} 1`)
	c.Assert(string(data), qt.Contains, "leaguesync_last_success_timestamp_seconds 1.7e+09")
}
