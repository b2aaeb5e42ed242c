package ingest_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/go-extras/go-kit/must"
	"github.com/ohler55/ojg/oj"

	"github.com/stokaro/leaguesync/core/builder"
	"github.com/stokaro/leaguesync/ingest"
	"github.com/stokaro/leaguesync/rowstore"
	"github.com/stokaro/leaguesync/rowstore/memory"
	"github.com/stokaro/leaguesync/source"
)

const leagueJSON = `{
  "id": 4242,
  "seasonId": 2025,
  "settings": {
    "name": "Dingers",
    "scheduleSettings": {"divisions": [{"id": 0, "name": "East", "size": 2}]}
  },
  "members": [
    {"id": "{A1}", "firstName": "Ana", "lastName": "Ruiz", "displayName": "anar"},
    {"id": "{B2}", "firstName": "Ben", "lastName": "Ito", "displayName": "bito"},
    {"id": "{C3}", "firstName": "Cy", "lastName": "Young", "displayName": "cy"}
  ],
  "teams": [
    {"id": 1, "name": "Ana's Aces", "divisionId": 0, "primaryOwner": "{A1}", "owners": ["{A1}"]},
    {"id": 2, "name": "Ito Express", "divisionId": 0, "primaryOwner": "{B2}", "owners": ["{B2}"]}
  ]
}`

const draftJSON = `{
  "id": 4242,
  "draftDetail": {
    "picks": [
      {"overallPickNumber": 1, "roundId": 1, "roundPickNumber": 1, "teamId": 2, "memberId": "{B2}", "playerId": 33192},
      {"overallPickNumber": 2, "roundId": 1, "roundPickNumber": 2, "teamId": 1, "memberId": "{A1}", "playerId": 39832}
    ]
  }
}`

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSource serves fixed documents by first view and counts requests.
type fakeSource struct {
	docs     map[source.View]string
	requests []source.Request
}

func (s *fakeSource) Fetch(_ context.Context, req source.Request) (any, error) {
	s.requests = append(s.requests, req)
	raw, ok := s.docs[req.Views[0]]
	if !ok {
		return nil, errors.New("unexpected request")
	}
	return oj.ParseString(raw)
}

func newSource() *fakeSource {
	return &fakeSource{docs: map[source.View]string{
		source.ViewTeam:        leagueJSON,
		source.ViewDraftDetail: draftJSON,
	}}
}

type recorder map[string]int

func (r recorder) Record(table string, _ rowstore.Outcome) {
	r[table]++
}

func TestRun(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	src := newSource()
	store := memory.New()
	rec := recorder{}

	p := ingest.New(src, store).WithLogger(quiet()).WithRecorder(rec)
	res, err := p.Run(ctx, ingest.Options{IncludeDraft: true})
	c.Assert(err, qt.IsNil)
	c.Assert(res.Stats.Failed, qt.Equals, 0)
	c.Assert(*res.League.ID, qt.Equals, int64(4242))
	c.Assert(src.requests, qt.HasLen, 2)

	c.Assert(store.Count("leagues"), qt.Equals, 1)
	c.Assert(store.Count("members"), qt.Equals, 3)
	c.Assert(store.Count("teams"), qt.Equals, 2)
	c.Assert(store.Count("draft_picks"), qt.Equals, 2)
	c.Assert(store.Count("positions"), qt.Equals, 0)
	c.Assert(rec["draft_picks"], qt.Equals, 2)

	picks := must.Must(store.GetByColumn(ctx, "draft_picks", "player_id", int64(33192)))
	c.Assert(picks, qt.HasLen, 1)
	c.Assert(picks[0]["team_id"], qt.Equals, int64(2))
	c.Assert(picks[0]["league_id"], qt.Equals, int64(4242))

	// A second run matches every row.
	again, err := ingest.New(newSource(), store).WithLogger(quiet()).Run(ctx, ingest.Options{IncludeDraft: true})
	c.Assert(err, qt.IsNil)
	c.Assert(again.Stats.Inserted, qt.Equals, 0)
	c.Assert(store.Count("draft_picks"), qt.Equals, 2)
}

func TestRunWithRegistries(t *testing.T) {
	c := qt.New(t)
	src := newSource()
	store := memory.New()

	_, err := ingest.New(src, store).WithLogger(quiet()).Run(context.Background(), ingest.Options{IncludeRegistries: true})
	c.Assert(err, qt.IsNil)
	c.Assert(src.requests, qt.HasLen, 1)
	c.Assert(store.Count("positions") > 0, qt.IsTrue)
	c.Assert(store.Count("stats") > 0, qt.IsTrue)
	c.Assert(store.Count("draft_picks"), qt.Equals, 0)
}

func TestRunRequiresCollaborators(t *testing.T) {
	c := qt.New(t)

	_, err := ingest.New(nil, nil).Run(context.Background(), ingest.Options{})
	c.Assert(errors.Is(err, ingest.ErrInvalidConfiguration), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, "(?s).*no data source.*no row store.*")

	_, err = ingest.New(nil, memory.New()).Members(context.Background())
	c.Assert(errors.Is(err, ingest.ErrInvalidConfiguration), qt.IsTrue)

	_, err = ingest.New(newSource(), nil).Registries(context.Background())
	c.Assert(errors.Is(err, ingest.ErrInvalidConfiguration), qt.IsTrue)
}

func TestRunFetchAndBuildErrors(t *testing.T) {
	c := qt.New(t)
	boom := errors.New("boom")

	failing := source.SourceFunc(func(context.Context, source.Request) (any, error) { return nil, boom })
	_, err := ingest.New(failing, memory.New()).Run(context.Background(), ingest.Options{})
	c.Assert(errors.Is(err, boom), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, "failed to fetch league: boom")

	malformed := source.SourceFunc(func(context.Context, source.Request) (any, error) { return []any{}, nil })
	store := memory.New()
	_, err = ingest.New(malformed, store).Run(context.Background(), ingest.Options{})
	var payloadErr *builder.MalformedPayloadError
	c.Assert(errors.As(err, &payloadErr), qt.IsTrue)
	c.Assert(store.Tables(), qt.HasLen, 0)
}

func TestMembers(t *testing.T) {
	c := qt.New(t)

	members, err := ingest.New(newSource(), nil).Members(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(members, qt.HasLen, 3)
	c.Assert(members[0].Name, qt.Equals, "Ana Ruiz")
	c.Assert(*members[0].TeamID, qt.Equals, int64(1))
	c.Assert(*members[1].TeamID, qt.Equals, int64(2))
	c.Assert(members[2].Username, qt.Equals, "cy")
	c.Assert(members[2].TeamID, qt.IsNil)
}

func TestRegistries(t *testing.T) {
	c := qt.New(t)
	store := memory.New()

	stats, err := ingest.New(nil, store).WithLogger(quiet()).Registries(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(stats.Inserted, qt.Equals, store.Count("positions")+store.Count("stats"))
	c.Assert(store.Count("leagues"), qt.Equals, 0)
}

func TestPlayers(t *testing.T) {
	c := qt.New(t)
	calls := 0
	src := source.SourceFunc(func(context.Context, source.Request) (any, error) {
		calls++
		if calls > 2 {
			return []any{}, nil
		}
		return []any{map[string]any{"id": int64(calls)}}, nil
	})

	players, err := ingest.New(src, nil).WithLogger(quiet()).Players(context.Background(), 1)
	c.Assert(err, qt.IsNil)
	c.Assert(players, qt.HasLen, 2)
	c.Assert(calls, qt.Equals, 3)
}

type observer struct {
	ok, failed int
}

func (o *observer) ObserveFetch(_ time.Duration, err error) {
	if err != nil {
		o.failed++
		return
	}
	o.ok++
}

func TestObserved(t *testing.T) {
	c := qt.New(t)
	obs := &observer{}
	src := ingest.Observed(newSource(), obs)

	_, err := src.Fetch(context.Background(), source.LeagueRequest())
	c.Assert(err, qt.IsNil)
	_, err = src.Fetch(context.Background(), source.SettingsRequest())
	c.Assert(err, qt.IsNotNil)

	c.Assert(obs.ok, qt.Equals, 1)
	c.Assert(obs.failed, qt.Equals, 1)
}
