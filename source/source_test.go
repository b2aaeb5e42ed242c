package source_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-extras/go-kit/must"
	"github.com/ohler55/ojg/oj"

	"github.com/stokaro/leaguesync/config"
	"github.com/stokaro/leaguesync/source"
)

func players(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = map[string]any{"id": int64(i)}
	}
	return out
}

func TestFetchAllPlayersStopsAtEmptyPage(t *testing.T) {
	c := qt.New(t)
	pages := [][]any{players(3500), players(3500), players(1200), players(0)}

	var offsets []int64
	src := source.SourceFunc(func(_ context.Context, req source.Request) (any, error) {
		filter := req.Filter.(map[string]any)["players"].(map[string]any)
		offsets = append(offsets, int64(filter["offset"].(int)))
		c.Assert(filter["limit"], qt.Equals, config.DefaultPageSize)
		c.Assert(req.Endpoint, qt.Equals, source.PlayersEndpoint)
		page := pages[len(offsets)-1]
		return page, nil
	})

	all, err := source.FetchAllPlayers(context.Background(), src, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(all, qt.HasLen, 8200)
	c.Assert(offsets, qt.DeepEquals, []int64{0, 3500, 7000, 8200})
}

func TestFetchAllPlayersErrors(t *testing.T) {
	c := qt.New(t)
	boom := errors.New("boom")

	_, err := source.FetchAllPlayers(context.Background(), source.SourceFunc(func(context.Context, source.Request) (any, error) {
		return nil, boom
	}), 10)
	c.Assert(errors.Is(err, boom), qt.IsTrue)

	_, err = source.FetchAllPlayers(context.Background(), source.SourceFunc(func(context.Context, source.Request) (any, error) {
		return "players", nil
	}), 10)
	c.Assert(err, qt.ErrorMatches, "bad players page at offset 0: expected a list of players, got string")

	calls := 0
	all, err := source.FetchAllPlayers(context.Background(), source.SourceFunc(func(context.Context, source.Request) (any, error) {
		calls++
		if calls == 1 {
			return map[string]any{"players": players(3)}, nil
		}
		return map[string]any{"players": []any{}}, nil
	}), 10)
	c.Assert(err, qt.IsNil)
	c.Assert(all, qt.HasLen, 3)
}

func TestRequestValidate(t *testing.T) {
	c := qt.New(t)

	c.Assert(source.LeagueRequest().Validate(), qt.IsNil)
	c.Assert(source.PlayersRequest().Validate(), qt.IsNil)
	c.Assert(source.DraftDetailRequest().Views, qt.DeepEquals, []source.View{source.ViewDraftDetail})

	err := source.Request{Views: []source.View{source.ViewTeam, "mEverything"}}.Validate()
	c.Assert(errors.Is(err, source.ErrInvalidView), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `invalid view: "mEverything"`)
}

func TestPlayerCardRequest(t *testing.T) {
	c := qt.New(t)

	req := source.PlayerCardRequest(2025, []int64{30193, 39832}, 10, "002024")

	c.Assert(req.Views, qt.DeepEquals, []source.View{source.ViewPlayerCard})
	c.Assert(oj.JSON(req.Filter, &oj.Options{Sort: true}), qt.JSONEquals, map[string]any{
		"players": map[string]any{
			"filterIds": map[string]any{"value": []int{30193, 39832}},
			"filterStatsForTopScoringPeriodIds": map[string]any{
				"value":           10,
				"additionalValue": []string{"002025", "102025", "002024"},
			},
		},
	})
}

func TestClientFetch(t *testing.T) {
	c := qt.New(t)

	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 12345, "teams": [{"id": 1}]}`)
	}))
	defer srv.Close()

	client, err := source.NewClient(source.ClientOptions{BaseURL: srv.URL + "/leagues/12345", ESPNS2: "s2", SWID: "{SWID}"})
	c.Assert(err, qt.IsNil)

	doc, err := client.Fetch(context.Background(), source.PlayersRequest())
	c.Assert(err, qt.IsNil)
	c.Assert(doc.(map[string]any)["id"], qt.Equals, int64(12345))

	c.Assert(got.URL.Path, qt.Equals, "/leagues/12345/players")
	c.Assert(got.URL.Query()["view"], qt.DeepEquals, []string{"players_wl", "kona_player_info"})
	c.Assert(got.Header.Get(source.FilterHeader), qt.JSONEquals, map[string]any{"filterActive": map[string]any{"value": true}})

	s2 := must.Must(got.Cookie("espn_s2"))
	c.Assert(s2.Value, qt.Equals, "s2")
	swid := must.Must(got.Cookie("SWID"))
	c.Assert(swid.Value, qt.Equals, "{SWID}")
}

func TestClientRejectsInvalidViewBeforeRequest(t *testing.T) {
	c := qt.New(t)
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := must.Must(source.NewClient(source.ClientOptions{BaseURL: srv.URL, Public: true}))
	_, err := client.Fetch(context.Background(), source.Request{Views: []source.View{"bogus"}})
	c.Assert(errors.Is(err, source.ErrInvalidView), qt.IsTrue)
	c.Assert(requests, qt.Equals, 0)
}

func TestClientHTTPError(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Check(r.Header.Get(source.FilterHeader), qt.Equals, "")
		c.Check(r.Cookies(), qt.HasLen, 0)
		http.Error(w, "not authorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := must.Must(source.NewClient(source.ClientOptions{BaseURL: srv.URL, Public: true}))
	_, err := client.Fetch(context.Background(), source.SettingsRequest())

	var httpErr *source.HTTPError
	c.Assert(errors.As(err, &httpErr), qt.IsTrue)
	c.Assert(httpErr.StatusCode, qt.Equals, http.StatusUnauthorized)
	c.Assert(httpErr.Body, qt.Contains, "not authorized")
}

func TestNewClientRequiresCookiesForPrivateLeague(t *testing.T) {
	tests := []struct {
		name string
		opts source.ClientOptions
		msg  string
	}{
		{name: "no espn_s2", opts: source.ClientOptions{LeagueID: "1", SWID: "x"}, msg: ".*espn_s2 is required.*"},
		{name: "no swid", opts: source.ClientOptions{LeagueID: "1", ESPNS2: "x"}, msg: ".*swid is required.*"},
		{name: "no league", opts: source.ClientOptions{Public: true}, msg: ".*league id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			_, err := source.NewClient(tt.opts)
			c.Assert(errors.Is(err, config.ErrInvalidConfiguration), qt.IsTrue)
			c.Assert(err, qt.ErrorMatches, tt.msg)
		})
	}
}

func TestClientOptionsFromConfig(t *testing.T) {
	c := qt.New(t)
	cfg := config.WithLeague("99", 2024)
	cfg.Public = true

	client, err := source.NewClient(source.ClientOptionsFromConfig(cfg))
	c.Assert(err, qt.IsNil)
	c.Assert(client, qt.IsNotNil)
}
