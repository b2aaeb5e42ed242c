// Package source fetches league documents from the fantasy API.
//
// A Source answers one Request, a set of views plus an optional endpoint and
// filter, with a decoded JSON document. The HTTP Client is the production
// implementation; tests and the ingest pipeline accept any Source.
package source

import (
	"context"
	"errors"
	"fmt"
)

// View names a slice of league data the API can return.
type View string

const (
	ViewTeam               View = "mTeam"
	ViewBoxscore           View = "mBoxscore"
	ViewRoster             View = "mRoster"
	ViewSettings           View = "mSettings"
	ViewPlayerInfo         View = "kona_player_info"
	ViewPlayerWL           View = "player_wl"
	ViewPlayersWL          View = "players_wl"
	ViewSchedule           View = "mSchedule"
	ViewMatchup            View = "mMatchup"
	ViewStandings          View = "mStandings"
	ViewProTeamSchedules   View = "proTeamSchedules_wl"
	ViewDraftDetail        View = "mDraftDetail"
	ViewLeagueMessageBoard View = "kona_league_messageboard"
	ViewPlayerCard         View = "kona_playercard"
)

var validViews = map[View]bool{
	ViewTeam:               true,
	ViewBoxscore:           true,
	ViewRoster:             true,
	ViewSettings:           true,
	ViewPlayerInfo:         true,
	ViewPlayerWL:           true,
	ViewPlayersWL:          true,
	ViewSchedule:           true,
	ViewMatchup:            true,
	ViewStandings:          true,
	ViewProTeamSchedules:   true,
	ViewDraftDetail:        true,
	ViewLeagueMessageBoard: true,
	ViewPlayerCard:         true,
}

// ErrInvalidView is returned for a request naming a view the API does not know.
var ErrInvalidView = errors.New("invalid view")

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	return validViews[v]
}

// Request describes one API call.
type Request struct {
	Views []View
	// Endpoint is a path below the league URL, such as "players".
	Endpoint string
	// Filter is sent JSON encoded in the x-fantasy-filter header.
	Filter any
}

// Validate checks every view of the request.
func (r Request) Validate() error {
	for _, v := range r.Views {
		if !v.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidView, v)
		}
	}
	return nil
}

// Source returns the decoded JSON document for a request.
type Source interface {
	Fetch(ctx context.Context, req Request) (any, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, req Request) (any, error)

func (f SourceFunc) Fetch(ctx context.Context, req Request) (any, error) {
	return f(ctx, req)
}
