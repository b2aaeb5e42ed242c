// Package builder turns decoded league payloads into an entity graph.
//
// The builder reads only the keys it knows about. Missing keys fall back to a
// per-field default (0.0 for money and points, false for flags, absent for ids
// and free values), extra keys are ignored. A container that has the wrong
// shape, such as "settings" holding a list, aborts the build with a
// *MalformedPayloadError and no graph is returned.
package builder

import (
	"fmt"
	"log/slog"

	"github.com/stokaro/leaguesync/core/entity"
)

// View selects which part of the league payload a document carries.
type View string

const (
	// ViewLeague is the league bundle: mTeam, mRoster, mMatchup, mSettings and mStandings.
	ViewLeague View = "league"
	// ViewSettings is the mSettings payload alone.
	ViewSettings View = "settings"
	// ViewDraftDetail is the mDraftDetail payload.
	ViewDraftDetail View = "draftDetail"
)

// MalformedPayloadError reports a structural problem the builder cannot
// default around.
type MalformedPayloadError struct {
	View   View
	Path   string
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed %s payload at %s: %s", e.View, e.Path, e.Reason)
}

// Builder constructs entity graphs. A Builder holds no per-build state and can
// be reused.
type Builder struct {
	logger *slog.Logger
}

// New creates a builder logging through slog.Default.
func New() *Builder {
	return &Builder{logger: slog.Default()}
}

// WithLogger sets the logger for the builder
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	tmp := *b
	tmp.logger = l
	return &tmp
}

// Build parses doc, a decoded JSON document for view, into a league graph.
//
// The document is read but never modified, so building the same document twice
// yields equal graphs.
func (b *Builder) Build(view View, doc any) (*entity.League, error) {
	switch view {
	case ViewLeague, ViewSettings, ViewDraftDetail:
	default:
		return nil, &MalformedPayloadError{View: view, Path: "$", Reason: "unsupported view"}
	}

	p := &parser{view: view, logger: b.logger}
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, &MalformedPayloadError{View: view, Path: "$", Reason: fmt.Sprintf("expected object, got %T", doc)}
	}
	obj := object{p: p, path: "$", data: root}

	league := p.league(obj)
	switch view {
	case ViewLeague:
		p.settingsInto(league, obj)
		league.Members = p.members(obj, league)
		league.Teams = p.teams(obj, league)
		league.DraftPicks = p.draftPicks(obj, league)
	case ViewSettings:
		p.settingsInto(league, obj)
	case ViewDraftDetail:
		league.DraftPicks = p.draftPicks(obj, league)
	}

	if p.err != nil {
		return nil, p.err
	}

	b.logger.Debug("Built league graph",
		"view", view,
		"divisions", len(league.Divisions),
		"members", len(league.Members),
		"teams", len(league.Teams),
		"draft_picks", len(league.DraftPicks))
	return league, nil
}
