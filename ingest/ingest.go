// Package ingest wires a data source, the graph builder and the writer into
// one synchronisation run.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stokaro/leaguesync/config"
	"github.com/stokaro/leaguesync/core/builder"
	"github.com/stokaro/leaguesync/core/entity"
	"github.com/stokaro/leaguesync/core/plan"
	"github.com/stokaro/leaguesync/core/writer"
	"github.com/stokaro/leaguesync/rowstore"
	"github.com/stokaro/leaguesync/source"
)

// ErrInvalidConfiguration is returned before any fetch when a collaborator
// or setting is missing.
var ErrInvalidConfiguration = config.ErrInvalidConfiguration

// Options selects what a run writes.
type Options struct {
	// IncludeRegistries also writes the positions and stats tables.
	IncludeRegistries bool
	// IncludeDraft fetches the draft detail view when the league bundle
	// carries no picks.
	IncludeDraft bool
}

// Result is the outcome of a run.
type Result struct {
	League *entity.League
	Stats  writer.Stats
}

// Pipeline runs fetch, build and write against one source and store.
type Pipeline struct {
	source   source.Source
	store    rowstore.RowStore
	recorder writer.Recorder
	logger   *slog.Logger
}

// New creates a pipeline. Either collaborator may be nil here; the
// operations that need it report ErrInvalidConfiguration.
func New(src source.Source, store rowstore.RowStore) *Pipeline {
	return &Pipeline{
		source: src,
		store:  store,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the pipeline and everything it drives.
func (p *Pipeline) WithLogger(l *slog.Logger) *Pipeline {
	tmp := *p
	tmp.logger = l
	return &tmp
}

// WithRecorder reports every row write to r.
func (p *Pipeline) WithRecorder(r writer.Recorder) *Pipeline {
	tmp := *p
	tmp.recorder = r
	return &tmp
}

func (p *Pipeline) requireSource() error {
	if p.source == nil {
		return fmt.Errorf("%w: no data source", ErrInvalidConfiguration)
	}
	return nil
}

func (p *Pipeline) requireStore() error {
	if p.store == nil {
		return fmt.Errorf("%w: no row store", ErrInvalidConfiguration)
	}
	return nil
}

func (p *Pipeline) writer() *writer.Writer {
	w := writer.New(p.store).WithLogger(p.logger)
	if p.recorder != nil {
		w = w.WithRecorder(p.recorder)
	}
	return w
}

// Run fetches the league bundle, builds the graph and writes it. Row
// failures do not fail the run; they are reported in Result.Stats.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := errors.Join(p.requireSource(), p.requireStore()); err != nil {
		return nil, err
	}

	start := time.Now()
	league, err := p.fetchLeague(ctx, opts)
	if err != nil {
		return nil, err
	}

	stats, err := p.writer().WriteLeague(ctx, league, plan.Options{IncludeRegistries: opts.IncludeRegistries})
	if err != nil {
		return nil, fmt.Errorf("failed to write league: %w", err)
	}

	p.logger.Info("Ingest finished",
		"league_id", league.ID,
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"failed", stats.Failed,
		"duration", time.Since(start))
	return &Result{League: league, Stats: stats}, nil
}

func (p *Pipeline) fetchLeague(ctx context.Context, opts Options) (*entity.League, error) {
	b := builder.New().WithLogger(p.logger)

	doc, err := p.source.Fetch(ctx, source.LeagueRequest())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league: %w", err)
	}
	league, err := b.Build(builder.ViewLeague, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build league: %w", err)
	}

	if opts.IncludeDraft && len(league.DraftPicks) == 0 {
		doc, err := p.source.Fetch(ctx, source.DraftDetailRequest())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch draft: %w", err)
		}
		draft, err := b.Build(builder.ViewDraftDetail, doc)
		if err != nil {
			return nil, fmt.Errorf("failed to build draft: %w", err)
		}
		league.DraftPicks = draft.DraftPicks
	}
	return league, nil
}

// Members returns the member to team mapping of the league.
func (p *Pipeline) Members(ctx context.Context) ([]builder.MemberSummary, error) {
	if err := p.requireSource(); err != nil {
		return nil, err
	}
	doc, err := p.source.Fetch(ctx, source.LeagueRequest())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league: %w", err)
	}
	return builder.LeagueMembers(doc)
}

// Registries writes the positions and stats tables alone.
func (p *Pipeline) Registries(ctx context.Context) (writer.Stats, error) {
	if err := p.requireStore(); err != nil {
		return writer.Stats{}, err
	}
	return p.writer().WriteLeague(ctx, nil, plan.Options{IncludeRegistries: true})
}

// Players pages through the professional player list.
func (p *Pipeline) Players(ctx context.Context, pageSize int) ([]any, error) {
	if err := p.requireSource(); err != nil {
		return nil, err
	}
	players, err := source.FetchAllPlayers(ctx, p.source, pageSize)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Fetched players", "count", len(players))
	return players, nil
}
