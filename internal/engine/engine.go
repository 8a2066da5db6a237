// Package engine implements the in-memory catalog engine: an immutable
// snapshot of institutes, programmes, and courses indexed by prefix tries
// and a faceted hash index, rebuilt atomically from the document source.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/edufinder/campus-search/internal/engine/document"
	"github.com/edufinder/campus-search/pkg/config"
	pkgerrors "github.com/edufinder/campus-search/pkg/errors"
	"github.com/edufinder/campus-search/pkg/metrics"
)

// Source fetches the full document set for a snapshot build.
type Source interface {
	FetchAll(ctx context.Context) ([]document.Institute, error)
}

// Engine owns the current snapshot and rebuilds it on demand. Queries
// always run against a single consistent snapshot; a rebuild prepares a
// complete new one and swaps the pointer.
type Engine struct {
	cfg     config.EngineConfig
	source  Source
	metrics *metrics.Metrics
	logger  *slog.Logger

	current atomic.Pointer[Snapshot]
}

// New creates an Engine with no snapshot loaded; call Build before
// serving queries.
func New(cfg config.EngineConfig, source Source, m *metrics.Metrics) *Engine {
	return &Engine{
		cfg:     cfg,
		source:  source,
		metrics: m,
		logger:  slog.Default().With("component", "engine"),
	}
}

// Build fetches the full document set, constructs a new snapshot, and
// atomically swaps it in. In-flight queries keep reading the snapshot
// they started on.
func (e *Engine) Build(ctx context.Context) error {
	docs, err := e.source.FetchAll(ctx)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RebuildsTotal.WithLabelValues("error").Inc()
		}
		return fmt.Errorf("%w: %v", pkgerrors.ErrSourceUnavailable, err)
	}

	snap := buildSnapshot(docs, e.cfg.TrieNodeCap)
	e.current.Store(snap)

	if e.metrics != nil {
		e.metrics.RebuildsTotal.WithLabelValues("success").Inc()
		e.metrics.SnapshotDocuments.WithLabelValues("institute").Set(float64(len(snap.store.Institutes)))
		e.metrics.SnapshotDocuments.WithLabelValues("programme").Set(float64(len(snap.store.Programmes)))
		e.metrics.SnapshotDocuments.WithLabelValues("course").Set(float64(len(snap.store.Courses)))
		e.metrics.SnapshotBuildSeconds.Set(snap.buildDuration.Seconds())
	}

	e.logger.Info("snapshot built",
		"institutes", len(snap.store.Institutes),
		"programmes", len(snap.store.Programmes),
		"courses", len(snap.store.Courses),
		"skipped", snap.store.Skipped,
		"duration", snap.buildDuration,
	)
	return nil
}

// Snapshot returns the current snapshot, or nil before the first Build.
func (e *Engine) Snapshot() *Snapshot {
	return e.current.Load()
}

// snapshot guards query entry points against a missing snapshot.
func (e *Engine) snapshot() (*Snapshot, error) {
	snap := e.current.Load()
	if snap == nil {
		return nil, pkgerrors.ErrSnapshotEmpty
	}
	return snap, nil
}

// observe records per-operation query metrics.
func (e *Engine) observe(operation string, started time.Time, results int) {
	if e.metrics == nil {
		return
	}
	e.metrics.QueriesTotal.WithLabelValues(operation).Inc()
	e.metrics.QueryLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	e.metrics.QueryResultsCount.WithLabelValues(operation).Observe(float64(results))
}

// Suggest runs an autocomplete query against the current snapshot.
func (e *Engine) Suggest(query string, limit int) (*SuggestResult, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = e.cfg.DefaultSuggestLimit
	}
	started := time.Now()
	res := snap.Suggest(query, limit)
	e.observe("suggest", started, len(res.Institutes)+len(res.Programmes)+len(res.Courses))
	return res, nil
}

// Search runs a filtered lookup against the current snapshot.
func (e *Engine) Search(f SearchFilters, page, limit int) (*SearchResult, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	page, limit = e.clampWindow(page, limit)
	started := time.Now()
	res := snap.Search(f, page, limit)
	e.observe("search", started, res.Totals.Institutes+res.Totals.Programmes+res.Totals.Courses)
	return res, nil
}

// Explore runs a catalog browse against the current snapshot.
func (e *Engine) Explore(f ExploreFilters, page, limit int, sortBy, sortOrder string) (*ExploreResult, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	page, limit = e.clampWindow(page, limit)
	started := time.Now()
	res := snap.Explore(f, page, limit, sortBy, sortOrder)
	e.observe("explore", started, res.Pagination.Total)
	return res, nil
}

// Institute resolves a single institute by slug.
func (e *Engine) Institute(slug string) (*InstituteDetail, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	started := time.Now()
	res, err := snap.Institute(slug)
	results := 0
	if res != nil && res.Institute != nil {
		results = 1
	}
	e.observe("institute", started, results)
	return res, err
}

// Stats summarises the current snapshot.
func (e *Engine) Stats() (*StatsResult, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	started := time.Now()
	res := snap.Stats()
	e.observe("stats", started, res.Institutes)
	return res, nil
}

// clampWindow applies the configured default and maximum page sizes.
func (e *Engine) clampWindow(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = e.cfg.DefaultPageSize
	}
	if e.cfg.MaxPageSize > 0 && limit > e.cfg.MaxPageSize {
		limit = e.cfg.MaxPageSize
	}
	return page, limit
}
