// Package server implements the HTTP surface of the catalog service: the
// query endpoints, the Redis response cache, and the rebuild trigger.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/edufinder/campus-search/internal/engine"
	"github.com/edufinder/campus-search/internal/events"
	"github.com/edufinder/campus-search/pkg/config"
	pkgerrors "github.com/edufinder/campus-search/pkg/errors"
	"github.com/edufinder/campus-search/pkg/logger"
)

// Handler serves the catalog API. cache and collector are optional; a nil
// value disables response caching or query analytics respectively.
type Handler struct {
	engine    *engine.Engine
	cache     *ResponseCache
	collector *events.Collector
	cfg       config.EngineConfig
	logger    *slog.Logger
}

// New creates a Handler.
func New(eng *engine.Engine, cache *ResponseCache, collector *events.Collector, cfg config.EngineConfig) *Handler {
	return &Handler{
		engine:    eng,
		cache:     cache,
		collector: collector,
		cfg:       cfg,
		logger:    slog.Default().With("component", "api-handler"),
	}
}

// Suggest handles GET /api/suggest?q=...&limit=...
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	limit, ok := h.parseLimit(w, r, h.cfg.DefaultSuggestLimit)
	if !ok {
		return
	}

	key := Key("suggest", map[string]string{
		"q":     query,
		"limit": strconv.Itoa(limit),
	})
	body, cacheHit, err := h.cached(r, key, func() (any, error) {
		return h.engine.Suggest(query, limit)
	})
	if err != nil {
		log.Error("suggest failed", "query", query, "error", err)
		h.writeErrorFor(w, err)
		return
	}

	h.track(r, events.QueryEvent{
		Operation: events.OpSuggest,
		Query:     query,
		LatencyMs: time.Since(start).Milliseconds(),
		CacheHit:  cacheHit,
	})
	h.writeRaw(w, http.StatusOK, body)
}

// Search handles GET /api/search with the free-text query and facet filters.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	q := r.URL.Query()
	filters := engine.SearchFilters{
		Query:     q.Get("q"),
		Type:      q.Get("type"),
		City:      q.Get("city"),
		State:     q.Get("state"),
		Level:     q.Get("level"),
		Programme: q.Get("programme"),
		Exam:      q.Get("exam"),
		Course:    q.Get("course"),
	}
	page, limit, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	params := map[string]string{
		"q": filters.Query, "type": filters.Type, "city": filters.City,
		"state": filters.State, "level": filters.Level,
		"programme": filters.Programme, "exam": filters.Exam,
		"course": filters.Course,
		"page":   strconv.Itoa(page), "limit": strconv.Itoa(limit),
	}
	body, cacheHit, err := h.cached(r, Key("search", params), func() (any, error) {
		return h.engine.Search(filters, page, limit)
	})
	if err != nil {
		log.Error("search failed", "query", filters.Query, "error", err)
		h.writeErrorFor(w, err)
		return
	}

	h.track(r, events.QueryEvent{
		Operation: events.OpSearch,
		Query:     filters.Query,
		Filters:   nonEmpty(params, "q", "page", "limit"),
		LatencyMs: time.Since(start).Milliseconds(),
		CacheHit:  cacheHit,
	})
	h.writeRaw(w, http.StatusOK, body)
}

// Explore handles GET /api/explore: discrete filters, sorting, pagination.
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	q := r.URL.Query()
	filters := engine.ExploreFilters{
		City:          q.Get("city"),
		State:         q.Get("state"),
		Type:          q.Get("type"),
		Level:         q.Get("level"),
		Programme:     q.Get("programme"),
		Exam:          q.Get("exam"),
		Course:        q.Get("course"),
		Accreditation: q.Get("accreditation"),
	}
	sortBy := q.Get("sortBy")
	sortOrder := q.Get("sortOrder")
	page, limit, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	params := map[string]string{
		"city": filters.City, "state": filters.State, "type": filters.Type,
		"level": filters.Level, "programme": filters.Programme,
		"exam": filters.Exam, "course": filters.Course,
		"accreditation": filters.Accreditation,
		"sortBy":        sortBy, "sortOrder": sortOrder,
		"page": strconv.Itoa(page), "limit": strconv.Itoa(limit),
	}
	body, cacheHit, err := h.cached(r, Key("explore", params), func() (any, error) {
		return h.engine.Explore(filters, page, limit, sortBy, sortOrder)
	})
	if err != nil {
		log.Error("explore failed", "error", err)
		h.writeErrorFor(w, err)
		return
	}

	h.track(r, events.QueryEvent{
		Operation: events.OpExplore,
		Filters:   nonEmpty(params, "page", "limit", "sortBy", "sortOrder"),
		LatencyMs: time.Since(start).Milliseconds(),
		CacheHit:  cacheHit,
	})
	h.writeRaw(w, http.StatusOK, body)
}

// Institute handles GET /api/institute/{slug}.
func (h *Handler) Institute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	slug := r.PathValue("slug")
	if slug == "" {
		h.writeError(w, http.StatusBadRequest, "institute slug is required")
		return
	}

	res, err := h.engine.Institute(slug)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.ErrInstituteNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]any{
				"error":       err.Error(),
				"performance": res.Performance,
			})
			return
		}
		log.Error("institute lookup failed", "slug", slug, "error", err)
		h.writeErrorFor(w, err)
		return
	}

	h.track(r, events.QueryEvent{
		Operation: events.OpInstitute,
		Query:     slug,
		Results:   1,
		LatencyMs: time.Since(start).Milliseconds(),
	})
	h.writeJSON(w, http.StatusOK, res)
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.Stats()
	if err != nil {
		h.writeErrorFor(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// Rebuild handles POST /api/rebuild: refetch documents, build a new
// snapshot, swap it in, and drop the response cache.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if err := h.engine.Build(ctx); err != nil {
		log.Error("rebuild failed", "error", err)
		h.writeErrorFor(w, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			log.Error("cache invalidation after rebuild failed", "error", err)
		}
	}
	snap := h.engine.Snapshot()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"documents": snap.Store().Size(),
		"buildMs":   snap.BuildDuration().Milliseconds(),
	})
}

// CacheStats handles GET /api/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":    hits,
		"misses":  misses,
		"total":   total,
		"hitRate": hitRate,
	})
}

// cached runs compute through the response cache when one is configured,
// otherwise computes and marshals directly.
func (h *Handler) cached(r *http.Request, key string, compute func() (any, error)) ([]byte, bool, error) {
	marshal := func() ([]byte, error) {
		res, err := compute()
		if err != nil {
			return nil, err
		}
		return json.Marshal(res)
	}
	if h.cache == nil {
		body, err := marshal()
		return body, false, err
	}
	return h.cache.GetOrCompute(r.Context(), key, marshal)
}

func (h *Handler) track(r *http.Request, event events.QueryEvent) {
	if h.collector == nil {
		return
	}
	event.RequestID = logger.RequestID(r.Context())
	event.Timestamp = time.Now().UTC()
	h.collector.Track(event)
}

func (h *Handler) parseLimit(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	if limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}
	return limit, true
}

func (h *Handler) parseWindow(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "page must be a positive integer")
			return 0, 0, false
		}
		page = parsed
	}
	limit, ok := h.parseLimit(w, r, h.cfg.DefaultPageSize)
	if !ok {
		return 0, 0, false
	}
	return page, limit, true
}

// nonEmpty copies params minus the named keys and any empty values.
func nonEmpty(params map[string]string, exclude ...string) map[string]string {
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}
	out := make(map[string]string)
	for name, value := range params {
		if _, ok := skip[name]; ok || value == "" {
			continue
		}
		out[name] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (h *Handler) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeErrorFor(w http.ResponseWriter, err error) {
	h.writeError(w, pkgerrors.HTTPStatusCode(err), err.Error())
}
