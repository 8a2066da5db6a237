package server

import "net/http"

// Register wires the catalog API routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/suggest", h.Suggest)
	mux.HandleFunc("GET /api/search", h.Search)
	mux.HandleFunc("GET /api/explore", h.Explore)
	mux.HandleFunc("GET /api/institute/{slug}", h.Institute)
	mux.HandleFunc("GET /api/stats", h.Stats)
	mux.HandleFunc("POST /api/rebuild", h.Rebuild)
	mux.HandleFunc("GET /api/cache/stats", h.CacheStats)
}
