package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edufinder/campus-search/internal/engine"
	"github.com/edufinder/campus-search/internal/engine/document"
	"github.com/edufinder/campus-search/pkg/config"
)

type fixtureSource struct {
	docs []document.Institute
}

func (s *fixtureSource) FetchAll(ctx context.Context) ([]document.Institute, error) {
	return s.docs, nil
}

func testDocs() []document.Institute {
	return []document.Institute{
		{
			ID:          "inst-1",
			Name:        "National Engineering College",
			Type:        "Private",
			City:        "Chennai",
			State:       "Tamil Nadu",
			Established: 1984,
			Programmes: []document.Programme{
				{
					Name:             "Engineering",
					EligibilityExams: []string{"JEE Main"},
					Courses: []document.Course{
						{Degree: "B.Tech Computer Science", Level: "UG"},
						{Degree: "M.Tech Structures", Level: "PG"},
					},
				},
			},
		},
		{
			ID:          "inst-2",
			Name:        "Coastal Medical College",
			Type:        "Government",
			City:        "Chennai",
			State:       "Tamil Nadu",
			Established: 1965,
			Programmes: []document.Programme{
				{
					Name:             "Medicine",
					EligibilityExams: []string{"NEET"},
					Courses: []document.Course{
						{Degree: "MBBS", Level: "UG"},
					},
				},
			},
		},
	}
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.EngineConfig{
		TrieNodeCap:         10,
		DefaultSuggestLimit: 8,
		DefaultPageSize:     20,
		MaxPageSize:         100,
	}
	eng := engine.New(cfg, &fixtureSource{docs: testDocs()}, nil)
	if err := eng.Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	h := New(eng, nil, nil, cfg)
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func doGet(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSuggestRequiresQuery(t *testing.T) {
	handler := newTestHandler(t)
	rec := doGet(t, handler, "/api/suggest")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("error body missing 'error' field")
	}
}

func TestSuggestHappyPath(t *testing.T) {
	handler := newTestHandler(t)
	rec := doGet(t, handler, "/api/suggest?q=nation&limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var res engine.SuggestResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(res.Institutes) != 1 || res.Institutes[0].Name != "National Engineering College" {
		t.Fatalf("institutes = %v, want National Engineering College", res.Institutes)
	}
	if res.Performance.Summary == "" {
		t.Fatal("performance summary missing")
	}
}

func TestSuggestInvalidLimit(t *testing.T) {
	handler := newTestHandler(t)
	rec := doGet(t, handler, "/api/suggest?q=nat&limit=zero")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchWithFilters(t *testing.T) {
	handler := newTestHandler(t)
	rec := doGet(t, handler, "/api/search?exam=NEET")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res engine.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Totals.Institutes != 1 || res.Institutes[0].ID != "inst-2" {
		t.Fatalf("institutes = %v, want only inst-2", res.Institutes)
	}
}

func TestSearchRejectsBadPage(t *testing.T) {
	handler := newTestHandler(t)
	rec := doGet(t, handler, "/api/search?page=-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExploreHappyPath(t *testing.T) {
	handler := newTestHandler(t)
	rec := doGet(t, handler, "/api/explore?city=Chennai&sortBy=established&sortOrder=asc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res engine.ExploreResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Pagination.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Pagination.Total)
	}
	if res.Institutes[0].ID != "inst-2" {
		t.Fatalf("first institute = %s, want inst-2 (established 1965)", res.Institutes[0].ID)
	}
}

func TestInstituteDetailAndNotFound(t *testing.T) {
	handler := newTestHandler(t)

	rec := doGet(t, handler, "/api/institute/coastal-medical-college")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res engine.InstituteDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Institute == nil || res.Institute.ID != "inst-2" {
		t.Fatalf("institute = %+v, want inst-2", res.Institute)
	}

	rec = doGet(t, handler, "/api/institute/ghost-university")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["error"] != "Institute not found" {
		t.Fatalf("error = %v, want 'Institute not found'", body["error"])
	}
	if _, ok := body["performance"]; !ok {
		t.Fatal("404 body must carry a performance report")
	}
}

func TestStatsEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	rec := doGet(t, handler, "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res engine.StatsResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Institutes != 2 || res.Courses != 3 {
		t.Fatalf("counts = %d/%d, want 2 institutes and 3 courses", res.Institutes, res.Courses)
	}
}

func TestRebuildEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/rebuild", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestCacheKeyIsOrderIndependent(t *testing.T) {
	a := Key("search", map[string]string{"q": "btech", "city": "Chennai"})
	b := Key("search", map[string]string{"city": "chennai", "q": "BTECH"})
	if a != b {
		t.Fatalf("keys differ for equivalent params: %s vs %s", a, b)
	}
	c := Key("search", map[string]string{"q": "mbbs", "city": "Chennai"})
	if a == c {
		t.Fatal("keys collide for different params")
	}
}
