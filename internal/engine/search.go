package engine

import (
	"strings"

	"github.com/edufinder/campus-search/internal/engine/document"
	"github.com/edufinder/campus-search/internal/engine/facet"
	"github.com/edufinder/campus-search/internal/engine/keyword"
	"github.com/edufinder/campus-search/internal/engine/textutil"
)

// SearchFilters are the free-text query plus discrete facet filters of a
// search request. Empty fields apply no constraint.
type SearchFilters struct {
	Query     string `json:"q,omitempty"`
	Type      string `json:"type,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Level     string `json:"level,omitempty"`
	Programme string `json:"programme,omitempty"`
	Exam      string `json:"exam,omitempty"`
	Course    string `json:"course,omitempty"`
}

// Totals carries the pre-pagination result count per collection.
type Totals struct {
	Institutes int `json:"institutes"`
	Programmes int `json:"programmes"`
	Courses    int `json:"courses"`
}

// HasMore flags whether another page exists per collection.
type HasMore struct {
	Institutes bool `json:"institutes"`
	Programmes bool `json:"programmes"`
	Courses    bool `json:"courses"`
}

// SearchResult is the full filtered lookup response: three independently
// paginated collections plus facet counts over the final institute set.
type SearchResult struct {
	Query       string                   `json:"query"`
	Keywords    []string                 `json:"keywords"`
	Institutes  []document.Summary       `json:"institutes"`
	Programmes  []document.ProgrammeView `json:"programmes"`
	Courses     []document.CourseView    `json:"courses"`
	Totals      Totals                   `json:"totals"`
	HasMore     HasMore                  `json:"hasMore"`
	Page        int                      `json:"page"`
	Limit       int                      `json:"limit"`
	Facets      map[string]map[string]int `json:"facets"`
	Performance Performance              `json:"performance"`
}

// Search narrows the full institute id set by the free-text query (keyword
// expansion first, literal trie scan as fallback) and each supplied
// discrete filter, then hydrates and paginates the three collections.
func (s *Snapshot) Search(f SearchFilters, page, limit int) *SearchResult {
	tr := startTracker()
	page, limit = clampPage(page, limit)

	ids := s.allIDs
	var keywords []string

	if f.Query != "" {
		keywords = keyword.Extract(f.Query)
		var matched facet.Set
		if len(keywords) > 0 {
			sets := make([]facet.Set, 0, len(keywords))
			for _, kw := range keywords {
				sets = append(sets, s.facets.Get(facet.DimKeyword, kw))
			}
			matched = facet.Union(sets...)
		} else {
			matched = s.trieScan(f.Query)
		}
		// A supplied free-text query that matches nothing means zero
		// results, unlike an absent filter.
		if len(matched) == 0 {
			ids = facet.Set{}
		} else {
			ids = facet.Intersect(ids, matched)
		}
	}

	for _, df := range []struct {
		dim   string
		value string
	}{
		{facet.DimType, f.Type},
		{facet.DimCity, f.City},
		{facet.DimState, f.State},
		{facet.DimLevel, f.Level},
		{facet.DimProgramme, f.Programme},
		{facet.DimExam, f.Exam},
		{facet.DimCourse, f.Course},
	} {
		if df.value != "" {
			ids = facet.Intersect(ids, s.facets.Get(df.dim, df.value))
		}
	}

	var institutes []document.Summary
	for _, summary := range s.store.Summaries {
		if ids.Has(summary.ID) {
			institutes = append(institutes, summary)
		}
	}

	var programmes []document.ProgrammeView
	for _, pv := range s.store.Programmes {
		if !ids.Has(pv.InstituteID) {
			continue
		}
		if !matchesName(pv.Name, pv.Slug, f.Programme) {
			continue
		}
		if !matchesExam(pv.EligibilityExams, f.Exam) {
			continue
		}
		programmes = append(programmes, pv)
	}

	var courses []document.CourseView
	for _, cv := range s.store.Courses {
		if !ids.Has(cv.InstituteID) {
			continue
		}
		if !matchesName(cv.Degree, cv.Slug, f.Course) {
			continue
		}
		if f.Level != "" && !strings.EqualFold(cv.Level, f.Level) {
			continue
		}
		if !matchesExam(cv.EligibilityExams, f.Exam) {
			continue
		}
		courses = append(courses, cv)
	}

	totals := Totals{
		Institutes: len(institutes),
		Programmes: len(programmes),
		Courses:    len(courses),
	}

	instPage := pageSlice(institutes, page, limit)
	progPage := pageSlice(programmes, page, limit)
	coursePage := pageSlice(courses, page, limit)

	facets := make(map[string]map[string]int, len(facet.Dimensions))
	for _, dim := range facet.Dimensions {
		facets[dim] = s.facets.Counts(dim, ids)
	}

	if keywords == nil {
		keywords = []string{}
	}
	found := totals.Institutes + totals.Programmes + totals.Courses
	return &SearchResult{
		Query:      f.Query,
		Keywords:   keywords,
		Institutes: instPage,
		Programmes: progPage,
		Courses:    coursePage,
		Totals:     totals,
		HasMore: HasMore{
			Institutes: page*limit < totals.Institutes,
			Programmes: page*limit < totals.Programmes,
			Courses:    page*limit < totals.Courses,
		},
		Page:        page,
		Limit:       limit,
		Facets:      facets,
		Performance: tr.done(s.store.Size(), found),
	}
}

// trieScan is the literal fallback when no keywords matched: collect the
// institute ids owning any trie entry that starts with the query.
func (s *Snapshot) trieScan(query string) facet.Set {
	matched := make(facet.Set)
	for _, summary := range s.instituteTrie.Find(query, 0) {
		matched[summary.ID] = struct{}{}
	}
	for _, pv := range s.programmeTrie.Find(query, 0) {
		matched[pv.InstituteID] = struct{}{}
	}
	for _, cv := range s.courseTrie.Find(query, 0) {
		matched[cv.InstituteID] = struct{}{}
	}
	return matched
}

// matchesName accepts when no filter is set, or when the filter equals the
// display name case-insensitively or its slug form.
func matchesName(name, slug, filterValue string) bool {
	if filterValue == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(filterValue), name) {
		return true
	}
	return textutil.Slugify(filterValue) == slug
}

// matchesExam accepts when no exam filter is set, or when the exam list
// contains the filter case-insensitively.
func matchesExam(exams []string, filterValue string) bool {
	if filterValue == "" {
		return true
	}
	for _, exam := range exams {
		if strings.EqualFold(exam, filterValue) {
			return true
		}
	}
	return false
}

// clampPage normalises pagination inputs; page and limit are 1-based.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

// pageSlice returns the window items[(page-1)*limit : page*limit], empty
// (never nil) when the window starts past the end.
func pageSlice[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
