package engine

import (
	"sort"
	"strings"

	"github.com/edufinder/campus-search/internal/engine/document"
	"github.com/edufinder/campus-search/internal/engine/facet"
)

// Sort keys accepted by Explore.
const (
	SortByName        = "name"
	SortByCourses     = "courses"
	SortByEstablished = "established"
)

// ExploreFilters are the discrete filters of a catalog browse; there is no
// free-text component. Accreditation is applied as a post-filter predicate
// because grades are sparse and not hash-indexed.
type ExploreFilters struct {
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Type          string `json:"type,omitempty"`
	Level         string `json:"level,omitempty"`
	Programme     string `json:"programme,omitempty"`
	Exam          string `json:"exam,omitempty"`
	Course        string `json:"course,omitempty"`
	Accreditation string `json:"accreditation,omitempty"`
}

// Pagination is the explore pagination metadata.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// ExploreResult is one page of sorted institute summaries plus facet
// counts for the filter UI.
type ExploreResult struct {
	Institutes    []document.Summary        `json:"institutes"`
	Facets        map[string]map[string]int `json:"facets"`
	Accreditation map[string]int            `json:"accreditationCounts"`
	Pagination    Pagination                `json:"pagination"`
	SortBy        string                    `json:"sortBy"`
	SortOrder     string                    `json:"sortOrder"`
	Performance   Performance               `json:"performance"`
}

// Explore browses institutes only: discrete filter intersection, the
// accreditation post-filter, sorting, then pagination.
func (s *Snapshot) Explore(f ExploreFilters, page, limit int, sortBy, sortOrder string) *ExploreResult {
	tr := startTracker()
	page, limit = clampPage(page, limit)
	if sortBy != SortByCourses && sortBy != SortByEstablished {
		sortBy = SortByName
	}
	if sortOrder != "desc" {
		sortOrder = "asc"
	}

	ids := s.allIDs
	for _, df := range []struct {
		dim   string
		value string
	}{
		{facet.DimCity, f.City},
		{facet.DimState, f.State},
		{facet.DimType, f.Type},
		{facet.DimLevel, f.Level},
		{facet.DimProgramme, f.Programme},
		{facet.DimExam, f.Exam},
		{facet.DimCourse, f.Course},
	} {
		if df.value != "" {
			ids = facet.Intersect(ids, s.facets.Get(df.dim, df.value))
		}
	}

	accreditationCounts := make(map[string]int)
	var institutes []document.Summary
	for _, summary := range s.store.Summaries {
		if !ids.Has(summary.ID) {
			continue
		}
		if summary.Accreditation != "" {
			accreditationCounts[summary.Accreditation]++
		}
		if f.Accreditation != "" && !strings.EqualFold(summary.Accreditation, f.Accreditation) {
			continue
		}
		institutes = append(institutes, summary)
	}

	sortSummaries(institutes, sortBy, sortOrder)

	total := len(institutes)
	totalPages := (total + limit - 1) / limit

	facets := make(map[string]map[string]int, len(facet.Dimensions))
	for _, dim := range facet.Dimensions {
		facets[dim] = s.facets.Counts(dim, ids)
	}

	return &ExploreResult{
		Institutes:    pageSlice(institutes, page, limit),
		Facets:        facets,
		Accreditation: accreditationCounts,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasMore:    page*limit < total,
		},
		SortBy:      sortBy,
		SortOrder:   sortOrder,
		Performance: tr.done(len(s.store.Institutes), total),
	}
}

// sortSummaries orders institutes by the requested key; ties fall back to
// name so paging stays stable.
func sortSummaries(institutes []document.Summary, sortBy, sortOrder string) {
	less := func(a, b document.Summary) bool {
		switch sortBy {
		case SortByCourses:
			if a.TotalCourses != b.TotalCourses {
				return a.TotalCourses < b.TotalCourses
			}
		case SortByEstablished:
			if a.Established != b.Established {
				return a.Established < b.Established
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
	sort.SliceStable(institutes, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(institutes[j], institutes[i])
		}
		return less(institutes[i], institutes[j])
	})
}
