package engine

import (
	"github.com/edufinder/campus-search/internal/engine/document"
	"github.com/edufinder/campus-search/internal/engine/facet"
	"github.com/edufinder/campus-search/internal/engine/keyword"
)

// SuggestResult carries the three autocomplete sequences plus the keywords
// the query expanded to.
type SuggestResult struct {
	Query       string                   `json:"query"`
	Institutes  []document.Summary       `json:"institutes"`
	Programmes  []document.ProgrammeView `json:"programmes"`
	Courses     []document.CourseView    `json:"courses"`
	Keywords    []string                 `json:"keywords"`
	Performance Performance              `json:"performance"`
}

// Suggest answers an autocomplete query from the three tries, falling back
// to keyword-expanded facet lookup for any entity whose trie produced
// nothing. Results are deterministic for an unchanged snapshot.
func (s *Snapshot) Suggest(query string, limit int) *SuggestResult {
	tr := startTracker()

	institutes := s.instituteTrie.Find(query, limit)
	programmes := s.programmeTrie.Find(query, limit)
	courses := s.courseTrie.Find(query, limit)
	keywords := keyword.Extract(query)

	if len(keywords) > 0 {
		var fallbackIDs facet.Set
		keywordIDs := func() facet.Set {
			if fallbackIDs != nil {
				return fallbackIDs
			}
			sets := make([]facet.Set, 0, len(keywords))
			for _, kw := range keywords {
				sets = append(sets, s.facets.Get(facet.DimKeyword, kw))
			}
			fallbackIDs = facet.Union(sets...)
			return fallbackIDs
		}

		if len(institutes) == 0 {
			ids := keywordIDs()
			for _, summary := range s.store.Summaries {
				if len(institutes) == limit {
					break
				}
				if ids.Has(summary.ID) {
					institutes = append(institutes, summary)
				}
			}
		}
		if len(programmes) == 0 {
			ids := keywordIDs()
			for _, pv := range s.store.Programmes {
				if len(programmes) == limit {
					break
				}
				if ids.Has(pv.InstituteID) {
					programmes = append(programmes, pv)
				}
			}
		}
		if len(courses) == 0 {
			ids := keywordIDs()
			for _, cv := range s.store.Courses {
				if len(courses) == limit {
					break
				}
				if ids.Has(cv.InstituteID) {
					courses = append(courses, cv)
				}
			}
		}
	}

	if institutes == nil {
		institutes = []document.Summary{}
	}
	if programmes == nil {
		programmes = []document.ProgrammeView{}
	}
	if courses == nil {
		courses = []document.CourseView{}
	}
	if keywords == nil {
		keywords = []string{}
	}

	found := len(institutes) + len(programmes) + len(courses)
	return &SuggestResult{
		Query:       query,
		Institutes:  institutes,
		Programmes:  programmes,
		Courses:     courses,
		Keywords:    keywords,
		Performance: tr.done(s.store.Size(), found),
	}
}
