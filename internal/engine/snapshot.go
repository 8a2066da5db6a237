package engine

import (
	"strings"
	"time"

	"github.com/edufinder/campus-search/internal/engine/document"
	"github.com/edufinder/campus-search/internal/engine/facet"
	"github.com/edufinder/campus-search/internal/engine/keyword"
	"github.com/edufinder/campus-search/internal/engine/trie"
)

// Snapshot is one complete, immutable build of the document store, the
// three tries, and the facet index. Queries read a snapshot without locks;
// a rebuild swaps in a whole new one.
type Snapshot struct {
	store *document.Store

	instituteTrie *trie.Trie[document.Summary]
	programmeTrie *trie.Trie[document.ProgrammeView]
	courseTrie    *trie.Trie[document.CourseView]

	facets *facet.Index
	allIDs facet.Set

	builtAt       time.Time
	buildDuration time.Duration
}

// buildSnapshot runs the single build pass over the fetched documents.
func buildSnapshot(docs []document.Institute, trieNodeCap int) *Snapshot {
	started := time.Now()
	store := document.Build(docs)

	s := &Snapshot{
		store: store,
		instituteTrie: trie.New(trieNodeCap, func(it document.Summary) string {
			return it.ID
		}),
		programmeTrie: trie.New(trieNodeCap, func(pv document.ProgrammeView) string {
			return pv.InstituteID + "/" + pv.Slug
		}),
		courseTrie: trie.New(trieNodeCap, func(cv document.CourseView) string {
			return cv.InstituteID + "/" + cv.ProgrammeSlug + "/" + cv.Slug
		}),
		facets: facet.New(),
		allIDs: facet.NewSet(store.IDs()...),
	}

	for i, inst := range store.Institutes {
		summary := store.Summaries[i]
		s.instituteTrie.Insert(inst.Name, summary)
		if inst.ShortName != "" {
			s.instituteTrie.Insert(inst.ShortName, summary)
		}

		s.facets.Add(facet.DimCity, inst.City, inst.ID)
		s.facets.Add(facet.DimState, inst.State, inst.ID)
		s.facets.Add(facet.DimType, inst.Type, inst.ID)

		var keywordText strings.Builder
		keywordText.WriteString(inst.Name)

		for _, prog := range inst.Programmes {
			s.facets.Add(facet.DimProgramme, prog.Name, inst.ID)
			for _, exam := range prog.EligibilityExams {
				s.facets.Add(facet.DimExam, exam, inst.ID)
			}
			keywordText.WriteByte(' ')
			keywordText.WriteString(prog.Name)

			for _, course := range prog.Courses {
				s.facets.Add(facet.DimCourse, course.Degree, inst.ID)
				s.facets.Add(facet.DimLevel, course.Level, inst.ID)
				for _, exam := range course.EligibilityExams {
					s.facets.Add(facet.DimExam, exam, inst.ID)
				}
				keywordText.WriteByte(' ')
				keywordText.WriteString(course.Degree)
			}
		}

		for _, tag := range keyword.Extract(keywordText.String()) {
			s.facets.Add(facet.DimKeyword, tag, inst.ID)
		}
	}

	for _, pv := range store.Programmes {
		s.programmeTrie.Insert(pv.Name, pv)
	}
	for _, cv := range store.Courses {
		s.courseTrie.Insert(cv.Degree, cv)
	}

	s.builtAt = time.Now().UTC()
	s.buildDuration = time.Since(started)
	return s
}

// Store exposes the underlying document store, mainly for tests.
func (s *Snapshot) Store() *document.Store {
	return s.store
}

// BuiltAt returns when the snapshot build finished.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// BuildDuration returns the wall-clock time the build took.
func (s *Snapshot) BuildDuration() time.Duration {
	return s.buildDuration
}
