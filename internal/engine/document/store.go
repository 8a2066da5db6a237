package document

import (
	"strings"

	"github.com/edufinder/campus-search/internal/engine/textutil"
)

// Store holds the ingested institutes plus the derived summaries and
// flattened programme/course views. A Store is immutable once Build
// returns; replacing it wholesale is the only form of update.
type Store struct {
	Institutes []*Institute
	Summaries  []Summary
	Programmes []ProgrammeView
	Courses    []CourseView

	byID    map[string]*Institute
	Skipped int
}

const topProgrammePreview = 3

// Build runs the single ingestion pass: it derives slugs, descriptions,
// levels, exam fallbacks, and course counts, and populates the flattened
// views. Documents without a name are skipped silently.
func Build(docs []Institute) *Store {
	s := &Store{
		Institutes: make([]*Institute, 0, len(docs)),
		byID:       make(map[string]*Institute, len(docs)),
	}

	for i := range docs {
		doc := docs[i]
		if strings.TrimSpace(doc.Name) == "" {
			s.Skipped++
			continue
		}
		inst := &doc

		if inst.Slug == "" {
			inst.Slug = textutil.Slugify(inst.Name)
		} else {
			inst.Slug = textutil.Slugify(inst.Slug)
		}

		inst.Description = inst.Overview
		if inst.Ratio != nil && inst.Ratio.Description != "" {
			inst.Description = inst.Ratio.Description
		}

		total := 0
		for p := range inst.Programmes {
			prog := &inst.Programmes[p]
			if prog.Slug == "" {
				prog.Slug = textutil.Slugify(prog.Name)
			}
			for c := range prog.Courses {
				course := &prog.Courses[c]
				if course.Slug == "" {
					course.Slug = textutil.Slugify(course.Degree)
				}
				course.Level = strings.ToUpper(strings.TrimSpace(course.Level))
				if len(course.EligibilityExams) == 0 {
					course.EligibilityExams = prog.EligibilityExams
				}
				total++
			}
		}
		inst.TotalCourses = total

		s.Institutes = append(s.Institutes, inst)
		s.byID[inst.ID] = inst
		s.Summaries = append(s.Summaries, summarize(inst))

		for p := range inst.Programmes {
			prog := &inst.Programmes[p]
			s.Programmes = append(s.Programmes, ProgrammeView{
				InstituteID:      inst.ID,
				InstituteName:    inst.Name,
				InstituteSlug:    inst.Slug,
				City:             inst.City,
				State:            inst.State,
				Name:             prog.Name,
				Slug:             prog.Slug,
				EligibilityExams: prog.EligibilityExams,
				CourseCount:      len(prog.Courses),
			})
			for c := range prog.Courses {
				course := &prog.Courses[c]
				s.Courses = append(s.Courses, CourseView{
					InstituteID:      inst.ID,
					InstituteName:    inst.Name,
					InstituteSlug:    inst.Slug,
					ProgrammeName:    prog.Name,
					ProgrammeSlug:    prog.Slug,
					Degree:           course.Degree,
					Slug:             course.Slug,
					Duration:         course.Duration,
					Level:            course.Level,
					TuitionFee:       course.TuitionFee,
					Seats:            course.Seats,
					EducationType:    course.EducationType,
					EligibilityExams: course.EligibilityExams,
					AvgPackage:       course.AvgPackage,
				})
			}
		}
	}

	return s
}

func summarize(inst *Institute) Summary {
	top := make([]string, 0, topProgrammePreview)
	for _, prog := range inst.Programmes {
		if len(top) == topProgrammePreview {
			break
		}
		top = append(top, prog.Name)
	}
	return Summary{
		ID:            inst.ID,
		Name:          inst.Name,
		ShortName:     inst.ShortName,
		Slug:          inst.Slug,
		LogoURL:       inst.LogoURL,
		City:          inst.City,
		State:         inst.State,
		Type:          inst.Type,
		Established:   inst.Established,
		Accreditation: inst.Accreditation,
		TotalCourses:  inst.TotalCourses,
		TopProgrammes: top,
		Description:   inst.Description,
	}
}

// ByID returns the institute with the given id, or nil.
func (s *Store) ByID(id string) *Institute {
	return s.byID[id]
}

// BySlug scans for the institute whose stored slug, or freshly computed
// name slug, equals slug. The double check keeps legacy documents without
// a persisted slug reachable.
func (s *Store) BySlug(slug string) *Institute {
	for _, inst := range s.Institutes {
		if inst.Slug == slug || textutil.Slugify(inst.Name) == slug {
			return inst
		}
	}
	return nil
}

// IDs returns every institute id in store order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.Institutes))
	for i, inst := range s.Institutes {
		out[i] = inst.ID
	}
	return out
}

// Size returns the total number of entities across all three levels; the
// performance tracker reports it as the records-searched figure.
func (s *Store) Size() int {
	return len(s.Institutes) + len(s.Programmes) + len(s.Courses)
}
