package document

import "testing"

func testDocs() []Institute {
	return []Institute{
		{
			ID:   "i1",
			Name: "XYZ Engineering College",
			City: "Ahmedabad",
			Ratio: &Ratio{
				Description: "Premier engineering institution.",
			},
			Overview: "Overview text.",
			Programmes: []Programme{
				{
					Name:             "B.Tech",
					EligibilityExams: []string{"JEE"},
					Courses: []Course{
						{Degree: "B.Tech Computer Science", Level: "undergraduate"},
						{Degree: "B.Tech Mechanical", Level: "Undergraduate", EligibilityExams: []string{"GUJCET"}},
					},
				},
			},
		},
		{
			ID:       "i2",
			Name:     "",
			Overview: "nameless document",
		},
		{
			ID:       "i3",
			Name:     "Legacy Institute",
			Overview: "No ratio block here.",
		},
	}
}

func TestBuildDerivations(t *testing.T) {
	s := Build(testDocs())

	if len(s.Institutes) != 2 {
		t.Fatalf("got %d institutes, want 2", len(s.Institutes))
	}
	if s.Skipped != 1 {
		t.Fatalf("Skipped = %d, want 1", s.Skipped)
	}

	inst := s.ByID("i1")
	if inst == nil {
		t.Fatal("i1 missing")
	}
	if inst.Slug != "xyz-engineering-college" {
		t.Errorf("slug = %q", inst.Slug)
	}
	if inst.Description != "Premier engineering institution." {
		t.Errorf("description = %q, want ratio description", inst.Description)
	}
	if inst.TotalCourses != 2 {
		t.Errorf("TotalCourses = %d, want 2", inst.TotalCourses)
	}

	course := inst.Programmes[0].Courses[0]
	if course.Level != "UNDERGRADUATE" {
		t.Errorf("level = %q, want uppercased", course.Level)
	}
	if len(course.EligibilityExams) != 1 || course.EligibilityExams[0] != "JEE" {
		t.Errorf("exam fallback failed: %v", course.EligibilityExams)
	}
	// A course with its own exams keeps them.
	if got := inst.Programmes[0].Courses[1].EligibilityExams; len(got) != 1 || got[0] != "GUJCET" {
		t.Errorf("own exams overwritten: %v", got)
	}

	legacy := s.ByID("i3")
	if legacy.Description != "No ratio block here." {
		t.Errorf("overview fallback failed: %q", legacy.Description)
	}
}

func TestBuildViews(t *testing.T) {
	s := Build(testDocs())

	if len(s.Programmes) != 1 {
		t.Fatalf("got %d programme views", len(s.Programmes))
	}
	pv := s.Programmes[0]
	if pv.InstituteID != "i1" || pv.InstituteSlug != "xyz-engineering-college" || pv.CourseCount != 2 {
		t.Errorf("programme view = %+v", pv)
	}

	if len(s.Courses) != 2 {
		t.Fatalf("got %d course views", len(s.Courses))
	}
	cv := s.Courses[0]
	if cv.ProgrammeSlug != "btech" || cv.Slug != "btech-computer-science" {
		t.Errorf("course view = %+v", cv)
	}
}

func TestBySlugLegacyFallback(t *testing.T) {
	s := Build(testDocs())

	if s.BySlug("legacy-institute") == nil {
		t.Fatal("BySlug missed stored slug")
	}
	if s.BySlug("no-such-place") != nil {
		t.Fatal("BySlug matched a missing slug")
	}
}

func TestSize(t *testing.T) {
	s := Build(testDocs())
	if got := s.Size(); got != 2+1+2 {
		t.Fatalf("Size = %d", got)
	}
}
