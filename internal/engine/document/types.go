// Package document defines the catalog's three-level entity model
// (institute → programme → course), the immutable store built from a bulk
// fetch, and the flattened cross-institute views derived during the build.
package document

// Ratio is the nested metadata blob some source documents carry; its
// description doubles as the institute description when present.
type Ratio struct {
	Description    string  `json:"description,omitempty"`
	FacultyStudent float64 `json:"facultyStudent,omitempty"`
}

// Institute is the top-level catalog entity as ingested from the document
// source. Every field the query engine reads has a defined zero default;
// Slug, Description, and TotalCourses are derived during the build pass.
type Institute struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	ShortName     string         `json:"shortName,omitempty"`
	Slug          string         `json:"slug"`
	LogoURL       string         `json:"logoUrl,omitempty"`
	CoverURL      string         `json:"coverUrl,omitempty"`
	Type          string         `json:"type,omitempty"`
	Established   int            `json:"established,omitempty"`
	City          string         `json:"city,omitempty"`
	State         string         `json:"state,omitempty"`
	Address       string         `json:"address,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Email         string         `json:"email,omitempty"`
	Website       string         `json:"website,omitempty"`
	Accreditation string         `json:"accreditation,omitempty"`
	Rankings      map[string]int `json:"rankings,omitempty"`
	Overview      string         `json:"overview,omitempty"`
	Ratio         *Ratio         `json:"ratio,omitempty"`
	TopRecruiters []string       `json:"topRecruiters,omitempty"`
	Programmes    []Programme    `json:"programmes"`

	// Derived at build time.
	Description  string `json:"description,omitempty"`
	TotalCourses int    `json:"totalCourses"`
}

// Programme is owned by exactly one Institute.
type Programme struct {
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	EligibilityExams []string `json:"eligibilityExams,omitempty"`
	PlacementRating  float64  `json:"placementRating,omitempty"`
	Courses          []Course `json:"courses"`
}

// Course is owned by exactly one Programme. EligibilityExams falls back to
// the parent programme's list when absent.
type Course struct {
	Degree           string   `json:"degree"`
	Slug             string   `json:"slug"`
	Duration         string   `json:"duration,omitempty"`
	Level            string   `json:"level,omitempty"`
	TuitionFee       int64    `json:"tuitionFee,omitempty"`
	Seats            int      `json:"seats,omitempty"`
	EducationType    string   `json:"educationType,omitempty"`
	EligibilityExams []string `json:"eligibilityExams,omitempty"`
	AvgPackage       float64  `json:"avgPackage,omitempty"`
}

// Summary is the institute projection returned in search and explore
// result lists: identity, location, and a top-3 programme preview.
type Summary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ShortName     string   `json:"shortName,omitempty"`
	Slug          string   `json:"slug"`
	LogoURL       string   `json:"logoUrl,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	Type          string   `json:"type,omitempty"`
	Established   int      `json:"established,omitempty"`
	Accreditation string   `json:"accreditation,omitempty"`
	TotalCourses  int      `json:"totalCourses"`
	TopProgrammes []string `json:"topProgrammes,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// ProgrammeView is the flattened cross-institute programme projection. The
// institute back-reference is a lookup key only; ownership stays with the
// Institute.
type ProgrammeView struct {
	InstituteID      string   `json:"instituteId"`
	InstituteName    string   `json:"instituteName"`
	InstituteSlug    string   `json:"instituteSlug"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	EligibilityExams []string `json:"eligibilityExams,omitempty"`
	CourseCount      int      `json:"courseCount"`
}

// CourseView is the flattened cross-institute course projection.
type CourseView struct {
	InstituteID      string   `json:"instituteId"`
	InstituteName    string   `json:"instituteName"`
	InstituteSlug    string   `json:"instituteSlug"`
	ProgrammeName    string   `json:"programmeName"`
	ProgrammeSlug    string   `json:"programmeSlug"`
	Degree           string   `json:"degree"`
	Slug             string   `json:"slug"`
	Duration         string   `json:"duration,omitempty"`
	Level            string   `json:"level,omitempty"`
	TuitionFee       int64    `json:"tuitionFee,omitempty"`
	Seats            int      `json:"seats,omitempty"`
	EducationType    string   `json:"educationType,omitempty"`
	EligibilityExams []string `json:"eligibilityExams,omitempty"`
	AvgPackage       float64  `json:"avgPackage,omitempty"`
}
