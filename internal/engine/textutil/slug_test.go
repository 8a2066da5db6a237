package textutil

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"XYZ Engineering College", "xyz-engineering-college"},
		{"  Indian   Institute of Technology  ", "indian-institute-of-technology"},
		{"St. Xavier's College, Mumbai", "st-xaviers-college-mumbai"},
		{"B.Tech (Hons.)", "btech-hons"},
		{"already-a-slug", "already-a-slug"},
		{"--leading--and--trailing--", "leading-and-trailing"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
		{"ABC-123", "abc-123"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"XYZ Engineering College",
		"St. Xavier's College, Mumbai",
		"  Mixed   CASE  and   spaces ",
		"already-a-slug",
		"",
	}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestSlugifyAlphabet(t *testing.T) {
	out := Slugify("Weird!@#$%^&*() Input — with… unicode ✓ and MORE")
	for _, r := range out {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !valid {
			t.Fatalf("Slugify produced invalid character %q in %q", r, out)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  New Delhi "); got != "new delhi" {
		t.Errorf("Normalize = %q, want %q", got, "new delhi")
	}
}

func TestSearchable(t *testing.T) {
	if got := Searchable("B.Tech Computer-Science 2024"); got != "btechcomputerscience2024" {
		t.Errorf("Searchable = %q", got)
	}
}
