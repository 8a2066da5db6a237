package keyword

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"btech colleges pune", []string{"engineering"}},
		{"mbbs", []string{"medical"}},
		{"top mba programmes", []string{"management"}},
		{"", nil},
		{"zzzzqqq", nil},
	}
	for _, c := range cases {
		got := Extract(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Extract(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// A partial token that sits inside a synonym must still resolve: "engin" is
// not a dictionary key but is a substring of "engineering".
func TestExtractPartialToken(t *testing.T) {
	got := Extract("engin")
	if !contains(got, "engineering") {
		t.Fatalf("Extract(%q) = %v, want engineering among results", "engin", got)
	}
}

// The two-way substring rule is permissive on short tokens. This pins the
// behaviour so a future tightening shows up as a deliberate test change.
func TestExtractShortTokenIsPermissive(t *testing.T) {
	got := Extract("ba")
	if !contains(got, "arts") {
		t.Fatalf("Extract(%q) = %v, want arts among results", "ba", got)
	}
}

func TestExtractDeterministic(t *testing.T) {
	inputs := []string{"btech mba law", "engin", "science commerce arts", "neet coaching"}
	for _, in := range inputs {
		first := Extract(in)
		for i := 0; i < 5; i++ {
			if got := Extract(in); !reflect.DeepEqual(got, first) {
				t.Fatalf("Extract(%q) not deterministic: %v vs %v", in, first, got)
			}
		}
	}
}

func TestCategoriesSorted(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("no categories in dictionary")
	}
	for i := 1; i < len(cats); i++ {
		if cats[i-1] >= cats[i] {
			t.Fatalf("categories not sorted: %v", cats)
		}
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
