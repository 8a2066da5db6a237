package facet

import (
	"reflect"
	"testing"
)

func TestAddAndGetNormalizes(t *testing.T) {
	ix := New()
	ix.Add(DimCity, "  Ahmedabad ", "i1")
	ix.Add(DimCity, "ahmedabad", "i2")

	got := ix.Get(DimCity, "AHMEDABAD")
	if len(got) != 2 || !got.Has("i1") || !got.Has("i2") {
		t.Fatalf("Get = %v", got)
	}
}

func TestAddIgnoresEmptyValue(t *testing.T) {
	ix := New()
	ix.Add(DimState, "", "i1")
	ix.Add(DimState, "   ", "i1")
	if ix.Cardinality(DimState) != 0 {
		t.Fatalf("empty values were indexed: %d", ix.Cardinality(DimState))
	}
}

func TestGetUnknownValue(t *testing.T) {
	ix := New()
	if got := ix.Get(DimExam, "jee"); len(got) != 0 {
		t.Fatalf("Get on unknown value = %v, want empty", got)
	}
}

func TestIntersectCommutativeAssociative(t *testing.T) {
	a := NewSet("1", "2", "3", "4")
	b := NewSet("2", "3", "5")
	c := NewSet("3", "4", "5")

	if !reflect.DeepEqual(Intersect(a, b), Intersect(b, a)) {
		t.Fatal("Intersect not commutative")
	}
	left := Intersect(Intersect(a, b), c)
	right := Intersect(a, Intersect(b, c))
	if !reflect.DeepEqual(left, right) {
		t.Fatal("Intersect not associative")
	}
	if !reflect.DeepEqual(left, NewSet("3")) {
		t.Fatalf("Intersect result = %v, want {3}", left)
	}
}

// An empty right-hand operand is "no constraint", not "zero results".
func TestIntersectEmptyIsNoConstraint(t *testing.T) {
	a := NewSet("1", "2")
	got := Intersect(a, Set{})
	if !reflect.DeepEqual(got, a) {
		t.Fatalf("Intersect(a, empty) = %v, want a", got)
	}
}

func TestUnion(t *testing.T) {
	got := Union(NewSet("1", "2"), NewSet("2", "3"), Set{})
	if !reflect.DeepEqual(got, NewSet("1", "2", "3")) {
		t.Fatalf("Union = %v", got)
	}
}

func TestCounts(t *testing.T) {
	ix := New()
	ix.Add(DimCity, "pune", "i1")
	ix.Add(DimCity, "pune", "i2")
	ix.Add(DimCity, "mumbai", "i3")
	ix.Add(DimCity, "delhi", "i4")

	counts := ix.Counts(DimCity, NewSet("i1", "i2", "i3"))
	want := map[string]int{"pune": 2, "mumbai": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("Counts = %v, want %v", counts, want)
	}
}

func TestCountsUnknownDimension(t *testing.T) {
	ix := New()
	if got := ix.Counts("nope", NewSet("i1")); len(got) != 0 {
		t.Fatalf("Counts on unknown dimension = %v", got)
	}
}
