// Package facet implements the eight-dimension hash index: for every
// filterable dimension, a map from a normalised value to the set of
// institute ids carrying that value. Filtering is plain set algebra over
// those maps.
package facet

import "github.com/edufinder/campus-search/internal/engine/textutil"

// Set is a set of institute ids.
type Set map[string]struct{}

// NewSet builds a Set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Index dimension names.
const (
	DimCity      = "city"
	DimState     = "state"
	DimType      = "type"
	DimLevel     = "level"
	DimProgramme = "programme"
	DimExam      = "exam"
	DimKeyword   = "keyword"
	DimCourse    = "course"
)

// Dimensions lists every dimension the index maintains, in a stable order.
var Dimensions = []string{
	DimCity, DimState, DimType, DimLevel,
	DimProgramme, DimExam, DimKeyword, DimCourse,
}

// Index holds the value→id-set maps for all dimensions.
type Index struct {
	dims map[string]map[string]Set
}

// New creates an Index with all dimensions present and empty.
func New() *Index {
	dims := make(map[string]map[string]Set, len(Dimensions))
	for _, d := range Dimensions {
		dims[d] = make(map[string]Set)
	}
	return &Index{dims: dims}
}

// Add records that the institute id carries value in the given dimension.
// Empty values are ignored; values are normalised (lowercase, trimmed)
// before storage so lookups are case-insensitive.
func (ix *Index) Add(dimension, value, id string) {
	values, ok := ix.dims[dimension]
	if !ok {
		return
	}
	normalized := textutil.Normalize(value)
	if normalized == "" {
		return
	}
	set, ok := values[normalized]
	if !ok {
		set = make(Set)
		values[normalized] = set
	}
	set[id] = struct{}{}
}

// Get returns the id set for value in dimension, or an empty set.
func (ix *Index) Get(dimension, value string) Set {
	values, ok := ix.dims[dimension]
	if !ok {
		return Set{}
	}
	set, ok := values[textutil.Normalize(value)]
	if !ok {
		return Set{}
	}
	return set
}

// Intersect returns the ids common to a and b, iterating the smaller set
// against the larger. An empty b means "no constraint" and returns a
// unchanged; callers only intersect when a filter actually produced a set.
func Intersect(a, b Set) Set {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return a
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	out := make(Set)
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Union returns the ids present in any of the given sets.
func Union(sets ...Set) Set {
	out := make(Set)
	for _, s := range sets {
		for id := range s {
			out[id] = struct{}{}
		}
	}
	return out
}

// Counts returns, for every known value in dimension, how many ids of the
// given set also belong to that value. Values with a zero count are
// omitted.
func (ix *Index) Counts(dimension string, ids Set) map[string]int {
	values, ok := ix.dims[dimension]
	if !ok {
		return map[string]int{}
	}
	out := make(map[string]int)
	for value, set := range values {
		n := 0
		if len(ids) < len(set) {
			for id := range ids {
				if _, ok := set[id]; ok {
					n++
				}
			}
		} else {
			for id := range set {
				if _, ok := ids[id]; ok {
					n++
				}
			}
		}
		if n > 0 {
			out[value] = n
		}
	}
	return out
}

// Cardinality returns the number of distinct values stored for dimension.
func (ix *Index) Cardinality(dimension string) int {
	return len(ix.dims[dimension])
}
