package engine

import (
	"time"

	"github.com/edufinder/campus-search/internal/engine/facet"
)

// TrieStats reports the shape of one trie.
type TrieStats struct {
	Inserted int `json:"inserted"`
	Nodes    int `json:"nodes"`
}

// StatsResult describes the current snapshot: document counts, trie
// shapes, facet cardinalities, and when the snapshot was built.
type StatsResult struct {
	Institutes int `json:"institutes"`
	Programmes int `json:"programmes"`
	Courses    int `json:"courses"`
	Skipped    int `json:"skipped"`

	Tries  map[string]TrieStats `json:"tries"`
	Facets map[string]int       `json:"facets"`

	BuiltAt       time.Time   `json:"builtAt"`
	BuildDuration string      `json:"buildDuration"`
	Performance   Performance `json:"performance"`
}

// Stats summarises the snapshot for the diagnostics endpoint.
func (s *Snapshot) Stats() *StatsResult {
	tr := startTracker()

	tries := map[string]TrieStats{
		"institutes": {Inserted: s.instituteTrie.TotalInserted(), Nodes: s.instituteTrie.NodeCount()},
		"programmes": {Inserted: s.programmeTrie.TotalInserted(), Nodes: s.programmeTrie.NodeCount()},
		"courses":    {Inserted: s.courseTrie.TotalInserted(), Nodes: s.courseTrie.NodeCount()},
	}

	facets := make(map[string]int, len(facet.Dimensions))
	for _, dim := range facet.Dimensions {
		facets[dim] = s.facets.Cardinality(dim)
	}

	return &StatsResult{
		Institutes:    len(s.store.Institutes),
		Programmes:    len(s.store.Programmes),
		Courses:       len(s.store.Courses),
		Skipped:       s.store.Skipped,
		Tries:         tries,
		Facets:        facets,
		BuiltAt:       s.builtAt,
		BuildDuration: s.buildDuration.String(),
		Performance:   tr.done(s.store.Size(), s.store.Size()),
	}
}
