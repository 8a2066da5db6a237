package engine

import (
	"fmt"
	"time"
)

// Performance is the timing and throughput report attached to every query
// response. It is purely observational and never affects results.
type Performance struct {
	Nanos         int64   `json:"nanos"`
	Millis        float64 `json:"millis"`
	Seconds       float64 `json:"seconds"`
	TotalSearched int     `json:"totalSearched"`
	ResultsFound  int     `json:"resultsFound"`
	Throughput    float64 `json:"throughput"`
	Summary       string  `json:"summary"`
}

// tracker captures a monotonic start timestamp at operation start.
type tracker struct {
	start time.Time
}

func startTracker() *tracker {
	return &tracker{start: time.Now()}
}

// done computes the elapsed-time report. Throughput is records searched per
// second of wall-clock time.
func (t *tracker) done(totalSearched, resultsFound int) Performance {
	elapsed := time.Since(t.start)
	seconds := elapsed.Seconds()
	throughput := 0.0
	if seconds > 0 {
		throughput = float64(totalSearched) / seconds
	}
	return Performance{
		Nanos:         elapsed.Nanoseconds(),
		Millis:        float64(elapsed.Nanoseconds()) / 1e6,
		Seconds:       seconds,
		TotalSearched: totalSearched,
		ResultsFound:  resultsFound,
		Throughput:    throughput,
		Summary: fmt.Sprintf("searched %d records in %.3fms, found %d results (%.0f records/sec)",
			totalSearched, float64(elapsed.Nanoseconds())/1e6, resultsFound, throughput),
	}
}
