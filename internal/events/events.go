// Package events defines the query analytics events published to Kafka
// and the batch collector that ships them.
package events

import "time"

// Operation labels for QueryEvent.
const (
	OpSuggest   = "suggest"
	OpSearch    = "search"
	OpExplore   = "explore"
	OpInstitute = "institute"
)

// QueryEvent records one catalog query for downstream analytics.
type QueryEvent struct {
	Operation string            `json:"operation"`
	Query     string            `json:"query,omitempty"`
	Filters   map[string]string `json:"filters,omitempty"`
	Results   int               `json:"results"`
	LatencyMs int64             `json:"latencyMs"`
	CacheHit  bool              `json:"cacheHit"`
	RequestID string            `json:"requestId,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
