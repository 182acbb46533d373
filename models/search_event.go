package models

import "time"

// SearchEventType represents the type of search lifecycle event
type SearchEventType string

const (
	EventSearchStarted            SearchEventType = "search_started"
	EventCatalogCompleted         SearchEventType = "catalog_completed"
	EventCatalogFailed            SearchEventType = "catalog_failed"
	EventRecommendationsCompleted SearchEventType = "recommendations_completed"
	EventRecommendationsFailed    SearchEventType = "recommendations_failed"
	EventResponseDiscarded        SearchEventType = "response_discarded"
)

// SearchEvent represents one step in a search session's lifecycle
type SearchEvent struct {
	ID        int             `json:"id"`
	SessionID string          `json:"session_id"`
	Query     string          `json:"query"`
	Type      SearchEventType `json:"type"`
	Message   string          `json:"message"`
	Details   string          `json:"details,omitempty"` // JSON string for additional data
	CreatedAt time.Time       `json:"created_at"`
}

// SearchStats summarizes the events recorded for a session
type SearchStats struct {
	TotalSearches      int    `json:"total_searches"`
	CatalogFailures    int    `json:"catalog_failures"`
	RecommendFailures  int    `json:"recommendation_failures"`
	DiscardedResponses int    `json:"discarded_responses"`
	LastSearchTime     string `json:"last_search_time,omitempty"`
}
