// Package repository persists the search event log.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"discover/database"
	"discover/models"

	"github.com/goccy/go-json"
)

const timestampLayout = "2006-01-02 15:04:05"

// SearchEventRepository handles search event data operations
type SearchEventRepository struct {
	db *database.DB
}

// NewSearchEventRepository creates a new search event repository
func NewSearchEventRepository(db *database.DB) *SearchEventRepository {
	return &SearchEventRepository{db: db}
}

// Create appends an event to a session's log. details is stored as JSON.
func (r *SearchEventRepository) Create(sessionID, query string, eventType models.SearchEventType, message string, details interface{}) error {
	var detailsJSON sql.NullString
	if details != nil {
		detailsBytes, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to marshal event details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(detailsBytes), Valid: true}
	}

	stmt := `INSERT INTO search_events (session_id, query, type, message, details) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.Exec(stmt, sessionID, query, string(eventType), message, detailsJSON); err != nil {
		return fmt.Errorf("failed to create search event: %w", err)
	}
	return nil
}

// GetBySessionID returns a session's events, newest first
func (r *SearchEventRepository) GetBySessionID(sessionID string) ([]models.SearchEvent, error) {
	stmt := `SELECT id, session_id, query, type, message, details, created_at
			  FROM search_events
			  WHERE session_id = ?
			  ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(stmt, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query search events: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Printf("Failed to close rows: %v", cerr)
		}
	}()

	events := []models.SearchEvent{}
	for rows.Next() {
		var event models.SearchEvent
		var details sql.NullString
		var createdAt string

		if err := rows.Scan(&event.ID, &event.SessionID, &event.Query, &event.Type, &event.Message, &details, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan search event: %w", err)
		}
		if details.Valid {
			event.Details = details.String
		}
		event.CreatedAt = parseTimestamp(createdAt)

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search events: %w", err)
	}
	return events, nil
}

// GetStatistics summarizes a session's log
func (r *SearchEventRepository) GetStatistics(sessionID string) (*models.SearchStats, error) {
	stats := &models.SearchStats{}

	counts := []struct {
		eventType models.SearchEventType
		dest      *int
	}{
		{models.EventSearchStarted, &stats.TotalSearches},
		{models.EventCatalogFailed, &stats.CatalogFailures},
		{models.EventRecommendationsFailed, &stats.RecommendFailures},
		{models.EventResponseDiscarded, &stats.DiscardedResponses},
	}
	for _, c := range counts {
		err := r.db.QueryRow(`SELECT COUNT(*) FROM search_events WHERE session_id = ? AND type = ?`,
			sessionID, c.eventType).Scan(c.dest)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s events: %w", c.eventType, err)
		}
	}

	var lastSearchTime sql.NullString
	err := r.db.QueryRow(`SELECT created_at FROM search_events WHERE session_id = ? AND type = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		sessionID, models.EventSearchStarted).Scan(&lastSearchTime)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get last search time: %w", err)
	}
	if lastSearchTime.Valid {
		stats.LastSearchTime = lastSearchTime.String
	}

	return stats, nil
}

// DeleteOldEvents removes events older than the specified duration and
// returns how many were removed
func (r *SearchEventRepository) DeleteOldEvents(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := r.db.Exec(`DELETE FROM search_events WHERE created_at < ?`, cutoff.Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old events: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted events: %w", err)
	}
	return removed, nil
}

// go-sqlite3 may hand DATETIME columns back as RFC 3339 or as the
// CURRENT_TIMESTAMP layout.
func parseTimestamp(value string) time.Time {
	for _, layout := range []string{timestampLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
