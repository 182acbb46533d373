// Package search runs catalog search and AI recommendations side by side for
// one query at a time and derives the results page from their combined state.
package search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"discover/metrics"
	"discover/models"
	"discover/services"
)

// User-facing failure messages shown in each section's banner
const (
	CatalogFailedMessage   = "Failed to fetch search results"
	RecommendFailedMessage = "Failed to fetch AI recommendations"
	shutdownMessage        = "Search is unavailable while the server shuts down"
)

// CatalogSearcher is the catalog side of a search
type CatalogSearcher interface {
	SearchCatalog(ctx context.Context, query string) ([]models.MediaItem, error)
}

// Recommender is the AI side of a search
type Recommender interface {
	Recommend(ctx context.Context, query string) ([]models.MediaItem, error)
}

// TaskRunner launches tracked goroutines
type TaskRunner interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context)) bool
}

// EventRecorder receives session lifecycle events. It may be nil.
type EventRecorder interface {
	Create(sessionID, query string, eventType models.SearchEventType, message string, details interface{}) error
}

type source string

const (
	sourceCatalog         source = "catalog"
	sourceRecommendations source = "recommendations"
)

// Session is the combined state for one query. It is replaced, never merged,
// when a new query is submitted.
type Session struct {
	Query                string             `json:"query"`
	Generation           uint64             `json:"generation"`
	CatalogResults       []models.MediaItem `json:"catalog_results"`
	Recommendations      []models.MediaItem `json:"recommendations"`
	CatalogStatus        models.Status      `json:"catalog_status"`
	RecommendationStatus models.Status      `json:"recommendation_status"`
}

func newSession(query string, generation uint64) Session {
	return Session{
		Query:                query,
		Generation:           generation,
		CatalogResults:       []models.MediaItem{},
		Recommendations:      []models.MediaItem{},
		CatalogStatus:        models.StatusLoading,
		RecommendationStatus: models.StatusLoading,
	}
}

// Aggregator owns the current Session and its two in-flight fetches. Every
// Submit starts a new generation; completions carrying an older generation are
// discarded.
type Aggregator struct {
	id          string
	catalog     CatalogSearcher
	recommender Recommender
	tasks       TaskRunner
	events      EventRecorder

	mu      sync.Mutex
	session Session
	pending int
	cancel  context.CancelFunc
	closed  bool
}

// NewAggregator creates an idle aggregator identified by id in logs and events
func NewAggregator(id string, catalog CatalogSearcher, recommender Recommender, tasks TaskRunner, events EventRecorder) *Aggregator {
	return &Aggregator{
		id:          id,
		catalog:     catalog,
		recommender: recommender,
		tasks:       tasks,
		events:      events,
		session: Session{
			CatalogResults:       []models.MediaItem{},
			Recommendations:      []models.MediaItem{},
			CatalogStatus:        models.StatusIdle,
			RecommendationStatus: models.StatusIdle,
		},
	}
}

// ID returns the aggregator's identifier
func (a *Aggregator) ID() string {
	return a.id
}

// Submit replaces the session with a fresh one for query and starts both
// fetches. A blank query is a no-op and returns services.ErrEmptyInput.
func (a *Aggregator) Submit(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return services.ErrEmptyInput
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	if a.cancel != nil {
		// The old requests may still complete; the generation check drops them.
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	generation := a.session.Generation + 1
	a.session = newSession(query, generation)
	a.pending = 2
	a.cancel = cancel
	a.mu.Unlock()

	a.record(query, models.EventSearchStarted, "Search started", map[string]interface{}{
		"generation": generation,
	})

	a.start(ctx, generation, query, sourceCatalog)
	a.start(ctx, generation, query, sourceRecommendations)
	return nil
}

// Retry submits the current query again
func (a *Aggregator) Retry() error {
	return a.Submit(a.Session().Query)
}

// Session returns a snapshot of the current session
func (a *Aggregator) Session() Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := a.session
	snapshot.CatalogResults = append([]models.MediaItem(nil), a.session.CatalogResults...)
	snapshot.Recommendations = append([]models.MediaItem(nil), a.session.Recommendations...)
	return snapshot
}

// Close abandons the session. In-flight fetches are canceled and their
// results dropped.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.session.Generation++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Aggregator) start(ctx context.Context, generation uint64, query string, src source) {
	name := string(src) + " search for " + a.id
	started := a.tasks.Go(ctx, name, func(ctx context.Context) {
		begin := time.Now()
		var (
			items []models.MediaItem
			err   error
		)
		switch src {
		case sourceCatalog:
			items, err = a.catalog.SearchCatalog(ctx, query)
		case sourceRecommendations:
			items, err = a.recommender.Recommend(ctx, query)
		}
		a.complete(generation, query, src, items, err, time.Since(begin))
	})
	if !started {
		a.fail(generation, src, shutdownMessage)
	}
}

func (a *Aggregator) complete(generation uint64, query string, src source, items []models.MediaItem, err error, elapsed time.Duration) {
	a.mu.Lock()
	if generation != a.session.Generation {
		a.mu.Unlock()
		metrics.RecordStaleResponse(string(src))
		a.record(query, models.EventResponseDiscarded, "Discarded stale "+string(src)+" response", map[string]interface{}{
			"generation": generation,
			"source":     src,
		})
		return
	}

	if items == nil {
		items = []models.MediaItem{}
	}
	var eventType models.SearchEventType
	switch src {
	case sourceCatalog:
		if err != nil {
			a.session.CatalogStatus = models.StatusFailed(CatalogFailedMessage)
			a.session.CatalogResults = []models.MediaItem{}
			eventType = models.EventCatalogFailed
		} else {
			a.session.CatalogStatus = models.StatusSuccess
			a.session.CatalogResults = items
			eventType = models.EventCatalogCompleted
		}
	case sourceRecommendations:
		if err != nil {
			a.session.RecommendationStatus = models.StatusFailed(RecommendFailedMessage)
			a.session.Recommendations = []models.MediaItem{}
			eventType = models.EventRecommendationsFailed
		} else {
			a.session.RecommendationStatus = models.StatusSuccess
			a.session.Recommendations = items
			eventType = models.EventRecommendationsCompleted
		}
	}
	a.finishLocked()
	a.mu.Unlock()

	details := map[string]interface{}{
		"generation":  generation,
		"count":       len(items),
		"duration_ms": elapsed.Milliseconds(),
	}
	message := "Received " + string(src) + " results"
	if err != nil {
		log.Printf("[search %s] %s fetch for %q failed: %v", a.id, src, query, err)
		details["error"] = err.Error()
		details["count"] = 0
		message = err.Error()
	}
	a.record(query, eventType, message, details)
}

func (a *Aggregator) fail(generation uint64, src source, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if generation != a.session.Generation {
		return
	}
	switch src {
	case sourceCatalog:
		a.session.CatalogStatus = models.StatusFailed(message)
	case sourceRecommendations:
		a.session.RecommendationStatus = models.StatusFailed(message)
	}
	a.finishLocked()
}

// finishLocked releases the generation's context once both fetches resolved.
func (a *Aggregator) finishLocked() {
	a.pending--
	if a.pending <= 0 && a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Aggregator) record(query string, eventType models.SearchEventType, message string, details interface{}) {
	if a.events == nil {
		return
	}
	if err := a.events.Create(a.id, query, eventType, message, details); err != nil {
		log.Printf("[search %s] Failed to record %s event: %v", a.id, eventType, err)
	}
}
