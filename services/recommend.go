package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"discover/models"

	gobreaker "github.com/sony/gobreaker/v2"
)

const recommendSource = "recommendations"

// BreakerConfig controls when the recommendation breaker opens
type BreakerConfig struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// DefaultBreakerConfig trips after 5 consecutive failures and probes again after 30s
var DefaultBreakerConfig = BreakerConfig{
	FailureThreshold: 5,
	OpenTimeout:      30 * time.Second,
}

// RecommendationService handles interactions with the AI recommendation API
type RecommendationService struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]models.MediaItem]
}

type recommendResponse struct {
	Recommendations []models.MediaItem `json:"recommendations"`
}

// NewRecommendationService creates a recommendation client rooted at baseURL.
// A nil client gets one with DefaultTimeout.
func NewRecommendationService(baseURL string, httpc *http.Client, cfg BreakerConfig) *RecommendationService {
	settings := gobreaker.Settings{
		Name:        recommendSource,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A superseded query cancels its own request; that says nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[%s] Circuit breaker %s -> %s", name, from, to)
		},
	}

	return &RecommendationService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(httpc),
		breaker: gobreaker.NewCircuitBreaker[[]models.MediaItem](settings),
	}
}

// Recommend asks the AI backend for items related to query
func (r *RecommendationService) Recommend(ctx context.Context, query string) ([]models.MediaItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyInput
	}

	op := "recommend"
	items, err := r.breaker.Execute(func() ([]models.MediaItem, error) {
		endpoint, err := url.JoinPath(r.baseURL, "recommend")
		if err != nil {
			return nil, NewNetworkError(op, err)
		}
		endpoint += "?query=" + url.QueryEscape(query)

		var payload recommendResponse
		if err := getJSON(ctx, r.client, recommendSource, op, endpoint, &payload); err != nil {
			return nil, err
		}
		return keyedItems(recommendSource, payload.Recommendations), nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, NewNetworkError(op, err)
	}
	return items, err
}

// BreakerState reports the breaker state for health output
func (r *RecommendationService) BreakerState() string {
	return r.breaker.State().String()
}
