// Package services provides the clients for the catalog and recommendation APIs.
package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"discover/metrics"
	"discover/models"

	"github.com/goccy/go-json"
)

// DefaultTimeout bounds every upstream request unless the caller supplies its own client
const DefaultTimeout = 15 * time.Second

func newHTTPClient(httpc *http.Client) *http.Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: DefaultTimeout}
	}
	return httpc
}

// getJSON performs a GET against endpoint and decodes the body into v.
// Transport failures and non-2xx statuses become NetworkError, bad bodies DecodeError.
func getJSON(ctx context.Context, httpc *http.Client, source, op, endpoint string, v any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NewNetworkError(op, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(source, metrics.OutcomeNetworkError, time.Since(start))
		return NewNetworkError(op, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[%s] Failed to close response body: %v", source, err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordUpstreamRequest(source, metrics.OutcomeNetworkError, time.Since(start))
		return NewNetworkError(op, fmt.Errorf("%s API returned status %d", source, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		metrics.RecordUpstreamRequest(source, metrics.OutcomeDecodeError, time.Since(start))
		return NewDecodeError(op, err)
	}

	metrics.RecordUpstreamRequest(source, metrics.OutcomeSuccess, time.Since(start))
	return nil
}

// keyedItems drops items without a usable id; list rendering keys on it.
func keyedItems(source string, items []models.MediaItem) []models.MediaItem {
	kept := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		if item.ID <= 0 {
			continue
		}
		kept = append(kept, item)
	}
	if dropped := len(items) - len(kept); dropped > 0 {
		log.Printf("[%s] Dropped %d item(s) without an id", source, dropped)
	}
	return kept
}
