package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"discover/models"
)

const catalogSource = "catalog"

// CatalogService handles interactions with the movie catalog API
type CatalogService struct {
	baseURL string
	client  *http.Client
}

// catalogListResponse is the body of category and search endpoints
type catalogListResponse struct {
	Results []models.MediaItem `json:"results"`
}

// trailerResponse is the body of the trailer lookup endpoint
type trailerResponse struct {
	Key *string `json:"key"`
}

// NewCatalogService creates a catalog client rooted at baseURL.
// A nil client gets one with DefaultTimeout.
func NewCatalogService(baseURL string, httpc *http.Client) *CatalogService {
	return &CatalogService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(httpc),
	}
}

// FetchCategory lists the items of a curated category
func (c *CatalogService) FetchCategory(ctx context.Context, category models.Category) ([]models.MediaItem, error) {
	op := fmt.Sprintf("fetch category %s", category)
	endpoint, err := url.JoinPath(c.baseURL, "catalog", string(category))
	if err != nil {
		return nil, NewNetworkError(op, err)
	}

	var payload catalogListResponse
	if err := getJSON(ctx, c.client, catalogSource, op, endpoint, &payload); err != nil {
		return nil, err
	}
	return keyedItems(catalogSource, payload.Results), nil
}

// SearchCatalog runs a text search against the catalog
func (c *CatalogService) SearchCatalog(ctx context.Context, query string) ([]models.MediaItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyInput
	}

	op := "search catalog"
	endpoint, err := url.JoinPath(c.baseURL, "catalog", "search")
	if err != nil {
		return nil, NewNetworkError(op, err)
	}
	endpoint += "?query=" + url.QueryEscape(query)

	var payload catalogListResponse
	if err := getJSON(ctx, c.client, catalogSource, op, endpoint, &payload); err != nil {
		return nil, err
	}
	return keyedItems(catalogSource, payload.Results), nil
}

// FetchTrailerKey looks up the trailer video key for an item.
// An empty key with a nil error means the item has no trailer.
func (c *CatalogService) FetchTrailerKey(ctx context.Context, itemID int64) (string, error) {
	op := fmt.Sprintf("fetch trailer %d", itemID)
	endpoint, err := url.JoinPath(c.baseURL, "catalog", "trailer", strconv.FormatInt(itemID, 10))
	if err != nil {
		return "", NewNetworkError(op, err)
	}

	var payload trailerResponse
	if err := getJSON(ctx, c.client, catalogSource, op, endpoint, &payload); err != nil {
		return "", err
	}
	if payload.Key == nil {
		return "", nil
	}
	return strings.TrimSpace(*payload.Key), nil
}
