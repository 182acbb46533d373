package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"discover/models"
	"discover/pages"
	"discover/search"
	"discover/views"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

type homeResponse struct {
	ID string `json:"id"`
	pages.HomeState
}

type searchResponse struct {
	ID string `json:"id"`
	pages.SearchPage
}

type overlayResponse struct {
	ID string `json:"id"`
	views.OverlayState
}

type searchEventsResponse struct {
	Events []models.SearchEvent `json:"events"`
	Stats  *models.SearchStats  `json:"stats"`
}

// scrollRequest carries one of: a direction, a fresh offset, or new dimensions
type scrollRequest struct {
	Direction   string   `json:"direction,omitempty"`
	Offset      *float64 `json:"offset,omitempty"`
	ClientWidth *float64 `json:"client_width,omitempty"`
	ScrollWidth *float64 `json:"scroll_width,omitempty"`
}

type overlayRequest struct {
	Item models.MediaItem `json:"item"`
}

type voteRequest struct {
	Vote models.VoteState `json:"vote"`
}

type healthResponse struct {
	Status                string `json:"status"`
	RecommendationBreaker string `json:"recommendation_breaker"`
	EventLog              bool   `json:"event_log"`
}

func (app *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:                "ok",
		RecommendationBreaker: app.recommender.BreakerState(),
		EventLog:              app.eventRepo != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Home feed

func (app *App) createHomeHandler(w http.ResponseWriter, r *http.Request) {
	id, home := app.homes.Add(func(string) *pages.Home {
		return pages.NewHome(app.catalog)
	})
	// A failed load still yields a session with an empty feed.
	if err := home.Load(r.Context()); err != nil {
		log.Printf("Home feed %s loaded empty: %v", id, err)
	}
	writeJSON(w, http.StatusCreated, homeResponse{ID: id, HomeState: home.State()})
}

func (app *App) lookupHome(w http.ResponseWriter, r *http.Request) (string, *pages.Home, bool) {
	id := mux.Vars(r)["id"]
	home, ok := app.homes.Get(id)
	if !ok {
		http.Error(w, "Home session not found", http.StatusNotFound)
		return "", nil, false
	}
	return id, home, true
}

func (app *App) getHomeHandler(w http.ResponseWriter, r *http.Request) {
	id, home, ok := app.lookupHome(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, homeResponse{ID: id, HomeState: home.State()})
}

func (app *App) heroNextHandler(w http.ResponseWriter, r *http.Request) {
	id, home, ok := app.lookupHome(w, r)
	if !ok {
		return
	}
	home.NextHero()
	writeJSON(w, http.StatusOK, homeResponse{ID: id, HomeState: home.State()})
}

func (app *App) heroPreviousHandler(w http.ResponseWriter, r *http.Request) {
	id, home, ok := app.lookupHome(w, r)
	if !ok {
		return
	}
	home.PreviousHero()
	writeJSON(w, http.StatusOK, homeResponse{ID: id, HomeState: home.State()})
}

func (app *App) heroJumpHandler(w http.ResponseWriter, r *http.Request) {
	id, home, ok := app.lookupHome(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "Invalid hero index", http.StatusBadRequest)
		return
	}
	home.JumpHero(index)
	writeJSON(w, http.StatusOK, homeResponse{ID: id, HomeState: home.State()})
}

func (app *App) rowScrollHandler(w http.ResponseWriter, r *http.Request) {
	id, home, ok := app.lookupHome(w, r)
	if !ok {
		return
	}

	var req scrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var apply func(row *views.Row)
	switch {
	case req.Direction == "left":
		apply = func(row *views.Row) { row.ScrollLeft() }
	case req.Direction == "right":
		apply = func(row *views.Row) { row.ScrollRight() }
	case req.Direction != "":
		http.Error(w, "Direction must be left or right", http.StatusBadRequest)
		return
	case req.ClientWidth != nil && req.ScrollWidth != nil:
		apply = func(row *views.Row) { row.Resize(*req.ClientWidth, *req.ScrollWidth) }
	case req.Offset != nil:
		apply = func(row *views.Row) { row.OnScroll(*req.Offset) }
	default:
		http.Error(w, "Expected direction, offset or dimensions", http.StatusBadRequest)
		return
	}

	category := models.Category(mux.Vars(r)["row"])
	if err := home.WithRow(category, apply); err != nil {
		if errors.Is(err, pages.ErrUnknownRow) {
			http.Error(w, "Row not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, homeResponse{ID: id, HomeState: home.State()})
}

func (app *App) deleteHomeHandler(w http.ResponseWriter, r *http.Request) {
	if !app.homes.Remove(mux.Vars(r)["id"]) {
		http.Error(w, "Home session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search

func (app *App) createSearchHandler(w http.ResponseWriter, r *http.Request) {
	id, page := app.searches.Add(func(id string) *pages.Search {
		return pages.NewSearch(search.NewAggregator(id, app.catalog, app.recommender, app.jobManager, app.events()))
	})
	if err := page.Open(r.URL.Query().Get("q")); err != nil {
		log.Printf("Search %s did not start: %v", id, err)
	}
	writeJSON(w, http.StatusCreated, searchResponse{ID: id, SearchPage: page.Page(models.SortDefault)})
}

func (app *App) lookupSearch(w http.ResponseWriter, r *http.Request) (string, *pages.Search, bool) {
	id := mux.Vars(r)["id"]
	page, ok := app.searches.Get(id)
	if !ok {
		http.Error(w, "Search session not found", http.StatusNotFound)
		return "", nil, false
	}
	return id, page, true
}

func (app *App) getSearchHandler(w http.ResponseWriter, r *http.Request) {
	id, page, ok := app.lookupSearch(w, r)
	if !ok {
		return
	}
	mode := models.ParseSortMode(r.URL.Query().Get("sort"))
	writeJSON(w, http.StatusOK, searchResponse{ID: id, SearchPage: page.Page(mode)})
}

func (app *App) updateSearchHandler(w http.ResponseWriter, r *http.Request) {
	id, page, ok := app.lookupSearch(w, r)
	if !ok {
		return
	}
	if err := page.Open(r.URL.Query().Get("q")); err != nil {
		log.Printf("Search %s did not start: %v", id, err)
	}
	mode := models.ParseSortMode(r.URL.Query().Get("sort"))
	writeJSON(w, http.StatusOK, searchResponse{ID: id, SearchPage: page.Page(mode)})
}

func (app *App) retrySearchHandler(w http.ResponseWriter, r *http.Request) {
	id, page, ok := app.lookupSearch(w, r)
	if !ok {
		return
	}
	if err := page.Retry(); err != nil {
		log.Printf("Search %s retry did not start: %v", id, err)
	}
	mode := models.ParseSortMode(r.URL.Query().Get("sort"))
	writeJSON(w, http.StatusOK, searchResponse{ID: id, SearchPage: page.Page(mode)})
}

func (app *App) searchEventsHandler(w http.ResponseWriter, r *http.Request) {
	if app.eventRepo == nil {
		http.Error(w, "Search event log is disabled", http.StatusNotFound)
		return
	}
	id := mux.Vars(r)["id"]

	events, err := app.eventRepo.GetBySessionID(id)
	if err != nil {
		log.Printf("Error getting search events: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	stats, err := app.eventRepo.GetStatistics(id)
	if err != nil {
		log.Printf("Error getting search statistics: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, searchEventsResponse{Events: events, Stats: stats})
}

func (app *App) deleteSearchHandler(w http.ResponseWriter, r *http.Request) {
	if !app.searches.Remove(mux.Vars(r)["id"]) {
		http.Error(w, "Search session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Detail overlays

func (app *App) createOverlayHandler(w http.ResponseWriter, r *http.Request) {
	var req overlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Item.ID <= 0 {
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}

	id, overlay := app.overlays.Add(func(string) *views.Overlay {
		return views.NewOverlay(req.Item, app.catalog, app.jobManager)
	})
	writeJSON(w, http.StatusCreated, overlayResponse{ID: id, OverlayState: overlay.State()})
}

func (app *App) lookupOverlay(w http.ResponseWriter, r *http.Request) (string, *views.Overlay, bool) {
	id := mux.Vars(r)["id"]
	overlay, ok := app.overlays.Get(id)
	if !ok {
		http.Error(w, "Overlay not found", http.StatusNotFound)
		return "", nil, false
	}
	return id, overlay, true
}

func (app *App) getOverlayHandler(w http.ResponseWriter, r *http.Request) {
	id, overlay, ok := app.lookupOverlay(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, overlayResponse{ID: id, OverlayState: overlay.State()})
}

func (app *App) voteHandler(w http.ResponseWriter, r *http.Request) {
	id, overlay, ok := app.lookupOverlay(w, r)
	if !ok {
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Vote != models.VoteUp && req.Vote != models.VoteDown {
		http.Error(w, "Vote must be up or down", http.StatusBadRequest)
		return
	}

	overlay.Vote(req.Vote)
	writeJSON(w, http.StatusOK, overlayResponse{ID: id, OverlayState: overlay.State()})
}

func (app *App) watchlistHandler(w http.ResponseWriter, r *http.Request) {
	id, overlay, ok := app.lookupOverlay(w, r)
	if !ok {
		return
	}
	overlay.ToggleWatchlist()
	writeJSON(w, http.StatusOK, overlayResponse{ID: id, OverlayState: overlay.State()})
}

func (app *App) playTrailerHandler(w http.ResponseWriter, r *http.Request) {
	id, overlay, ok := app.lookupOverlay(w, r)
	if !ok {
		return
	}
	overlay.PlayTrailer()
	writeJSON(w, http.StatusAccepted, overlayResponse{ID: id, OverlayState: overlay.State()})
}

func (app *App) closeTrailerHandler(w http.ResponseWriter, r *http.Request) {
	id, overlay, ok := app.lookupOverlay(w, r)
	if !ok {
		return
	}
	overlay.CloseTrailer()
	writeJSON(w, http.StatusOK, overlayResponse{ID: id, OverlayState: overlay.State()})
}

func (app *App) deleteOverlayHandler(w http.ResponseWriter, r *http.Request) {
	if !app.overlays.Remove(mux.Vars(r)["id"]) {
		http.Error(w, "Overlay not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
