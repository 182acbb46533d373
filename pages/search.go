package pages

import (
	"strings"
	"sync"

	"discover/models"
	"discover/search"
)

// Prompt texts shown before a query is entered
const (
	PromptTitle   = "Search for Movies & TV Shows"
	PromptMessage = "Enter a movie or TV show name to get started"
)

// Prompt is the empty search page
type Prompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Search is the search page shell around an Aggregator
type Search struct {
	aggregator *search.Aggregator

	mu    sync.Mutex
	query string
}

// NewSearch wraps aggregator in a page shell
func NewSearch(aggregator *search.Aggregator) *Search {
	return &Search{aggregator: aggregator}
}

// Aggregator returns the underlying aggregator
func (s *Search) Aggregator() *search.Aggregator {
	return s.aggregator
}

// Open shows the page for q. A blank q shows the prompt without starting a
// search; anything else supersedes whatever search is running.
func (s *Search) Open(q string) error {
	q = strings.TrimSpace(q)

	s.mu.Lock()
	s.query = q
	s.mu.Unlock()

	if q == "" {
		return nil
	}
	return s.aggregator.Submit(q)
}

// Retry runs the current query again. It does nothing while the prompt shows.
func (s *Search) Retry() error {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()

	if q == "" {
		return nil
	}
	return s.aggregator.Submit(q)
}

// Close abandons any running search
func (s *Search) Close() {
	s.aggregator.Close()
}

// SearchPage is the rendered search page: either the prompt or the results
type SearchPage struct {
	Query   string              `json:"query"`
	Prompt  *Prompt             `json:"prompt,omitempty"`
	Results *search.ResultsView `json:"results,omitempty"`
}

// Page renders the search page with results sorted by mode
func (s *Search) Page(mode models.SortMode) SearchPage {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()

	if q == "" {
		return SearchPage{Prompt: &Prompt{Title: PromptTitle, Message: PromptMessage}}
	}
	view := s.aggregator.View(mode)
	return SearchPage{Query: q, Results: &view}
}
