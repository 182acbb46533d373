package models

// StatusPhase is the lifecycle phase of one asynchronous fetch
type StatusPhase string

// Fetch phases
const (
	PhaseIdle    StatusPhase = "idle"
	PhaseLoading StatusPhase = "loading"
	PhaseSuccess StatusPhase = "success"
	PhaseFailed  StatusPhase = "failed"
)

// Status is one of idle, loading, success or failed(message)
type Status struct {
	Phase   StatusPhase `json:"phase"`
	Message string      `json:"message,omitempty"`
}

// Status constructors
var (
	StatusIdle    = Status{Phase: PhaseIdle}
	StatusLoading = Status{Phase: PhaseLoading}
	StatusSuccess = Status{Phase: PhaseSuccess}
)

// StatusFailed builds a failed status carrying a user-facing message
func StatusFailed(message string) Status {
	return Status{Phase: PhaseFailed, Message: message}
}

// Loading reports whether the fetch is in flight
func (s Status) Loading() bool { return s.Phase == PhaseLoading }

// Failed reports whether the fetch ended in an error
func (s Status) Failed() bool { return s.Phase == PhaseFailed }

// SortMode orders presented search results
type SortMode string

// Sort modes offered by the results page
const (
	SortDefault SortMode = "default"
	SortRating  SortMode = "rating"
	SortYear    SortMode = "year"
)

// ParseSortMode maps a query value to a SortMode, falling back to default
func ParseSortMode(value string) SortMode {
	switch SortMode(value) {
	case SortRating:
		return SortRating
	case SortYear:
		return SortYear
	default:
		return SortDefault
	}
}

// VoteState is the exclusive like/skip choice on an overlay
type VoteState string

// Vote states
const (
	VoteNone VoteState = "none"
	VoteUp   VoteState = "up"
	VoteDown VoteState = "down"
)

// TrailerPhase is the state of the trailer popup
type TrailerPhase string

// Trailer phases
const (
	TrailerClosed      TrailerPhase = "closed"
	TrailerOpening     TrailerPhase = "opening"
	TrailerReady       TrailerPhase = "ready"
	TrailerUnavailable TrailerPhase = "unavailable"
)

// TrailerState is closed, opening, ready(key) or unavailable
type TrailerState struct {
	Phase TrailerPhase `json:"phase"`
	Key   string       `json:"key,omitempty"`
}
