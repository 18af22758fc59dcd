package session

import (
	"errors"
	"time"

	"wanderplan/internal/itinerary"
)

var (
	// ErrNotFound is returned when a session id is unknown or expired.
	ErrNotFound = errors.New("session not found")
	// ErrNoPlan is returned for day operations before a full plan exists.
	ErrNoPlan = errors.New("no itinerary generated yet")
	// ErrUnknownDay is returned when the baseline plan has no day with the requested index.
	ErrUnknownDay = errors.New("unknown itinerary day")
)

// Form mirrors the trip form fields the browser keeps between reloads.
type Form struct {
	Language           string `json:"language,omitempty"`
	Destination        string `json:"destination,omitempty"`
	HomeLocation       string `json:"homeLocation,omitempty"`
	NumDays            int    `json:"numDays,omitempty"`
	TimeToVisit        string `json:"timeToVisit,omitempty"`
	TransportationMode string `json:"transportationMode,omitempty"`
	AccommodationType  string `json:"accommodationType,omitempty"`
	IsRoundTrip        bool   `json:"isRoundTrip"`
	Travelers          string `json:"travelers,omitempty"`
	GroupSize          int    `json:"groupSize,omitempty"`
	Budget             string `json:"budget,omitempty"`
}

// State is everything one planning session owns. It is not safe for concurrent use;
// callers serialise access per session.
type State struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Form Form `json:"form"`

	// Params are the inputs of the last full-plan generation.
	Params    *itinerary.TripParameters `json:"params,omitempty"`
	Plan      *itinerary.Itinerary      `json:"plan,omitempty"`
	PlanError string                    `json:"plan_error,omitempty"`

	// History holds per-day variants; index 0 is the baseline day.
	History map[int][]itinerary.Day `json:"history,omitempty"`
	// Pages holds the 1-based displayed variant per day.
	Pages map[int]int `json:"pages,omitempty"`

	// Images is keyed by imageKey(day, version, timeOfDay).
	Images map[string]string `json:"images,omitempty"`
	// Current is keyed by currentKey(day, timeOfDay) and shows what the displayed variant uses.
	Current map[string]string `json:"current,omitempty"`
}

// New returns an empty session.
func New(id string, now time.Time) *State {
	return &State{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		History:   map[int][]itinerary.Day{},
		Pages:     map[int]int{},
		Images:    map[string]string{},
		Current:   map[string]string{},
	}
}

// ensureMaps restores nil maps after decoding a stored state.
func (s *State) ensureMaps() {
	if s.History == nil {
		s.History = map[int][]itinerary.Day{}
	}
	if s.Pages == nil {
		s.Pages = map[int]int{}
	}
	if s.Images == nil {
		s.Images = map[string]string{}
	}
	if s.Current == nil {
		s.Current = map[string]string{}
	}
}

// DayView is the displayed state of one day.
type DayView struct {
	Day           itinerary.Day                 `json:"day"`
	Page          int                           `json:"page"`
	HistoryLength int                           `json:"history_length"`
	Images        map[itinerary.TimeOfDay]string `json:"images"`
}

// View is the externally visible session snapshot.
type View struct {
	ID            string                   `json:"session_id"`
	Summary       *itinerary.Summary       `json:"summary,omitempty"`
	EstimatedCost *itinerary.EstimatedCost `json:"estimatedCost,omitempty"`
	Days          []DayView                `json:"days"`
	Error         *PlanError               `json:"error,omitempty"`
}

// PlanError replaces the plan when the last full-plan generation failed.
type PlanError struct {
	Message string `json:"message"`
}
