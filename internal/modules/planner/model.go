package planner

import (
	"errors"

	"wanderplan/internal/itinerary"
)

// ErrGeneration wraps failures of the language-model call itself.
var ErrGeneration = errors.New("itinerary generation failed")

// RegenerateRequest targets a whole day, or one segment of it when Segment is set.
// SpecialRequirements, when non-nil, replaces the text used for the last full plan.
type RegenerateRequest struct {
	Day                 int
	Segment             itinerary.TimeOfDay
	SpecialRequirements *string
}

func (r RegenerateRequest) mode() itinerary.Mode {
	if r.Segment != "" {
		return itinerary.RegenerateSegment(r.Day, r.Segment)
	}
	return itinerary.RegenerateDay(r.Day)
}
