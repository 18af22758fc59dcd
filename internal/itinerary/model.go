// README: Trip parameters, itinerary shapes, generation modes and package errors.
package itinerary

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParseFailure is returned when model output cannot be read as the expected schema.
	ErrParseFailure = errors.New("failed to generate a valid itinerary")
	// ErrInvalidParams is returned by Validate for unusable trip parameters.
	ErrInvalidParams = errors.New("invalid trip parameters")
)

// ParseFailureMessage is the user-facing text shown when a generation cannot be parsed.
const ParseFailureMessage = "Failed to generate a valid itinerary. Please try again."

// Flexible is the shared "no preference" value for season, accommodation and transportation.
const Flexible = "flexible"

type Travelers string

const (
	TravelersSolo   Travelers = "Solo"
	TravelersCouple Travelers = "Couple"
	TravelersFamily Travelers = "Family"
	TravelersGroup  Travelers = "Group"
)

// NeedsGroupSize reports whether a group size is required for this traveler category.
func (t Travelers) NeedsGroupSize() bool {
	return t == TravelersFamily || t == TravelersGroup
}

type Budget string

const (
	BudgetLow    Budget = "Budget"
	BudgetMid    Budget = "Mid-range"
	BudgetLuxury Budget = "Luxury"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

var (
	seasons         = []string{Flexible, "spring", "summer", "autumn", "winter"}
	accommodations  = []string{Flexible, "hotel", "hostel", "apartment", "resort", "bed and breakfast", "camping"}
	transportations = []string{Flexible, "public transport", "car rental", "taxi", "walking", "bicycle", "train", "flight"}
)

// TripParameters is the immutable input of one generation call.
// JSON names match the persisted form-field keys.
type TripParameters struct {
	Destination         string    `json:"destination"`
	Origin              string    `json:"homeLocation"`
	Days                int       `json:"numDays"`
	RoundTrip           bool      `json:"isRoundTrip"`
	Travelers           Travelers `json:"travelers"`
	GroupSize           int       `json:"groupSize,omitempty"`
	Budget              Budget    `json:"budget"`
	TimeToVisit         string    `json:"timeToVisit"`
	Accommodation       string    `json:"accommodationType"`
	Transportation      string    `json:"transportationMode"`
	SpecialRequirements string    `json:"specialRequirements,omitempty"`
	Language            Language  `json:"language"`
}

// Normalize fills empty preference fields with Flexible and trims free text.
func (p TripParameters) Normalize() TripParameters {
	p.Destination = strings.TrimSpace(p.Destination)
	p.Origin = strings.TrimSpace(p.Origin)
	p.SpecialRequirements = strings.TrimSpace(p.SpecialRequirements)
	p.TimeToVisit = orFlexible(p.TimeToVisit)
	p.Accommodation = orFlexible(p.Accommodation)
	p.Transportation = orFlexible(p.Transportation)
	if p.Language == "" {
		p.Language = LanguageEnglish
	}
	if !p.Travelers.NeedsGroupSize() {
		p.GroupSize = 0
	}
	return p
}

func orFlexible(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return Flexible
	}
	return v
}

// Validate checks a normalized parameter set.
func (p TripParameters) Validate() error {
	switch {
	case p.Destination == "":
		return fmt.Errorf("%w: destination is required", ErrInvalidParams)
	case p.Origin == "":
		return fmt.Errorf("%w: origin is required", ErrInvalidParams)
	case p.Days < 1:
		return fmt.Errorf("%w: day count must be positive", ErrInvalidParams)
	}
	switch p.Travelers {
	case TravelersSolo, TravelersCouple, TravelersFamily, TravelersGroup:
	default:
		return fmt.Errorf("%w: unknown traveler category %q", ErrInvalidParams, p.Travelers)
	}
	if p.Travelers.NeedsGroupSize() && p.GroupSize < 1 {
		return fmt.Errorf("%w: group size is required for %s", ErrInvalidParams, p.Travelers)
	}
	switch p.Budget {
	case BudgetLow, BudgetMid, BudgetLuxury:
	default:
		return fmt.Errorf("%w: unknown budget %q", ErrInvalidParams, p.Budget)
	}
	switch p.Language {
	case LanguageEnglish, LanguageChinese:
	default:
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidParams, p.Language)
	}
	if !contains(seasons, p.TimeToVisit) {
		return fmt.Errorf("%w: unknown time to visit %q", ErrInvalidParams, p.TimeToVisit)
	}
	if !contains(accommodations, p.Accommodation) {
		return fmt.Errorf("%w: unknown accommodation %q", ErrInvalidParams, p.Accommodation)
	}
	if !contains(transportations, p.Transportation) {
		return fmt.Errorf("%w: unknown transportation %q", ErrInvalidParams, p.Transportation)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// TimeOfDay names one of the three daily segments.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// TimesOfDay lists the segments in display order.
var TimesOfDay = []TimeOfDay{Morning, Afternoon, Evening}

// ParseTimeOfDay accepts a segment name in any case.
func ParseTimeOfDay(v string) (TimeOfDay, bool) {
	t := TimeOfDay(strings.ToLower(strings.TrimSpace(v)))
	switch t {
	case Morning, Afternoon, Evening:
		return t, true
	}
	return "", false
}

// Day is one itinerary day. Segment text carries hyperlink markup for entity mentions.
type Day struct {
	Day       int    `json:"day"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Segment returns the text of one time-of-day segment.
func (d Day) Segment(t TimeOfDay) string {
	switch t {
	case Morning:
		return d.Morning
	case Afternoon:
		return d.Afternoon
	case Evening:
		return d.Evening
	}
	return ""
}

// WithSegment returns a copy of d with one segment replaced.
func (d Day) WithSegment(t TimeOfDay, text string) Day {
	switch t {
	case Morning:
		d.Morning = text
	case Afternoon:
		d.Afternoon = text
	case Evening:
		d.Evening = text
	}
	return d
}

type Summary struct {
	Introduction    string `json:"introduction,omitempty"`
	BestTimeToVisit string `json:"bestTimeToVisit,omitempty"`
	HowToGetThere   string `json:"howToGetThere,omitempty"`
}

type CostBreakdown struct {
	Accommodation  string `json:"accommodation"`
	Transportation string `json:"transportation"`
	Food           string `json:"food"`
	Activities     string `json:"activities"`
	Other          string `json:"other"`
}

type EstimatedCost struct {
	Total     string        `json:"total"`
	Breakdown CostBreakdown `json:"breakdown"`
}

// Itinerary is a full plan. A new full-plan generation replaces it wholesale.
type Itinerary struct {
	Summary       *Summary      `json:"summary,omitempty"`
	Days          []Day         `json:"itinerary"`
	EstimatedCost EstimatedCost `json:"estimatedCost"`
}

// DayByIndex finds the day whose day field equals index.
func (it *Itinerary) DayByIndex(index int) (Day, bool) {
	if it == nil {
		return Day{}, false
	}
	for _, d := range it.Days {
		if d.Day == index {
			return d, true
		}
	}
	return Day{}, false
}

// Category tags an entity mention.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryLandmark   Category = "landmark"
	CategoryMuseum     Category = "museum"
	CategoryPark       Category = "park"
	CategoryActivity   Category = "activity"
	CategoryOther      Category = "other"
	CategoryUnknown    Category = "unknown"
)

// Categories is the fixed vocabulary the model is asked to use.
var Categories = []Category{CategoryRestaurant, CategoryLandmark, CategoryMuseum, CategoryPark, CategoryActivity, CategoryOther}

// EntityMention is a tagged attraction name found in segment text.
type EntityMention struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// ModeKind selects what a generation call produces.
type ModeKind int

const (
	ModeFullPlan ModeKind = iota
	ModeRegenerateDay
	ModeRegenerateSegment
)

// Mode is a generation mode plus its target. Existing holds the days currently shown,
// which regeneration prompts list so the model can avoid repeating them.
type Mode struct {
	Kind     ModeKind
	Day      int
	Segment  TimeOfDay
	Existing []Day
}

func FullPlan() Mode { return Mode{Kind: ModeFullPlan} }

func RegenerateDay(day int) Mode { return Mode{Kind: ModeRegenerateDay, Day: day} }

func RegenerateSegment(day int, t TimeOfDay) Mode {
	return Mode{Kind: ModeRegenerateSegment, Day: day, Segment: t}
}

// WithExisting returns m with the currently shown days attached.
func (m Mode) WithExisting(days []Day) Mode {
	m.Existing = days
	return m
}

// Targets lists the segment keys a mode produces.
func (m Mode) Targets() []TimeOfDay {
	if m.Kind == ModeRegenerateSegment {
		return []TimeOfDay{m.Segment}
	}
	return TimesOfDay
}
