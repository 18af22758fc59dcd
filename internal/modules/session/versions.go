// README: Per-day version history and pagination over the baseline plan.
package session

import (
	"fmt"
	"sort"

	"wanderplan/internal/itinerary"
)

// RecordFullPlan installs a new baseline and drops all history, pages and images.
func (s *State) RecordFullPlan(params itinerary.TripParameters, plan itinerary.Itinerary) {
	s.Params = &params
	s.Plan = &plan
	s.PlanError = ""
	s.resetDerived()
}

// RecordPlanFailure replaces the plan with an error placeholder.
func (s *State) RecordPlanFailure(params itinerary.TripParameters, message string) {
	s.Params = &params
	s.Plan = nil
	s.PlanError = message
	s.resetDerived()
}

func (s *State) resetDerived() {
	s.History = map[int][]itinerary.Day{}
	s.Pages = map[int]int{}
	s.Images = map[string]string{}
	s.Current = map[string]string{}
}

// BaselineDay returns the day from the last full plan.
func (s *State) BaselineDay(day int) (itinerary.Day, error) {
	if s.Plan == nil {
		return itinerary.Day{}, ErrNoPlan
	}
	d, ok := s.Plan.DayByIndex(day)
	if !ok {
		return itinerary.Day{}, fmt.Errorf("%w: %d", ErrUnknownDay, day)
	}
	return d, nil
}

// RecordRegeneration appends a variant built from the latest one with segments overwritten,
// and displays it. It returns the new 1-based version.
func (s *State) RecordRegeneration(day int, segments map[itinerary.TimeOfDay]string) (int, error) {
	base, err := s.BaselineDay(day)
	if err != nil {
		return 0, err
	}
	s.ensureMaps()
	history := s.History[day]
	if len(history) == 0 {
		history = []itinerary.Day{base}
	}
	next := history[len(history)-1]
	for _, t := range itinerary.TimesOfDay {
		if text, ok := segments[t]; ok {
			next = next.WithSegment(t, text)
		}
	}
	history = append(history, next)
	s.History[day] = history
	s.Pages[day] = len(history)
	return len(history), nil
}

// HistoryLength counts the variants of a day; an untouched day has the baseline only.
func (s *State) HistoryLength(day int) int {
	if n := len(s.History[day]); n > 0 {
		return n
	}
	return 1
}

// Page returns the displayed 1-based version of a day.
func (s *State) Page(day int) int {
	if p, ok := s.Pages[day]; ok && p >= 1 && p <= s.HistoryLength(day) {
		return p
	}
	return s.HistoryLength(day)
}

// SetPage displays a variant, clamping page to [1, HistoryLength(day)]. It returns the page shown.
func (s *State) SetPage(day, page int) (int, error) {
	if _, err := s.BaselineDay(day); err != nil {
		return 0, err
	}
	s.ensureMaps()
	n := s.HistoryLength(day)
	if page < 1 {
		page = 1
	}
	if page > n {
		page = n
	}
	s.Pages[day] = page
	return page, nil
}

// Displayed returns the variant currently shown for a day and its version.
func (s *State) Displayed(day int) (itinerary.Day, int, error) {
	base, err := s.BaselineDay(day)
	if err != nil {
		return itinerary.Day{}, 0, err
	}
	history := s.History[day]
	if len(history) == 0 {
		return base, 1, nil
	}
	page := s.Page(day)
	return history[page-1], page, nil
}

// DisplayedPlan returns the displayed variant of every day, in day order.
func (s *State) DisplayedPlan() []itinerary.Day {
	indexes := s.DayIndexes()
	days := make([]itinerary.Day, 0, len(indexes))
	for _, day := range indexes {
		if d, _, err := s.Displayed(day); err == nil {
			days = append(days, d)
		}
	}
	return days
}

// DayView renders one day for the API.
func (s *State) DayView(day int) (DayView, error) {
	d, page, err := s.Displayed(day)
	if err != nil {
		return DayView{}, err
	}
	images := make(map[itinerary.TimeOfDay]string, len(itinerary.TimesOfDay))
	for _, t := range itinerary.TimesOfDay {
		if url, ok := s.Current[currentKey(day, t)]; ok {
			images[t] = url
		}
	}
	return DayView{Day: d, Page: page, HistoryLength: s.HistoryLength(day), Images: images}, nil
}

// View renders the whole session for the API.
func (s *State) View() View {
	v := View{ID: s.ID, Days: []DayView{}}
	if s.Plan == nil {
		if s.PlanError != "" {
			v.Error = &PlanError{Message: s.PlanError}
		}
		return v
	}
	v.Summary = s.Plan.Summary
	cost := s.Plan.EstimatedCost
	v.EstimatedCost = &cost
	for _, day := range s.DayIndexes() {
		dv, err := s.DayView(day)
		if err != nil {
			continue
		}
		v.Days = append(v.Days, dv)
	}
	return v
}

// DayIndexes lists the day indexes of the baseline plan in ascending order.
func (s *State) DayIndexes() []int {
	if s.Plan == nil {
		return nil
	}
	seen := make(map[int]bool, len(s.Plan.Days))
	out := make([]int, 0, len(s.Plan.Days))
	for _, d := range s.Plan.Days {
		if !seen[d.Day] {
			seen[d.Day] = true
			out = append(out, d.Day)
		}
	}
	sort.Ints(out)
	return out
}
