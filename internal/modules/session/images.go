// README: Image cache keyed by (day, version, time of day) plus the displayed projection.
package session

import (
	"fmt"

	"wanderplan/internal/itinerary"
)

func imageKey(day, version int, t itinerary.TimeOfDay) string {
	return fmt.Sprintf("%d:%d:%s", day, version, t)
}

func currentKey(day int, t itinerary.TimeOfDay) string {
	return fmt.Sprintf("%d:%s", day, t)
}

// CachedImage looks up the versioned cache slot.
func (s *State) CachedImage(day, version int, t itinerary.TimeOfDay) (string, bool) {
	url, ok := s.Images[imageKey(day, version, t)]
	return url, ok && url != ""
}

// StoreImage fills the versioned slot and, when that version is still displayed, the current
// projection. It reports whether the projection changed.
func (s *State) StoreImage(day, version int, t itinerary.TimeOfDay, url string) bool {
	if url == "" {
		return false
	}
	s.ensureMaps()
	s.Images[imageKey(day, version, t)] = url
	if _, shown, err := s.Displayed(day); err != nil || shown != version {
		return false
	}
	s.Current[currentKey(day, t)] = url
	return true
}

// CurrentImage returns the image shown for a segment of the displayed variant.
func (s *State) CurrentImage(day int, t itinerary.TimeOfDay) (string, bool) {
	url, ok := s.Current[currentKey(day, t)]
	return url, ok
}

// RefreshProjection rebuilds the current projection of a day from the cache for the displayed
// variant. It returns the segments that still need an image.
func (s *State) RefreshProjection(day int) ([]itinerary.TimeOfDay, error) {
	_, version, err := s.Displayed(day)
	if err != nil {
		return nil, err
	}
	s.ensureMaps()
	var missing []itinerary.TimeOfDay
	for _, t := range itinerary.TimesOfDay {
		delete(s.Current, currentKey(day, t))
		if url, ok := s.CachedImage(day, version, t); ok {
			s.Current[currentKey(day, t)] = url
			continue
		}
		missing = append(missing, t)
	}
	return missing, nil
}
