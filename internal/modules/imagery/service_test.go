// README: Image resolver tests (cache reuse, failures leave slots empty, URL shape).
package imagery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"wanderplan/internal/itinerary"
	"wanderplan/internal/logger"
)

type stubFinder struct {
	refs  map[string]string
	calls atomic.Int32
}

func (s *stubFinder) PhotoReference(_ context.Context, name string) (string, error) {
	s.calls.Add(1)
	if ref, ok := s.refs[name]; ok {
		return ref, nil
	}
	return "", errors.New("no candidates")
}

type mapCache struct {
	mu    sync.Mutex
	slots map[string]string
	shown int
}

func key(day, version int, t itinerary.TimeOfDay) string {
	return fmt.Sprintf("%d:%d:%s", day, version, t)
}

func (c *mapCache) CachedImage(day, version int, t itinerary.TimeOfDay) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.slots[key(day, version, t)]
	return u, ok
}

func (c *mapCache) StoreImage(day, version int, t itinerary.TimeOfDay, u string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[key(day, version, t)] = u
	c.shown++
	return true
}

func TestResolveLooksUpMisses(t *testing.T) {
	finder := &stubFinder{refs: map[string]string{"Eiffel Tower": "ref/1", "Louvre Museum": "ref2"}}
	cache := &mapCache{slots: map[string]string{}}
	r := NewResolver(finder, logger.Nop())

	stored := r.Resolve(context.Background(), cache, []Request{
		{Day: 1, Version: 1, Segment: itinerary.Morning, Entity: "Eiffel Tower"},
		{Day: 1, Version: 1, Segment: itinerary.Afternoon, Entity: "Louvre Museum"},
		{Day: 1, Version: 1, Segment: itinerary.Evening, Entity: "Nowhere Special"},
	})
	if stored != 2 {
		t.Fatalf("stored = %d", stored)
	}
	if got := cache.slots[key(1, 1, itinerary.Morning)]; got != "/api/photo?maxwidth=600&photoreference=ref%2F1" {
		t.Fatalf("morning url = %q", got)
	}
	if _, ok := cache.slots[key(1, 1, itinerary.Evening)]; ok {
		t.Fatalf("failed lookup filled a slot")
	}
}

func TestResolveReusesCachedSlot(t *testing.T) {
	finder := &stubFinder{refs: map[string]string{"Eiffel Tower": "fresh"}}
	cache := &mapCache{slots: map[string]string{key(2, 3, itinerary.Morning): "/cached.jpg"}}
	r := NewResolver(finder, logger.Nop())

	stored := r.Resolve(context.Background(), cache, []Request{
		{Day: 2, Version: 3, Segment: itinerary.Morning, Entity: "Eiffel Tower"},
	})
	if stored != 1 || finder.calls.Load() != 0 {
		t.Fatalf("stored %d with %d lookups", stored, finder.calls.Load())
	}
	if cache.slots[key(2, 3, itinerary.Morning)] != "/cached.jpg" || cache.shown != 1 {
		t.Fatalf("cached image not projected")
	}
}

func TestResolveSkipsEmptyEntity(t *testing.T) {
	finder := &stubFinder{}
	r := NewResolver(finder, logger.Nop())
	if n := r.Resolve(context.Background(), &mapCache{slots: map[string]string{}}, []Request{{Day: 1, Version: 1, Segment: itinerary.Morning}}); n != 0 {
		t.Fatalf("stored = %d", n)
	}
	if finder.calls.Load() != 0 {
		t.Fatalf("looked up an empty entity")
	}
}

func TestPhotoURLEscapesReference(t *testing.T) {
	u, err := url.Parse(PhotoURL("a b&c"))
	if err != nil {
		t.Fatal(err)
	}
	if u.Path != "/api/photo" || u.Query().Get("photoreference") != "a b&c" || u.Query().Get("maxwidth") != "600" {
		t.Fatalf("unexpected url %s", u)
	}
}

func TestRequestsForDay(t *testing.T) {
	day := itinerary.Day{Day: 3}
	morning, morningMentions := itinerary.Linkify("Eat at [Cafe A](restaurant) near [Big Ben](landmark).", itinerary.DefaultSearchURL)
	afternoon, _ := itinerary.Linkify("Visit [Tate Modern](museum).", itinerary.DefaultSearchURL)
	day = day.WithSegment(itinerary.Morning, morning).
		WithSegment(itinerary.Afternoon, afternoon).
		WithSegment(itinerary.Evening, "Relax at the hotel. Sleep early.")

	mentions := itinerary.SegmentMentions{itinerary.Morning: morningMentions}
	reqs := RequestsForDay(day, 2, mentions, itinerary.TimesOfDay)

	want := []string{"Big Ben", "Tate Modern", "Relax at the hotel"}
	if len(reqs) != len(want) {
		t.Fatalf("got %d requests", len(reqs))
	}
	for i, w := range want {
		if reqs[i].Entity != w || reqs[i].Day != 3 || reqs[i].Version != 2 {
			t.Errorf("request %d = %+v, want entity %q", i, reqs[i], w)
		}
	}
}
