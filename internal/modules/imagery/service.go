// README: Image resolver; maps primary entities to photo URLs, cache first, bounded fan-out.
package imagery

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"

	"wanderplan/internal/itinerary"
	"wanderplan/internal/logger"
)

const (
	// PhotoMaxWidth is the width requested from the photo proxy.
	PhotoMaxWidth = 600
	// maxConcurrentLookups bounds simultaneous place searches per call.
	maxConcurrentLookups = 4
)

// PlaceFinder turns an entity name into a photo reference.
type PlaceFinder interface {
	PhotoReference(ctx context.Context, name string) (string, error)
}

// Cache is the per-session image cache the resolver reads and fills.
type Cache interface {
	CachedImage(day, version int, t itinerary.TimeOfDay) (string, bool)
	StoreImage(day, version int, t itinerary.TimeOfDay, url string) bool
}

// Request asks for an image for one segment of one day variant.
type Request struct {
	Day     int
	Version int
	Segment itinerary.TimeOfDay
	Entity  string
}

// Resolver resolves images for segments.
type Resolver struct {
	finder PlaceFinder
	log    *logger.Logger
}

func NewResolver(finder PlaceFinder, log *logger.Logger) *Resolver {
	return &Resolver{finder: finder, log: log}
}

// PhotoURL builds the proxied photo URL for a photo reference.
func PhotoURL(reference string) string {
	return fmt.Sprintf("/api/photo?maxwidth=%d&photoreference=%s", PhotoMaxWidth, url.QueryEscape(reference))
}

type resolved struct {
	req Request
	url string
}

// Resolve fills cache for every request. Cached slots are reused without a lookup; misses are
// looked up concurrently. A failed lookup is logged and leaves its slot empty.
// Writes to cache happen on the calling goroutine. It returns the number of images stored.
func (r *Resolver) Resolve(ctx context.Context, cache Cache, reqs []Request) int {
	stored := 0
	var misses []Request
	for _, req := range reqs {
		if cached, ok := cache.CachedImage(req.Day, req.Version, req.Segment); ok {
			cache.StoreImage(req.Day, req.Version, req.Segment, cached)
			stored++
			continue
		}
		if req.Entity == "" {
			continue
		}
		misses = append(misses, req)
	}
	if len(misses) == 0 || r.finder == nil {
		return stored
	}

	var (
		mu      sync.Mutex
		results []resolved
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for _, req := range misses {
		g.Go(func() error {
			ref, err := r.finder.PhotoReference(gctx, req.Entity)
			if err != nil {
				r.log.Warn("image lookup failed",
					"entity", req.Entity, "day", req.Day, "version", req.Version, "segment", req.Segment, "error", err)
				return nil
			}
			mu.Lock()
			results = append(results, resolved{req: req, url: PhotoURL(ref)})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		cache.StoreImage(res.req.Day, res.req.Version, res.req.Segment, res.url)
		stored++
	}
	return stored
}

// RequestsForDay builds one request per segment of a day variant. mentions may be nil, in
// which case entities are read from the segment markup.
func RequestsForDay(day itinerary.Day, version int, mentions itinerary.SegmentMentions, segments []itinerary.TimeOfDay) []Request {
	reqs := make([]Request, 0, len(segments))
	for _, t := range segments {
		text := day.Segment(t)
		var entity string
		if found, ok := mentions[t]; ok {
			entity = itinerary.PrimaryEntity(found, itinerary.PlainText(text))
		} else {
			entity = itinerary.PrimaryEntityOf(text)
		}
		reqs = append(reqs, Request{Day: day.Day, Version: version, Segment: t, Entity: entity})
	}
	return reqs
}
