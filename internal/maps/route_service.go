package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// TravelEstimate is the driving time and distance between two places.
type TravelEstimate struct {
	Duration time.Duration
	Distance string
}

// GetTravelEstimate returns the driving duration and distance from origin to destination.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination, language string) (*TravelEstimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    language,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		if isZeroResults(err) {
			return nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, origin, destination)
		}
		return nil, upstreamError("directions", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, origin, destination)
	}

	leg := routes[0].Legs[0]
	return &TravelEstimate{Duration: leg.Duration, Distance: leg.Distance.HumanReadable}, nil
}
