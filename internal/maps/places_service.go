// README: Google Places client for attraction photos and destination autocomplete.
package maps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"googlemaps.github.io/maps"
)

var (
	// ErrNoCandidates is returned when a place search finds nothing.
	ErrNoCandidates = errors.New("no place candidates")
	// ErrNoPhoto is returned when the best candidate has no photo.
	ErrNoPhoto = errors.New("place has no photo")
	// ErrNoRoute is returned when directions find no route.
	ErrNoRoute = errors.New("no route found")
	// ErrUpstream wraps transport and API failures of the Google Maps services.
	ErrUpstream = errors.New("maps upstream error")
)

// upstreamError marks err as a Google Maps failure of op.
func upstreamError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}

// isZeroResults reports whether the API answered with an empty result status.
func isZeroResults(err error) bool {
	return strings.Contains(err.Error(), "ZERO_RESULTS")
}

// maxPhotoBytes bounds a proxied photo download.
const maxPhotoBytes = 10 << 20

// PlacePhoto is one photo reference of a candidate.
type PlacePhoto struct {
	Reference string `json:"photo_reference"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// Candidate is a place search result reduced to what the planner needs.
type Candidate struct {
	Name   string       `json:"name"`
	Photos []PlacePhoto `json:"photos"`
}

// Prediction is one autocomplete suggestion.
type Prediction struct {
	Description string `json:"description"`
}

// Photo is downloaded image content.
type Photo struct {
	ContentType string
	Data        []byte
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// FindPlace searches a place by free text, asking only for names and photos.
func (s *PlacesService) FindPlace(ctx context.Context, input string) ([]Candidate, error) {
	resp, err := s.client.FindPlaceFromText(ctx, &maps.FindPlaceFromTextRequest{
		Input:     input,
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Fields:    []maps.PlaceSearchFieldMask{maps.PlaceSearchFieldMaskName, maps.PlaceSearchFieldMaskPhotos},
	})
	if err != nil {
		if isZeroResults(err) {
			return []Candidate{}, nil
		}
		return nil, upstreamError("find place", err)
	}

	candidates := make([]Candidate, 0, len(resp.Candidates))
	for _, r := range resp.Candidates {
		c := Candidate{Name: r.Name, Photos: make([]PlacePhoto, 0, len(r.Photos))}
		for _, p := range r.Photos {
			c.Photos = append(c.Photos, PlacePhoto{Reference: p.PhotoReference, Width: p.Width, Height: p.Height})
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// PhotoReference returns the first photo reference of the first candidate for name.
func (s *PlacesService) PhotoReference(ctx context.Context, name string) (string, error) {
	candidates, err := s.FindPlace(ctx, name)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoCandidates, name)
	}
	if len(candidates[0].Photos) == 0 || candidates[0].Photos[0].Reference == "" {
		return "", fmt.Errorf("%w: %q", ErrNoPhoto, name)
	}
	return candidates[0].Photos[0].Reference, nil
}

// Photo downloads the image for a photo reference.
func (s *PlacesService) Photo(ctx context.Context, reference string, maxWidth uint) (*Photo, error) {
	resp, err := s.client.PlacePhoto(ctx, &maps.PlacePhotoRequest{
		PhotoReference: reference,
		MaxWidth:       maxWidth,
	})
	if err != nil {
		return nil, upstreamError("place photo", err)
	}
	defer resp.Data.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Data, maxPhotoBytes))
	if err != nil {
		return nil, upstreamError("read place photo", err)
	}
	return &Photo{ContentType: resp.ContentType, Data: data}, nil
}

// Autocomplete suggests city names for a partial destination.
func (s *PlacesService) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	resp, err := s.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input: input,
		Types: maps.AutocompletePlaceTypeCities,
	})
	if err != nil {
		if isZeroResults(err) {
			return []Prediction{}, nil
		}
		return nil, upstreamError("place autocomplete", err)
	}
	out := make([]Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, Prediction{Description: p.Description})
	}
	return out, nil
}
