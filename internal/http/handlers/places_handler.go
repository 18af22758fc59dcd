// README: Google Places proxy handlers (place search, photo, autocomplete, travel estimate).
package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/maps"
)

const defaultPhotoWidth = 400

// PlaceSearcher is the subset of maps.PlacesService the handlers use.
type PlaceSearcher interface {
	FindPlace(ctx context.Context, input string) ([]maps.Candidate, error)
	Photo(ctx context.Context, reference string, maxWidth uint) (*maps.Photo, error)
	Autocomplete(ctx context.Context, input string) ([]maps.Prediction, error)
}

// TravelEstimator is the subset of maps.RouteService the handlers use.
type TravelEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination, language string) (*maps.TravelEstimate, error)
}

type PlacesHandler struct {
	places PlaceSearcher
	routes TravelEstimator
}

func NewPlacesHandler(places PlaceSearcher, routes TravelEstimator) *PlacesHandler {
	return &PlacesHandler{places: places, routes: routes}
}

// Find handles GET /api/places?input=.
func (h *PlacesHandler) Find(c *gin.Context) {
	input := strings.TrimSpace(c.Query("input"))
	if input == "" {
		writeError(c, http.StatusBadRequest, "missing input")
		return
	}
	candidates, err := h.places.FindPlace(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"candidates": candidates})
}

// Photo handles GET /api/photo?maxwidth=&photoreference= and streams the image bytes.
func (h *PlacesHandler) Photo(c *gin.Context) {
	ref := strings.TrimSpace(c.Query("photoreference"))
	if ref == "" {
		writeError(c, http.StatusBadRequest, "missing photoreference")
		return
	}
	width := uint(defaultPhotoWidth)
	if v := c.Query("maxwidth"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			writeError(c, http.StatusBadRequest, "invalid maxwidth")
			return
		}
		width = uint(n)
	}

	photo, err := h.places.Photo(c.Request.Context(), ref, width)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	contentType := photo.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, photo.Data)
}

// Autocomplete handles GET /api/autocomplete?input=.
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	input := strings.TrimSpace(c.Query("input"))
	if input == "" {
		writeJSON(c, http.StatusOK, gin.H{"predictions": []maps.Prediction{}})
		return
	}
	predictions, err := h.places.Autocomplete(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if predictions == nil {
		predictions = []maps.Prediction{}
	}
	writeJSON(c, http.StatusOK, gin.H{"predictions": predictions})
}

// TravelEstimate handles GET /api/travel-estimate?origin=&destination=.
func (h *PlacesHandler) TravelEstimate(c *gin.Context) {
	origin := strings.TrimSpace(c.Query("origin"))
	destination := strings.TrimSpace(c.Query("destination"))
	if origin == "" || destination == "" {
		writeError(c, http.StatusBadRequest, "missing origin or destination")
		return
	}
	est, err := h.routes.GetTravelEstimate(c.Request.Context(), origin, destination, c.Query("language"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"duration_minutes": int(math.Round(est.Duration.Minutes())),
		"distance":         est.Distance,
	})
}
