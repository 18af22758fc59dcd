// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/itinerary"
	"wanderplan/internal/maps"
	"wanderplan/internal/modules/feedback"
	"wanderplan/internal/modules/planner"
	"wanderplan/internal/modules/quota"
	"wanderplan/internal/modules/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module errors to status codes. Upstream and internal failures are
// attached to the gin context so the access log records their cause.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, itinerary.ErrParseFailure):
		writeError(c, http.StatusUnprocessableEntity, itinerary.ParseFailureMessage)
	case errors.Is(err, quota.ErrQuotaExceeded):
		writeError(c, http.StatusTooManyRequests, quota.LimitReachedMessage)
	case errors.Is(err, itinerary.ErrInvalidParams), errors.Is(err, feedback.ErrInvalidRating):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrUnknownDay):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, maps.ErrNoCandidates), errors.Is(err, maps.ErrNoPhoto), errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrNoPlan):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, planner.ErrGeneration):
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, "failed to get response from the language model")
	case errors.Is(err, maps.ErrUpstream):
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, "maps service unavailable")
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// dayParam reads the 1-based day index from the path.
func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		writeError(c, http.StatusBadRequest, "invalid day")
		return 0, false
	}
	return day, true
}
