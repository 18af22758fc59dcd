// README: Session handlers (create/view, saved form, quota, plan generation, regeneration, paging).
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/itinerary"
	"wanderplan/internal/modules/planner"
	"wanderplan/internal/modules/session"
)

type SessionHandler struct {
	sessions *session.Service
	planner  *planner.Service
}

func NewSessionHandler(sessions *session.Service, plannerSvc *planner.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions, planner: plannerSvc}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	st, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"session_id": st.ID})
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	view, err := h.planner.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

// GetForm handles GET /api/sessions/:id/form.
func (h *SessionHandler) GetForm(c *gin.Context) {
	form, err := h.sessions.Form(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, form)
}

// SaveForm handles PUT /api/sessions/:id/form.
func (h *SessionHandler) SaveForm(c *gin.Context) {
	var form session.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	saved, err := h.sessions.SaveForm(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, saved)
}

// ResetForm handles DELETE /api/sessions/:id/form. It also clears the quota record.
func (h *SessionHandler) ResetForm(c *gin.Context) {
	if err := h.planner.Reset(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, session.Form{})
}

// Quota handles GET /api/sessions/:id/quota.
func (h *SessionHandler) Quota(c *gin.Context) {
	status, err := h.planner.QuotaStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, status)
}

// Plan handles POST /api/sessions/:id/plan.
func (h *SessionHandler) Plan(c *gin.Context) {
	var params itinerary.TripParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), llmTimeout)
	defer cancel()

	view, err := h.planner.GeneratePlan(ctx, c.Param("id"), params)
	if err != nil {
		if errors.Is(err, itinerary.ErrParseFailure) && view.ID != "" {
			writeJSON(c, http.StatusUnprocessableEntity, view)
			return
		}
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

type regenerateReq struct {
	Segment             string  `json:"segment"`
	SpecialRequirements *string `json:"special_requirements"`
}

// Regenerate handles POST /api/sessions/:id/days/:day/regenerate.
// An empty segment regenerates the whole day.
func (h *SessionHandler) Regenerate(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req regenerateReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	in := planner.RegenerateRequest{Day: day, SpecialRequirements: req.SpecialRequirements}
	if seg := strings.TrimSpace(req.Segment); seg != "" {
		t, ok := itinerary.ParseTimeOfDay(seg)
		if !ok {
			writeError(c, http.StatusBadRequest, "segment must be morning, afternoon or evening")
			return
		}
		in.Segment = t
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), llmTimeout)
	defer cancel()

	view, err := h.planner.Regenerate(ctx, c.Param("id"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

type pageReq struct {
	Page int `json:"page"`
}

// SetPage handles PUT /api/sessions/:id/days/:day/page.
func (h *SessionHandler) SetPage(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req pageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	view, err := h.planner.SetPage(ctx, c.Param("id"), day, req.Page)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}
