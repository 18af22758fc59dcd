package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/modules/feedback"
)

type FeedbackHandler struct {
	feedback *feedback.Service
}

func NewFeedbackHandler(svc *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{feedback: svc}
}

type feedbackReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Submit handles POST /api/feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	if h.feedback == nil {
		writeError(c, http.StatusServiceUnavailable, "feedback storage not configured")
		return
	}
	var req feedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if _, err := h.feedback.Submit(c.Request.Context(), req.Rating, req.Comment); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"status": "ok"})
}

// List handles GET /api/all-feedback.
func (h *FeedbackHandler) List(c *gin.Context) {
	if h.feedback == nil {
		writeError(c, http.StatusServiceUnavailable, "feedback storage not configured")
		return
	}
	items, err := h.feedback.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if items == nil {
		items = []feedback.Feedback{}
	}
	writeJSON(c, http.StatusOK, items)
}
