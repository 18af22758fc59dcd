// README: LLM passthrough handler (quota-guarded when a session id is sent).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/modules/planner"
)

// SessionHeader carries the session id of browser-built prompts.
const SessionHeader = "X-Session-ID"

// llmTimeout bounds one model call.
const llmTimeout = 90 * time.Second

type LLMHandler struct {
	planner *planner.Service
}

func NewLLMHandler(plannerSvc *planner.Service) *LLMHandler {
	return &LLMHandler{planner: plannerSvc}
}

type llmReq struct {
	Prompt string `json:"prompt"`
}

// Complete handles POST /api/llm.
func (h *LLMHandler) Complete(c *gin.Context) {
	var req llmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(c, http.StatusBadRequest, "missing prompt")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), llmTimeout)
	defer cancel()

	content, err := h.planner.Complete(ctx, strings.TrimSpace(c.GetHeader(SessionHeader)), req.Prompt)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"content": content})
}
