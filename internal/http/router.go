// README: HTTP router registration (gin) for sessions, planning, places, feedback and the LLM passthrough.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"wanderplan/internal/http/handlers"
	"wanderplan/internal/http/middleware"
	"wanderplan/internal/logger"
	"wanderplan/internal/modules/feedback"
	"wanderplan/internal/modules/planner"
	"wanderplan/internal/modules/session"
)

// RouterDeps are the services the HTTP surface delegates to. Feedback may be nil when
// no database is configured.
type RouterDeps struct {
	Sessions    *session.Service
	Planner     *planner.Service
	Feedback    *feedback.Service
	Places      handlers.PlaceSearcher
	Routes      handlers.TravelEstimator
	CORSOrigins []string
	ServiceName string
	Log         *logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	serviceName := deps.ServiceName
	if serviceName == "" {
		serviceName = "wanderplan-api"
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		otelgin.Middleware(serviceName),
		middleware.Logging(deps.Log),
		middleware.Recovery(deps.Log),
		middleware.CORS(deps.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	llmHandler := handlers.NewLLMHandler(deps.Planner)
	api.POST("/llm", llmHandler.Complete)

	placesHandler := handlers.NewPlacesHandler(deps.Places, deps.Routes)
	api.GET("/places", placesHandler.Find)
	api.GET("/photo", placesHandler.Photo)
	api.GET("/autocomplete", placesHandler.Autocomplete)
	api.GET("/travel-estimate", placesHandler.TravelEstimate)

	feedbackHandler := handlers.NewFeedbackHandler(deps.Feedback)
	api.POST("/feedback", feedbackHandler.Submit)
	api.GET("/all-feedback", feedbackHandler.List)

	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Planner)
	api.POST("/sessions", sessionHandler.Create)
	sessions := api.Group("/sessions/:id")
	{
		sessions.GET("", sessionHandler.Get)
		sessions.GET("/form", sessionHandler.GetForm)
		sessions.PUT("/form", sessionHandler.SaveForm)
		sessions.DELETE("/form", sessionHandler.ResetForm)
		sessions.GET("/quota", sessionHandler.Quota)
		sessions.POST("/plan", sessionHandler.Plan)
		sessions.POST("/days/:day/regenerate", sessionHandler.Regenerate)
		sessions.PUT("/days/:day/page", sessionHandler.SetPage)
	}

	return r
}
