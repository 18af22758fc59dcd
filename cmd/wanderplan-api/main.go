// README: Entry point; loads config, wires stores and services, serves the HTTP API until interrupted.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"wanderplan/internal/ai"
	"wanderplan/internal/config"
	httptransport "wanderplan/internal/http"
	"wanderplan/internal/infra"
	"wanderplan/internal/logger"
	"wanderplan/internal/maps"
	"wanderplan/internal/modules/feedback"
	"wanderplan/internal/modules/imagery"
	"wanderplan/internal/modules/planner"
	"wanderplan/internal/modules/quota"
	"wanderplan/internal/modules/session"
	"wanderplan/internal/observability"
)

const serviceName = "wanderplan-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	appLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOtel := observability.InitOTel(ctx, appLog, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		Endpoint:    cfg.Otel.Endpoint,
		ServiceName: serviceName,
		Environment: cfg.Env,
	})

	// Production needs Postgres for the quota; development runs without it if unreachable.
	var dbPool *pgxpool.Pool
	if pool, err := infra.NewDB(ctx, cfg.DB.DSN); err != nil {
		if cfg.Production() {
			appLog.Fatal("postgres unavailable", "error", err)
		}
		appLog.Warn("postgres unavailable; feedback disabled", "error", err)
	} else {
		dbPool = pool
		defer dbPool.Close()
		if err := infra.Migrate(ctx, dbPool); err != nil {
			appLog.Fatal("apply migrations", "error", err)
		}
	}

	var sessionStore session.Store = session.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			appLog.Fatal("redis unavailable", "error", err)
		}
		defer redisClient.Close()
		sessionStore = session.NewRedisStore(redisClient, cfg.Session.TTL)
	}
	sessionSvc := session.NewService(sessionStore)

	var governor quota.Governor = quota.AlwaysAllow{Location: cfg.QuotaLocation()}
	if cfg.Production() {
		governor = quota.NewCapped(quota.NewPGStore(dbPool), cfg.Quota.DailyLimit, cfg.QuotaLocation())
	}

	var feedbackSvc *feedback.Service
	if dbPool != nil {
		feedbackSvc = feedback.NewService(feedback.NewStore(dbPool))
	}

	llm, err := ai.NewProvider(ctx, cfg.LLM)
	if err != nil {
		appLog.Fatal("llm provider init", "error", err)
	}
	defer llm.Close()

	placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		appLog.Fatal("places client init", "error", err)
	}
	routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
	if err != nil {
		appLog.Fatal("directions client init", "error", err)
	}

	resolver := imagery.NewResolver(placesSvc, appLog)
	plannerSvc := planner.NewService(sessionSvc, governor, llm, resolver, cfg.SearchURL, appLog)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Sessions:    sessionSvc,
		Planner:     plannerSvc,
		Feedback:    feedbackSvc,
		Places:      placesSvc,
		Routes:      routeSvc,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		ServiceName: serviceName,
		Log:         appLog,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("http server listening", "addr", cfg.HTTP.Addr, "env", cfg.Env, "llm", cfg.LLM.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("http server", "error", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("http shutdown", "error", err)
	}
	if err := shutdownOtel(shutdownCtx); err != nil {
		appLog.Error("otel shutdown", "error", err)
	}
}
