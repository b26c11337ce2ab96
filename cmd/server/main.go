package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/eventhub/event-wizard/internal/config"
	"github.com/eventhub/event-wizard/internal/database"
	"github.com/eventhub/event-wizard/internal/handler"
	"github.com/eventhub/event-wizard/internal/queue"
	"github.com/eventhub/event-wizard/internal/repository"
	"github.com/eventhub/event-wizard/internal/router"
	"github.com/eventhub/event-wizard/internal/session"
	"github.com/eventhub/event-wizard/internal/terms"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	events := repository.NewEventRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := events.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis backs sessions, terms and rate limiting.  Without it the
	// service still runs: sessions live in process memory and the terms
	// text falls back to the static default.
	rdb := config.NewRedisClient()
	var sessions session.Store
	var provider terms.Provider
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, cfg.SessionPrefix, cfg.SessionTTL)
		provider = terms.NewRedisProvider(rdb)
	} else {
		log.Printf("redis unavailable; using in-memory sessions and static terms")
		sessions = session.NewMemoryStore()
		provider = terms.NewStatic("")
	}

	h := handler.NewWizardHandler(sessions, events, provider)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterWizard(e, h, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

	// Consume submitted events in the background; the consumer keeps its
	// own reconnect loop.
	go func() {
		if err := queue.StartSubmissionConsumer(); err != nil {
			log.Printf("submission consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
