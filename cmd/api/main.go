package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/printops/scheduler/internal/config"
	"github.com/printops/scheduler/internal/events"
	"github.com/printops/scheduler/internal/logging"
	"github.com/printops/scheduler/internal/metrics"
	"github.com/printops/scheduler/internal/modules/catalog"
	"github.com/printops/scheduler/internal/modules/rules"
	"github.com/printops/scheduler/internal/modules/schedule"
	"github.com/printops/scheduler/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}
	if err := logging.Init(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer zap.S().Sync()

	// ── Dataset store: postgres when configured, files otherwise ──
	var kv store.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			zap.S().Fatalw("open database", "err", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			zap.S().Fatalw("ping database", "err", err)
		}
		kv, err = store.NewPostgresStore(db)
		if err != nil {
			zap.S().Fatalw("init dataset table", "err", err)
		}
		zap.S().Infow("using postgres dataset store")
	} else {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			zap.S().Fatalw("init file store", "err", err, "dir", cfg.DataDir)
		}
		kv = fs
		zap.S().Infow("using file dataset store", "dir", cfg.DataDir)
	}

	// ── Decision broker: redis when configured ──
	var broker events.Broker
	if cfg.RedisURL != "" {
		rb, err := events.NewRedisBroker(cfg.RedisURL)
		if err != nil {
			zap.S().Fatalw("connect redis broker", "err", err)
		}
		broker = rb
		zap.S().Infow("using redis decision broker")
	} else {
		broker = events.NewMemoryBroker()
	}
	defer broker.Close()

	metrics.Register()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)

	catalogRepo := catalog.NewRepository(kv)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	rulesRepo := rules.NewRepository(kv)
	rulesService := rules.NewService(rulesRepo)
	rules.NewHandler(rulesService).RegisterRoutes(router)

	scheduleService := schedule.NewService(catalogRepo, rulesRepo, broker, cfg.DefaultTimezone)
	schedule.NewHandler(scheduleService, broker).RegisterRoutes(router)

	router.Handle("/metrics", metrics.Handler())
	router.Get("/debug/logs", logging.DebugLogsHandler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	zap.S().Infow("scheduler listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		zap.S().Fatalw("server stopped", "err", err)
	}
}
