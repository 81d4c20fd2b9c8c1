package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/announcements"
	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/counters"
	"staffhub/internal/domain/directory"
	"staffhub/internal/domain/gamification"
	"staffhub/internal/domain/leave"
	"staffhub/internal/domain/notify"
	"staffhub/internal/domain/reports"
	"staffhub/internal/domain/surveys"
	"staffhub/internal/domain/timetracking"
	"staffhub/internal/platform/cache"
	"staffhub/internal/platform/config"
	"staffhub/internal/platform/db"
	"staffhub/internal/platform/email"
	"staffhub/internal/platform/jobs"
	"staffhub/internal/platform/metrics"
	"staffhub/internal/platform/telegram"
	"staffhub/internal/transport/http/api"
	announcementshandler "staffhub/internal/transport/http/handlers/announcements"
	authhandler "staffhub/internal/transport/http/handlers/auth"
	countershandler "staffhub/internal/transport/http/handlers/counters"
	directoryhandler "staffhub/internal/transport/http/handlers/directory"
	gamificationhandler "staffhub/internal/transport/http/handlers/gamification"
	leavehandler "staffhub/internal/transport/http/handlers/leave"
	notifyhandler "staffhub/internal/transport/http/handlers/notify"
	reportshandler "staffhub/internal/transport/http/handlers/reports"
	surveyshandler "staffhub/internal/transport/http/handlers/surveys"
	timetrackinghandler "staffhub/internal/transport/http/handlers/timetracking"
	"staffhub/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	tg, err := telegram.New(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("telegram init failed: %v", err)
	}

	memCache := cache.NewMemory()
	collector := metrics.New()

	authStore := auth.NewStore(pool)
	directoryService := directory.NewService(directory.NewStore(pool))
	announcementsService := announcements.NewService(announcements.NewStore(pool))
	leaveService := leave.NewService(leave.NewStore(pool))
	timeService := timetracking.NewService(timetracking.NewStore(pool))
	gamificationService := gamification.NewService(gamification.NewStore(pool), directoryService)
	surveysService := surveys.NewService(surveys.NewStore(pool))
	countersService := counters.NewService(pool, announcementsService, memCache, cfg.CounterCacheTTL, cfg.SuperAdminEmail)
	notifyService := notify.NewService(pool, notify.NewSlackSender(), tg, email.New(cfg))
	reportsService := reports.NewService(reports.NewStore(pool), directoryService, timeService)

	jobsService := jobs.New(pool, cfg, countersService, surveysService, timeService, gamificationService)
	jobsService.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryService).RegisterRoutes(r)
		announcementshandler.NewHandler(announcementsService, directoryService, notifyService, jobsService).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService, directoryService).RegisterRoutes(r)
		timetrackinghandler.NewHandler(timeService, directoryService).RegisterRoutes(r)
		gamificationhandler.NewHandler(gamificationService, directoryService, jobsService).RegisterRoutes(r)
		surveyshandler.NewHandler(surveysService, directoryService).RegisterRoutes(r)
		countershandler.NewHandler(countersService, directoryService).RegisterRoutes(r)
		notifyhandler.NewHandler(notifyService, directoryService).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService).RegisterRoutes(r)

		if cfg.MetricsEnabled {
			r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/admin/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
		}
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// spaHandler serves the built frontend, falling back to index.html for
// client-side routes.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
