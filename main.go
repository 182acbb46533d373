// Package main provides the HTTP entry point for the discover service.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"discover/database"
	"discover/jobs"
	"discover/metrics"
	"discover/pages"
	"discover/repository"
	"discover/search"
	"discover/services"
	"discover/views"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"
)

// App represents the application with its dependencies
type App struct {
	config      Config
	catalog     *services.CatalogService
	recommender *services.RecommendationService
	eventRepo   *repository.SearchEventRepository
	jobManager  *jobs.Manager

	homes    *sessionStore[*pages.Home]
	searches *sessionStore[*pages.Search]
	overlays *sessionStore[*views.Overlay]
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}
	cfg := loadConfig()

	if closer := setupLogging(cfg); closer != nil {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Printf("Failed to close log file: %v", err)
			}
		}()
	}

	var eventRepo *repository.SearchEventRepository
	if cfg.DatabasePath != "" {
		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		}()

		if err := db.InitSchema(); err != nil {
			log.Fatal("Failed to initialize schema:", err)
		}
		eventRepo = repository.NewSearchEventRepository(db)
	} else {
		log.Println("Warning: DATABASE_PATH is empty - search event log is disabled")
	}

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	catalog := services.NewCatalogService(cfg.CatalogAPIURL, httpClient)
	recommender := services.NewRecommendationService(cfg.RecommendAPIURL, httpClient, services.DefaultBreakerConfig)

	app := newApp(cfg, catalog, recommender, eventRepo)
	app.jobManager.Start()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	app.Close()
	log.Println("Server stopped")
}

func setupLogging(cfg Config) io.Closer {
	if cfg.LogFile == "" {
		return nil
	}
	logDir := filepath.Dir(cfg.LogFile)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		return nil
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	log.Printf("Logging to file: %s", cfg.LogFile)
	return fileWriter
}

func newApp(cfg Config, catalog *services.CatalogService, recommender *services.RecommendationService, eventRepo *repository.SearchEventRepository) *App {
	app := &App{
		config:      cfg,
		catalog:     catalog,
		recommender: recommender,
		eventRepo:   eventRepo,
		homes:       newSessionStore[*pages.Home](nil),
		searches:    newSessionStore(func(s *pages.Search) { s.Close() }),
		overlays:    newSessionStore(func(o *views.Overlay) { o.Close() }),
	}
	app.jobManager = jobs.NewManager(app.periodicTasks()...)
	return app
}

func (app *App) periodicTasks() []jobs.PeriodicTask {
	tasks := []jobs.PeriodicTask{{
		Name:     "view session sweep",
		Interval: time.Minute,
		Run: func(context.Context) error {
			app.sweepSessions()
			return nil
		},
	}}
	if app.eventRepo != nil {
		tasks = append(tasks, jobs.PeriodicTask{
			Name:     "search event pruning",
			Interval: 24 * time.Hour,
			Run: func(context.Context) error {
				removed, err := app.eventRepo.DeleteOldEvents(app.config.EventRetention)
				if err != nil {
					return err
				}
				if removed > 0 {
					log.Printf("Pruned %d search events", removed)
				}
				return nil
			},
		})
	}
	return tasks
}

func (app *App) sweepSessions() {
	idle := app.config.SessionIdleTimeout
	if idle <= 0 {
		return
	}
	if n := app.homes.Sweep(idle) + app.searches.Sweep(idle) + app.overlays.Sweep(idle); n > 0 {
		log.Printf("Expired %d idle view sessions", n)
	}
	app.reportSessions()
}

func (app *App) reportSessions() {
	metrics.SetViewSessions("home", app.homes.Len())
	metrics.SetViewSessions("search", app.searches.Len())
	metrics.SetViewSessions("overlay", app.overlays.Len())
}

// events returns the recorder handed to aggregators; nil when the log is disabled
func (app *App) events() search.EventRecorder {
	if app.eventRepo == nil {
		return nil
	}
	return app.eventRepo
}

// Close abandons every view session and waits for in-flight fetches
func (app *App) Close() {
	app.searches.CloseAll()
	app.overlays.CloseAll()
	app.homes.CloseAll()
	app.jobManager.Stop()
}

func (app *App) router() *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint
	r.HandleFunc("/health", app.healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// Home feed
	api.HandleFunc("/home", app.createHomeHandler).Methods("GET")
	api.HandleFunc("/home/{id}", app.getHomeHandler).Methods("GET")
	api.HandleFunc("/home/{id}/hero/next", app.heroNextHandler).Methods("POST")
	api.HandleFunc("/home/{id}/hero/previous", app.heroPreviousHandler).Methods("POST")
	api.HandleFunc("/home/{id}/hero/jump/{index}", app.heroJumpHandler).Methods("POST")
	api.HandleFunc("/home/{id}/rows/{row}/scroll", app.rowScrollHandler).Methods("POST")
	api.HandleFunc("/home/{id}", app.deleteHomeHandler).Methods("DELETE")

	// Search
	api.HandleFunc("/search", app.createSearchHandler).Methods("POST")
	api.HandleFunc("/search/{id}", app.getSearchHandler).Methods("GET")
	api.HandleFunc("/search/{id}", app.updateSearchHandler).Methods("PUT")
	api.HandleFunc("/search/{id}/retry", app.retrySearchHandler).Methods("POST")
	api.HandleFunc("/search/{id}/events", app.searchEventsHandler).Methods("GET")
	api.HandleFunc("/search/{id}", app.deleteSearchHandler).Methods("DELETE")

	// Detail overlays
	api.HandleFunc("/overlays", app.createOverlayHandler).Methods("POST")
	api.HandleFunc("/overlays/{id}", app.getOverlayHandler).Methods("GET")
	api.HandleFunc("/overlays/{id}/vote", app.voteHandler).Methods("POST")
	api.HandleFunc("/overlays/{id}/watchlist", app.watchlistHandler).Methods("POST")
	api.HandleFunc("/overlays/{id}/trailer", app.playTrailerHandler).Methods("POST")
	api.HandleFunc("/overlays/{id}/trailer", app.closeTrailerHandler).Methods("DELETE")
	api.HandleFunc("/overlays/{id}", app.deleteOverlayHandler).Methods("DELETE")

	return r
}

// handler wraps the router so CORS preflights are answered before routing
func (app *App) handler() http.Handler {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: app.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	return corsHandler(app.router())
}
