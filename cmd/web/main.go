package main

import (
	"embed"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/campsite/internal/config"
	"github.com/crucial707/campsite/internal/db"
	"github.com/crucial707/campsite/internal/geocode"
	"github.com/crucial707/campsite/internal/handlers"
	"github.com/crucial707/campsite/internal/middleware"
	"github.com/crucial707/campsite/internal/repo"
	"github.com/crucial707/campsite/internal/scheduler"
	"github.com/crucial707/campsite/internal/session"
	"github.com/crucial707/campsite/internal/storage"
)

//go:embed public
var publicFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogFormat)

	database, err := db.Connect(cfg.DBURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	slog.Info("database connected")

	if err := db.Run(cfg.DBURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repo.NewUserRepo(database)
	campRepo := repo.NewCampgroundRepo(database)
	reviewRepo := repo.NewReviewRepo(database)

	var sessionStore session.Store
	switch cfg.SessionBackend {
	case "redis":
		sessionStore = session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	default:
		sessionStore = session.NewPostgresStore(database)
	}

	sessions := &middleware.SessionManager{
		Store:  sessionStore,
		Codec:  session.NewCodec(cfg.SessionSecret),
		Secure: cfg.Env == "prod",
	}

	var imageStore storage.ObjectStore
	var imageOrigins []string
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioStore(
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioPublicURL, cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		imageStore = store
		if cfg.MinioPublicURL != "" {
			imageOrigins = append(imageOrigins, cfg.MinioPublicURL)
		}
	} else {
		slog.Warn("MINIO_ENDPOINT not set, image uploads disabled")
	}

	renderer := &handlers.Renderer{MapTilerKey: cfg.MapTilerKey}

	campgrounds := &handlers.CampgroundHandler{
		Camps:    campRepo,
		Reviews:  reviewRepo,
		Geocoder: geocode.NewClient(cfg.MapTilerKey),
		Images:   imageStore,
		R:        renderer,
	}
	reviews := &handlers.ReviewHandler{Camps: campRepo, Reviews: reviewRepo, R: renderer}
	users := &handlers.UserHandler{Users: userRepo, Sessions: sessions, R: renderer}

	// Expired-session purge runs in the background for the process lifetime.
	scheduler.Run(sessionStore)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(middleware.ParseForm)
	r.Use(middleware.MethodOverride)

	// Outside the session group: no store round-trip for assets or probes.
	staticFiles, err := fs.Sub(publicFS, "public")
	if err != nil {
		log.Fatalf("Failed to load static assets: %v", err)
	}
	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.FS(staticFiles))))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()

	r.Group(func(r chi.Router) {
		r.Use(sessions.Handler)
		r.Use(middleware.SecurityHeaders(imageOrigins))
		r.Use(middleware.CurrentUser(userRepo))
		r.Use(middleware.Sanitize)

		r.Get("/", renderer.Wrap(users.Home))

		r.Get("/register", renderer.Wrap(users.RegisterForm))
		r.With(authLimiter.Middleware).Post("/register", renderer.Wrap(users.Register))
		r.Get("/login", renderer.Wrap(users.LoginForm))
		r.With(authLimiter.Middleware).Post("/login", renderer.Wrap(users.Login))
		r.Get("/logout", renderer.Wrap(users.Logout))

		r.Route("/campgrounds", func(r chi.Router) {
			r.Get("/", renderer.Wrap(campgrounds.List))
			r.Get("/{id}", renderer.Wrap(campgrounds.Show))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireLogin)
				r.Get("/new", renderer.Wrap(campgrounds.NewForm))
				r.Post("/", renderer.Wrap(campgrounds.Create))
				r.Get("/{id}/edit", renderer.Wrap(campgrounds.EditForm))
				r.Put("/{id}", renderer.Wrap(campgrounds.Update))
				r.Delete("/{id}", renderer.Wrap(campgrounds.Delete))

				r.Post("/{id}/reviews", renderer.Wrap(reviews.Create))
				r.Delete("/{id}/reviews/{reviewID}", renderer.Wrap(reviews.Delete))
			})
		})

		r.NotFound(renderer.NotFound())
	})

	slog.Info("server listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
