package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/diyhub/backend/config"
	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/events"
	"github.com/diyhub/backend/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Dependencies are the collaborators main wires into the server
type Dependencies struct {
	Images    storage.ImageStore
	UploadDir string // served at /uploads when non-empty
	Hub       *events.Hub
	Meet      meetingScheduler
}

func NewServer(cfg config.Config, database database.Database, deps Dependencies) (Server, error) {
	if cfg.JWTSecret == "" {
		return Server{}, config.ErrMissingJWTSecret
	}

	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(database,
		withConfig(cfg),
		withStartupTime(startupTime),
		withImageStore(deps.Images, deps.UploadDir),
		withHub(deps.Hub),
		withMeetScheduler(deps.Meet),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
	images      storage.ImageStore
	uploadDir   string
	hub         *events.Hub
	meet        meetingScheduler
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withImageStore(images storage.ImageStore, uploadDir string) func(*router) {
	return func(r *router) {
		r.images = images
		r.uploadDir = uploadDir
	}
}

func withHub(hub *events.Hub) func(*router) {
	return func(r *router) {
		r.hub = hub
	}
}

func withMeetScheduler(meet meetingScheduler) func(*router) {
	return func(r *router) {
		r.meet = meet
	}
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.hub == nil {
		router.hub = events.NewHub()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(LogInternalServerErrors)

	acceptedOrigins := router.config.AcceptedOrigins
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	deps := handlerDeps{
		tokens:          NewTokenIssuer(router.config.JWTSecret, router.config.TokenTTL),
		hub:             router.hub,
		images:          router.images,
		meet:            router.meet,
		acceptedOrigins: acceptedOrigins,
		errorWebhookURL: router.config.ErrorWebhookURL,
		secureCookies:   router.config.SecureCookies,
	}

	// Initialize all handlers
	handlers := initializeHandlers(database, deps, router)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(deps.tokens)

	// Setup all route types
	setupAPIRoutes(chiRouter, handlers, authMiddleware)
	setupRealtimeRoutes(chiRouter, handlers)
	if router.uploadDir != "" {
		setupStaticRoutes(chiRouter, router.uploadDir)
	}

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
