package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes mounts the REST surface under /api
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/users/register", handlers.userHandler.registerUser())
			r.Get("/users/{id}", handlers.userHandler.getUser())
			r.Get("/info/{id}", handlers.userHandler.getUser())
			r.Post("/auth/login", handlers.authHandler.login())

			r.Get("/comments", handlers.commentHandler.getComments())
			r.Get("/comments/replies", handlers.commentHandler.getReplies())
			r.Get("/comments/count", handlers.commentHandler.getCommentCount())

			r.Get("/reactions", handlers.reactionHandler.getReactionCounts())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Get("/projects/all", handlers.projectHandler.getAllProjects())
			r.Get("/projects/tags", handlers.projectHandler.getTags())
			r.Get("/projects/{id}", handlers.projectHandler.getProject())

			r.Post("/comments", handlers.commentHandler.createComment())

			r.Post("/reactions", handlers.reactionHandler.handleReaction())

			r.Post("/ratings", handlers.ratingHandler.upsertRating())
			r.Get("/ratings/average/{project_id}", handlers.ratingHandler.getAverageRating())
			r.Get("/ratings/{project_id}", handlers.ratingHandler.getUserRating())

			r.Post("/forums/create", handlers.forumHandler.createForum())
			r.Get("/forums/all", handlers.forumHandler.getAllForums())
			r.Get("/forums/{id}", handlers.forumHandler.getForum())

			r.Post("/consultations/create", handlers.consultationHandler.createConsultation())
			r.Get("/consultations/all", handlers.consultationHandler.getAllConsultations())
			r.Get("/consultations/{id}", handlers.consultationHandler.getConsultation())

			r.Post("/meet/schedule-meeting", handlers.meetHandler.scheduleMeeting())
		})
	})
}

// setupRealtimeRoutes mounts the websocket feed and the health probe
func setupRealtimeRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/ws", handlers.wsHandler.serveWS())
	r.Get("/health", handlers.healthHandler.health())
}

// setupStaticRoutes serves uploaded images from dir
func setupStaticRoutes(r chi.Router, dir string) {
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})
}
