package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/events"
	"github.com/diyhub/backend/services"
	"github.com/diyhub/backend/storage"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// meetingScheduler creates a video meeting with the caller's Google credentials
type meetingScheduler interface {
	Schedule(ctx context.Context, accessToken string, req services.MeetingRequest) (string, error)
}

// handlerDeps carries the collaborators shared by several handlers
type handlerDeps struct {
	tokens          TokenIssuer
	hub             *events.Hub
	images          storage.ImageStore
	meet            meetingScheduler
	acceptedOrigins []string
	errorWebhookURL string
	secureCookies   bool
}

func (d handlerDeps) forHandler(name string) (zerolog.Logger, Responder) {
	logger := log.With().Str("handlerName", name).Logger()
	return logger, NewResponder(logger).WithNotifications(d.errorWebhookURL)
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, deps handlerDeps, r router) *routeHandlers {
	return &routeHandlers{
		userHandler:         newUserHandler(deps, db.UserRepo()),
		authHandler:         newAuthHandler(deps, db.UserRepo()),
		projectHandler:      newProjectHandler(deps, db.ProjectRepo(), db.ProjectTagRepo(), db.ReactionRepo(), db.CommentRepo()),
		commentHandler:      newCommentHandler(deps, db.CommentRepo(), db.ProjectRepo(), db.ForumRepo()),
		reactionHandler:     newReactionHandler(deps, db.ReactionRepo(), db.ProjectRepo(), db.CommentRepo()),
		ratingHandler:       newRatingHandler(deps, db.RatingRepo(), db.ProjectRepo()),
		forumHandler:        newForumHandler(deps, db.ForumRepo(), db.CommentRepo()),
		consultationHandler: newConsultationHandler(deps, db.ConsultationRepo()),
		meetHandler:         newMeetHandler(deps),
		wsHandler:           newWSHandler(deps),
		healthHandler:       newHealthHandler(db, r.startupTime),
	}
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError(name)
	}
	return parsePositiveUint(name, raw)
}

// parseIDQuery reads a positive integer query parameter
func parseIDQuery(r *http.Request, name string) (uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError(name)
	}
	return parsePositiveUint(name, raw)
}

func parsePositiveUint(name, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewInvalidFieldError(name, "must be a positive integer")
	}
	return uint(id), nil
}
