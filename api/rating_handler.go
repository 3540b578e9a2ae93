package api

import (
	"net/http"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/models"
	"github.com/rs/zerolog"
)

type ratingHandler struct {
	responder   Responder
	logger      zerolog.Logger
	ratingRepo  *database.RatingRepo
	projectRepo *database.ProjectRepo
}

func newRatingHandler(deps handlerDeps, ratingRepo *database.RatingRepo, projectRepo *database.ProjectRepo) ratingHandler {
	logger, responder := deps.forHandler("ratingHandler")

	return ratingHandler{
		responder:   responder,
		logger:      logger,
		ratingRepo:  ratingRepo,
		projectRepo: projectRepo,
	}
}

// upsertRating stores the caller's 1..5 rating of a project; target_id is the project id
// @Summary Rate project
// @Tags Ratings
// @Accept json
// @Produce json
// @Param rating body ratingRequest true "Rating"
// @Success 201 {object} RatingResponse
// @Failure 400 {object} ErrorResponse "Rating outside 1-5"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/ratings [post]
func (h ratingHandler) upsertRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req ratingRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.TargetID == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("target_id"))
			return
		}
		if !models.ValidRating(req.Rating) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("rating", "must be between 1 and 5"))
			return
		}

		exists, err := h.projectRepo.Exists(r.Context(), req.TargetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		rating := models.Rating{UserID: userID, ProjectID: req.TargetID, Rating: req.Rating}
		if err := h.ratingRepo.Upsert(r.Context(), &rating); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "rating", err))
			return
		}

		stored, err := h.ratingRepo.FindForUser(r.Context(), userID, req.TargetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "rating", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, RatingResponse{
			Message: "Rating added/updated successfully",
			Rating:  stored,
		})
	}
}

// getUserRating returns the caller's rating of a project, or null
// @Summary My rating
// @Tags Ratings
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} UserRatingResponse
// @Router /api/ratings/{project_id} [get]
func (h ratingHandler) getUserRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		projectID, err := parseIDParam(r, "project_id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		rating, err := h.ratingRepo.FindForUser(r.Context(), userID, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "rating", err))
			return
		}

		var resp UserRatingResponse
		if rating != nil {
			resp.Rating = &rating.Rating
		}
		h.responder.WriteJSON(w, resp)
	}
}

// getAverageRating returns the rounded mean rating, 0 for unrated projects
// @Summary Average rating
// @Tags Ratings
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} AverageRatingResponse
// @Router /api/ratings/average/{project_id} [get]
func (h ratingHandler) getAverageRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "project_id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		avg, err := h.ratingRepo.Average(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("average", "ratings", err))
			return
		}

		h.responder.WriteJSON(w, AverageRatingResponse{AverageRating: models.RoundAverage(avg)})
	}
}
