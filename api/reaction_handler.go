package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/models"
	"github.com/rs/zerolog"
)

type reactionHandler struct {
	responder    Responder
	logger       zerolog.Logger
	reactionRepo *database.ReactionRepo
	projectRepo  *database.ProjectRepo
	commentRepo  *database.CommentRepo
}

func newReactionHandler(deps handlerDeps, reactionRepo *database.ReactionRepo, projectRepo *database.ProjectRepo,
	commentRepo *database.CommentRepo) reactionHandler {
	logger, responder := deps.forHandler("reactionHandler")

	return reactionHandler{
		responder:    responder,
		logger:       logger,
		reactionRepo: reactionRepo,
		projectRepo:  projectRepo,
		commentRepo:  commentRepo,
	}
}

// targetExists checks the row a reaction points at. A "comment" target must be top-level and
// a "reply" target must have a parent.
func (h reactionHandler) targetExists(ctx context.Context, target models.ReactionTarget) (bool, error) {
	switch target.Kind() {
	case models.TargetProject:
		return h.projectRepo.Exists(ctx, target.ID())
	case models.TargetComment, models.TargetReply:
		comment, err := h.commentRepo.FindByID(ctx, target.ID())
		if err != nil || comment == nil {
			return false, err
		}
		return comment.IsReply() == (target.Kind() == models.TargetReply), nil
	}
	return false, nil
}

// handleReaction sets, changes or clears the caller's reaction and returns the new counts
// @Summary React
// @Description A null or missing reaction_type removes the caller's reaction
// @Tags Reactions
// @Accept json
// @Produce json
// @Param reaction body reactionRequest true "Reaction"
// @Success 200 {object} ReactionCountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Target not found"
// @Router /api/reactions [post]
func (h reactionHandler) handleReaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req reactionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		target, err := models.ParseReactionTarget(req.TargetType, req.TargetID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var kind models.ReactionKind
		if req.ReactionType != nil && strings.TrimSpace(*req.ReactionType) != "" {
			var ok bool
			kind, ok = models.ParseReactionKind(strings.ToLower(strings.TrimSpace(*req.ReactionType)))
			if !ok {
				h.responder.WriteError(w, errs.NewInvalidFieldError("reaction_type", "Invalid reaction type"))
				return
			}
		}

		exists, err := h.targetExists(r.Context(), target)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", string(target.Kind()), err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewNotFoundError(string(target.Kind())+" not found"))
			return
		}

		if kind == "" {
			err = h.reactionRepo.Delete(r.Context(), target, userID)
		} else {
			err = h.reactionRepo.Upsert(r.Context(), target, userID, kind)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "reaction", err))
			return
		}

		counts, err := h.reactionRepo.Counts(r.Context(), target)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "reactions", err))
			return
		}

		h.responder.WriteJSON(w, ReactionCountsResponse{Counts: counts})
	}
}

// getReactionCounts returns the like/dislike/love counts of a target
// @Summary Reaction counts
// @Tags Reactions
// @Produce json
// @Param target_id query int true "Target ID"
// @Param target_type query string true "project, comment or reply"
// @Success 200 {object} ReactionCountsResponse
// @Router /api/reactions [get]
func (h reactionHandler) getReactionCounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := strings.TrimSpace(r.URL.Query().Get("target_type"))
		if kind == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("target_type"))
			return
		}
		id, err := parseIDQuery(r, "target_id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		target, err := models.ParseReactionTarget(kind, id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		counts, err := h.reactionRepo.Counts(r.Context(), target)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "reactions", err))
			return
		}

		h.responder.WriteJSON(w, ReactionCountsResponse{Counts: counts})
	}
}
