package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/events"
	"github.com/diyhub/backend/models"
	"github.com/rs/zerolog"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	hub         *events.Hub
	commentRepo *database.CommentRepo
	projectRepo *database.ProjectRepo
	forumRepo   *database.ForumRepo
}

func newCommentHandler(deps handlerDeps, commentRepo *database.CommentRepo, projectRepo *database.ProjectRepo,
	forumRepo *database.ForumRepo) commentHandler {
	logger, responder := deps.forHandler("commentHandler")

	return commentHandler{
		responder:   responder,
		logger:      logger,
		hub:         deps.hub,
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		forumRepo:   forumRepo,
	}
}

// targetExists checks the project or forum row a comment is about to reference
func (h commentHandler) targetExists(ctx context.Context, target models.CommentTarget) (bool, error) {
	switch target.Kind() {
	case models.TargetProject:
		return h.projectRepo.Exists(ctx, target.ID())
	case models.TargetForum:
		return h.forumRepo.Exists(ctx, target.ID())
	}
	return false, nil
}

// createComment adds a comment or reply and broadcasts it to the target's topic
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param comment body createCommentRequest true "Comment data"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Target or parent comment not found"
// @Router /api/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req createCommentRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		target, err := models.ParseCommentTarget(req.TargetType, req.TargetID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
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

		if req.ParentCommentID != nil && *req.ParentCommentID != 0 {
			parent, err := h.commentRepo.FindByID(r.Context(), *req.ParentCommentID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "parent comment", err))
				return
			}
			if parent == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("parent comment not found"))
				return
			}
			if parent.Target() != target {
				h.responder.WriteError(w, errs.NewInvalidFieldError("parent_comment_id", "parent comment belongs to a different target"))
				return
			}
		} else {
			req.ParentCommentID = nil
		}

		comment := models.Comment{
			ParentCommentID: req.ParentCommentID,
			UserID:          userID,
			Content:         req.Content,
		}
		if err := h.commentRepo.Add(r.Context(), target, &comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		delivered := h.hub.Publish(events.CommentTopic(target), &comment)
		h.logger.Debug().Uint("commentID", comment.ID).Int("delivered", delivered).Msg("comment broadcast")

		h.responder.WriteStatusJSON(w, http.StatusCreated, CommentResponse{
			Message: "Comment created successfully",
			Comment: &comment,
		})
	}
}

// targetFromQuery reads target_type and target_id from the query string
func targetFromQuery(r *http.Request) (models.CommentTarget, error) {
	kind := strings.TrimSpace(r.URL.Query().Get("target_type"))
	if kind == "" {
		return models.CommentTarget{}, errs.NewMissingRequiredFieldError("target_type")
	}
	id, err := parseIDQuery(r, "target_id")
	if err != nil {
		return models.CommentTarget{}, err
	}
	return models.ParseCommentTarget(kind, id)
}

// getComments returns the top-level comments of a target, oldest first
// @Summary List comments
// @Tags Comments
// @Produce json
// @Param target_id query int true "Target ID"
// @Param target_type query string true "project or forum"
// @Success 200 {object} CommentsResponse
// @Router /api/comments [get]
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := targetFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comments, err := h.commentRepo.FindTopLevel(r.Context(), target)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteJSON(w, CommentsResponse{Comments: comments})
	}
}

// getReplies returns the direct replies to a comment
// @Summary List replies
// @Tags Comments
// @Produce json
// @Param comment_id query int true "Parent comment ID"
// @Success 200 {object} RepliesResponse
// @Router /api/comments/replies [get]
func (h commentHandler) getReplies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := parseIDQuery(r, "comment_id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		replies, err := h.commentRepo.FindReplies(r.Context(), commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "replies", err))
			return
		}

		h.responder.WriteJSON(w, RepliesResponse{Replies: replies})
	}
}

// getCommentCount counts comments and replies on a target
// @Summary Count comments
// @Tags Comments
// @Produce json
// @Param target_id query int true "Target ID"
// @Param target_type query string true "project or forum"
// @Success 200 {object} CountResponse
// @Router /api/comments/count [get]
func (h commentHandler) getCommentCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := targetFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		count, err := h.commentRepo.CountByTarget(r.Context(), target)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "comments", err))
			return
		}

		h.responder.WriteJSON(w, CountResponse{Count: count})
	}
}
