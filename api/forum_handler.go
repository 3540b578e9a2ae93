package api

import (
	"net/http"
	"strings"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type forumHandler struct {
	responder   Responder
	logger      zerolog.Logger
	forumRepo   *database.ForumRepo
	commentRepo *database.CommentRepo
}

func newForumHandler(deps handlerDeps, forumRepo *database.ForumRepo, commentRepo *database.CommentRepo) forumHandler {
	logger, responder := deps.forHandler("forumHandler")

	return forumHandler{
		responder:   responder,
		logger:      logger,
		forumRepo:   forumRepo,
		commentRepo: commentRepo,
	}
}

// createForum opens a discussion; the body's topic becomes the forum title
func (h forumHandler) createForum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		var req createForumRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if strings.TrimSpace(req.Topic) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("topic"))
			return
		}
		if req.Tags == nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("tags"))
			return
		}

		forum := models.Forum{
			Title:  strings.TrimSpace(req.Topic),
			UserID: userID,
			Tags:   models.NewForumTags(req.Tags),
		}
		if err := h.forumRepo.Add(r.Context(), &forum); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "forum", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, ForumResponse{
			Message: "Forum created successfully!",
			Forum:   &forum,
		})
	}
}

// getAllForums lists forums with author name and comment count
func (h forumHandler) getAllForums() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forums, err := h.forumRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "forums", err))
			return
		}

		ids := make([]uint, len(forums))
		for i, forum := range forums {
			ids[i] = forum.ID
		}
		counts, err := h.commentRepo.CountByTargets(r.Context(), models.TargetForum, ids)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "forum comments", err))
			return
		}

		summaries := make([]ForumSummary, 0, len(forums))
		for _, forum := range forums {
			summaries = append(summaries, ForumSummary{
				Forum:        forum,
				UserName:     forum.User.FullName(),
				CommentCount: counts[forum.ID],
			})
		}

		h.responder.WriteJSON(w, ForumCollection{
			Message: "Forums fetched successfully",
			Forums:  summaries,
		})
	}
}

// getForum loads a forum and all of its comments concurrently
func (h forumHandler) getForum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forumID, err := parseIDParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var forum *models.Forum
		var comments []*models.Comment
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			forum, err = h.forumRepo.FindByID(ctx, forumID)
			return err
		})
		g.Go(func() error {
			var err error
			comments, err = h.commentRepo.FindByTarget(ctx, models.ForumCommentTarget(forumID))
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "forum", err))
			return
		}
		if forum == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Forum not found"))
			return
		}

		h.responder.WriteJSON(w, ForumDetailResponse{
			Message:  "Forum details fetched successfully",
			Forum:    forum,
			Comments: comments,
		})
	}
}
