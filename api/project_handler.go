package api

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/models"
	"github.com/diyhub/backend/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxMultipartMemory is the part of a multipart project form kept in memory
const maxMultipartMemory = 8 << 20

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	images         storage.ImageStore
	projectRepo    *database.ProjectRepo
	projectTagRepo *database.ProjectTagRepo
	reactionRepo   *database.ReactionRepo
	commentRepo    *database.CommentRepo
}

func newProjectHandler(deps handlerDeps, projectRepo *database.ProjectRepo, projectTagRepo *database.ProjectTagRepo,
	reactionRepo *database.ReactionRepo, commentRepo *database.CommentRepo) projectHandler {
	logger, responder := deps.forHandler("projectHandler")

	return projectHandler{
		responder:      responder,
		logger:         logger,
		images:         deps.images,
		projectRepo:    projectRepo,
		projectTagRepo: projectTagRepo,
		reactionRepo:   reactionRepo,
		commentRepo:    commentRepo,
	}
}

func newProjectView(project *models.Project, likes, comments int64) ProjectView {
	return ProjectView{
		Project:  project,
		Tags:     project.TagValues(),
		UserName: project.User.FullName(),
		Likes:    likes,
		Comments: comments,
	}
}

// getAllProjects lists projects with their like, view and comment counts
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param tag query string false "Only projects carrying this tag"
// @Param level query string false "easy, intermediate or advanced"
// @Param search query string false "Case-insensitive title substring"
// @Success 200 {object} ProjectCollection
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /api/projects/all [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := database.ProjectFilter{
			Tag:    query.Get("tag"),
			Search: query.Get("search"),
		}
		if raw := query.Get("level"); raw != "" {
			level, ok := models.ParseSkillLevel(strings.ToLower(raw))
			if !ok {
				h.responder.WriteError(w, errs.NewInvalidFieldError("level", "must be easy, intermediate or advanced"))
				return
			}
			filter.Level = level
		}

		projects, err := h.projectRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		ids := make([]uint, len(projects))
		for i, project := range projects {
			ids[i] = project.ID
		}

		var likes, comments map[uint]int64
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			likes, err = h.reactionRepo.LikesByProjects(ctx, ids)
			return err
		})
		g.Go(func() error {
			var err error
			comments, err = h.commentRepo.CountByTargets(ctx, models.TargetProject, ids)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "project engagement", err))
			return
		}

		views := make([]ProjectView, 0, len(projects))
		for _, project := range projects {
			views = append(views, newProjectView(project, likes[project.ID], comments[project.ID]))
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Message:  "Projects fetched successfully",
			Projects: views,
		})
	}
}

// getProject returns one project and counts the visit
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} ProjectResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		exists, err := h.projectRepo.Exists(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		if err := h.projectRepo.IncrementViews(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project views", err))
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		var counts models.ReactionCounts
		var comments int64
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			counts, err = h.reactionRepo.Counts(ctx, models.ProjectReactionTarget(projectID))
			return err
		})
		g.Go(func() error {
			var err error
			comments, err = h.commentRepo.CountByTarget(ctx, models.ProjectCommentTarget(projectID))
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "project engagement", err))
			return
		}

		h.responder.WriteJSON(w, ProjectResponse{
			Message: "Project details fetched successfully",
			Project: newProjectView(project, counts.Like, comments),
		})
	}
}

// getTags returns every tag used by at least one project
// @Summary List project tags
// @Tags Projects
// @Produce json
// @Success 200 {object} TagsResponse
// @Router /api/projects/tags [get]
func (h projectHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.projectTagRepo.DistinctValues(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project tags", err))
			return
		}
		if tags == nil {
			tags = []string{}
		}
		h.responder.WriteJSON(w, TagsResponse{Tags: tags})
	}
}

// createProject creates a project from a JSON body or a multipart form with an optional
// cover_image file
// @Summary Create project
// @Tags Projects
// @Accept json,mpfd
// @Produce json
// @Param project body createProjectRequest true "Project data"
// @Success 201 {object} ProjectResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 413 {object} ErrorResponse "Cover image too large"
// @Failure 415 {object} ErrorResponse "Cover image is not a jpeg or png"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		req, cover, err := h.readProjectRequest(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := validateProjectRequest(req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project.UserID = userID

		if cover != nil {
			if h.images == nil {
				h.responder.WriteError(w, errs.NewInternalError("image uploads are not configured"))
				return
			}
			ref, err := storage.SaveMultipart(r.Context(), h.images, cover)
			if err != nil {
				h.logger.Warn().Err(err).Str("filename", cover.Filename).Msg("Rejected cover image")
				h.responder.WriteError(w, err)
				return
			}
			project.CoverImage = &ref
		}

		if err := h.projectRepo.Add(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.logger.Info().Uint("projectID", project.ID).Msg("project created")
		h.responder.WriteStatusJSON(w, http.StatusCreated, ProjectResponse{
			Message: "Project created successfully!",
			Project: newProjectView(project, 0, 0),
		})
	}
}

// readProjectRequest decodes either body format. The returned file header is nil when no
// cover image was sent.
func (h projectHandler) readProjectRequest(w http.ResponseWriter, r *http.Request) (createProjectRequest, *multipart.FileHeader, error) {
	var req createProjectRequest

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err := decodeJSON(w, r, &req)
		return req, nil, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+maxJSONBodySize)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, nil, errs.NewMaxBodySizeExceededError(storage.MaxImageSize)
		}
		return req, nil, errs.NewMalformedPayloadError("multipart", err)
	}

	req.Title = r.FormValue("title")
	req.Level = r.FormValue("level")
	req.Description = r.FormValue("description")
	req.Tags = parseFormTags(r.MultipartForm.Value["tags"])

	var cover *multipart.FileHeader
	if files := r.MultipartForm.File["cover_image"]; len(files) > 0 {
		cover = files[0]
	}
	return req, cover, nil
}

// parseFormTags accepts repeated fields, a JSON array or a comma separated list
func parseFormTags(values []string) []string {
	var tags []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var decoded []string
			if err := json.Unmarshal([]byte(v), &decoded); err == nil {
				tags = append(tags, decoded...)
				continue
			}
		}
		tags = append(tags, strings.Split(v, ",")...)
	}
	return tags
}

func validateProjectRequest(req createProjectRequest) (*models.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}

	tags := models.NewProjectTags(req.Tags)
	if len(tags) == 0 {
		return nil, errs.NewMissingRequiredFieldError("tags")
	}

	if strings.TrimSpace(req.Level) == "" {
		return nil, errs.NewMissingRequiredFieldError("level")
	}
	level, ok := models.ParseSkillLevel(strings.ToLower(strings.TrimSpace(req.Level)))
	if !ok {
		return nil, errs.NewInvalidFieldError("level", "must be easy, intermediate or advanced")
	}

	if strings.TrimSpace(req.Description) == "" {
		return nil, errs.NewMissingRequiredFieldError("description")
	}

	return &models.Project{
		Title:       title,
		Level:       level,
		Description: req.Description,
		Tags:        tags,
	}, nil
}
