package api

import (
	"net/http"
	"strings"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const emailInUse = "Email already in use"

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(deps handlerDeps, userRepo *database.UserRepo) userHandler {
	logger, responder := deps.forHandler("userHandler")

	return userHandler{
		responder: responder,
		logger:    logger,
		userRepo:  userRepo,
	}
}

// normalizeEmail is applied on both registration and login
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// registerUser creates a new account
// @Summary Register user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body registerRequest true "Registration data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Missing field or email already in use"
// @Router /api/users/register [post]
func (h userHandler) registerUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req.Email = normalizeEmail(req.Email)
		switch {
		case strings.TrimSpace(req.FirstName) == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("first_name"))
			return
		case strings.TrimSpace(req.LastName) == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("last_name"))
			return
		case req.Email == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		case req.Password == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		case req.Age == nil:
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("age"))
			return
		case *req.Age < 0:
			h.responder.WriteError(w, errs.NewInvalidFieldError("age", "must not be negative"))
			return
		}

		existing, err := h.userRepo.FindByEmail(r.Context(), req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(emailInUse))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to hash password")
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		user := models.User{
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Email:        req.Email,
			PasswordHash: string(hash),
			Age:          *req.Age,
		}
		if err := h.userRepo.Add(r.Context(), &user); err != nil {
			dbErr := errs.NewDatabaseError("create", "user", err)
			// A concurrent registration can still win the unique index
			if errs.IsAlreadyExists(dbErr) {
				h.responder.WriteError(w, errs.NewBadRequestError(emailInUse))
				return
			}
			h.responder.WriteError(w, dbErr)
			return
		}

		h.logger.Info().Str("userID", user.ID.String()).Msg("user registered")
		h.responder.WriteStatusJSON(w, http.StatusCreated, MessageResponse{Message: "User registered successfully!"})
	}
}

// getUser returns a user without credentials
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Success 200 {object} UserResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/users/{id} [get]
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("id", "must be a uuid"))
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, UserResponse{User: user})
	}
}
