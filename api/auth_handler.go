package api

import (
	"net/http"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	userRepo      *database.UserRepo
	tokens        TokenIssuer
	secureCookies bool
}

func newAuthHandler(deps handlerDeps, userRepo *database.UserRepo) authHandler {
	logger, responder := deps.forHandler("authHandler")

	return authHandler{
		responder:     responder,
		logger:        logger,
		userRepo:      userRepo,
		tokens:        deps.tokens,
		secureCookies: deps.secureCookies,
	}
}

// login exchanges credentials for an access token
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Email and password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		email := normalizeEmail(req.Email)
		if email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		user, err := h.userRepo.FindByEmail(r.Context(), email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.tokens.Issue(user)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign token")
			h.responder.WriteError(w, errs.NewInternalError("failed to sign token"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     authCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
			MaxAge:   int(h.tokens.TTL().Seconds()),
		})

		h.responder.WriteJSON(w, LoginResponse{Message: "Login successful", Token: token})
	}
}
