package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/OPpuolitaival/tasklist/internal/api/shared"
	"github.com/OPpuolitaival/tasklist/internal/domain"
	"github.com/OPpuolitaival/tasklist/internal/service/auth"
	"github.com/OPpuolitaival/tasklist/internal/store"
)

// AuthHandler handles registration, login and token refresh requests.
type AuthHandler struct {
	userStore         store.UserStore
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	passwordHasher    auth.PasswordHasher
	passwordMinLength int
	accessTokenTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// passwordMinLength is the minimum accepted password length and
// accessTokenTTL drives the expires_at hint in token responses.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	passwordHasher auth.PasswordHasher,
	passwordMinLength int,
	accessTokenTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		userStore:         userStore,
		jwtService:        jwtService,
		passwordVerifier:  passwordVerifier,
		passwordHasher:    passwordHasher,
		passwordMinLength: passwordMinLength,
		accessTokenTTL:    accessTokenTTL,
	}
}

// Register handles POST /api/auth/register/.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if fields := h.validateRegistration(req); len(fields) > 0 {
		shared.RespondWithValidationError(w, r, "Validation failed", fields)
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		shared.RespondWithValidationError(w, r, "Validation failed", map[string]string{
			registrationField(err): err.Error(),
		})
		return
	}

	hash, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err, "username", req.Username)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithValidationError(
				w, r, "Validation failed", ValidationFields(err))
			return
		}
		slog.Error("failed to create user", "error", err, "username", req.Username)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	tokens, err := h.issueTokens(r, user.ID)
	if err != nil {
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:   userResponse(user),
		Tokens: tokens,
	})
}

// Login handles POST /api/auth/login/.
//
// Every failure mode answers with the same generic message: an unknown
// username, a wrong password and a deactivated account are
// indistinguishable from the outside.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.rejectCredentials(w, r)
			return
		}
		slog.Error("failed to get user by username", "error", err, "username", req.Username)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		h.rejectCredentials(w, r)
		return
	}

	if !user.IsActive {
		h.rejectCredentials(w, r)
		return
	}

	tokens, err := h.issueTokens(r, user.ID)
	if err != nil {
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:   userResponse(user),
		Tokens: tokens,
	})
}

// RefreshToken handles POST /api/auth/refresh/. A valid refresh token
// yields a brand new access/refresh pair; the old refresh token is not
// tracked and simply ages out.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		shared.RespondWithError(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	// The principal must still be live; a refresh token outlasting its
	// user is dead weight.
	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil || !user.IsActive {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	tokens, err := h.issueTokens(r, user.ID)
	if err != nil {
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tokens)
}

// registrationField names the request field a domain validation error
// belongs to, so email and password problems are not blamed on the
// username.
func registrationField(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		return "email"
	case errors.Is(err, domain.ErrEmptyPassword), errors.Is(err, domain.ErrPasswordTooLong):
		return "password"
	default:
		return "username"
	}
}

func (h *AuthHandler) rejectCredentials(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(
		w, r,
		MapErrorToStatusCode(auth.ErrInvalidCredentials),
		GetSafeErrorMessage(auth.ErrInvalidCredentials))
}

// issueTokens generates a fresh access/refresh pair for the user.
func (h *AuthHandler) issueTokens(r *http.Request, userID uuid.UUID) (TokenPair, error) {
	access, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "user_id", userID)
		return TokenPair{}, err
	}

	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "user_id", userID)
		return TokenPair{}, err
	}

	pair := TokenPair{Access: access, Refresh: refresh}
	if h.accessTokenTTL > 0 {
		pair.ExpiresAt = time.Now().UTC().Add(h.accessTokenTTL).Format(time.RFC3339)
	}
	return pair, nil
}

// validateRegistration checks the registration payload and returns one
// message per failing field, empty when everything passes.
func (h *AuthHandler) validateRegistration(req RegisterRequest) map[string]string {
	fields := make(map[string]string)

	if err := shared.ValidateRequest(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			for _, fe := range vErrs {
				switch fe.Field() {
				case "Username":
					if fe.Tag() == "max" {
						fields["username"] = "Ensure this field has no more than 150 characters."
					} else {
						fields["username"] = "This field is required."
					}
				case "Email":
					fields["email"] = "Enter a valid email address."
				case "Password":
					if fe.Tag() == "max" {
						fields["password"] = "Ensure this field has no more than 72 characters."
					} else {
						fields["password"] = "This field is required."
					}
				case "PasswordConfirm":
					fields["password_confirm"] = "This field is required."
				}
			}
		} else {
			fields["non_field_errors"] = "Validation error"
		}
	}

	if _, bad := fields["password"]; !bad && req.Password != "" &&
		len(req.Password) < h.passwordMinLength {
		fields["password"] = fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.",
			h.passwordMinLength)
	}

	if _, bad := fields["password_confirm"]; !bad && req.PasswordConfirm != "" &&
		req.Password != req.PasswordConfirm {
		fields["password"] = "Passwords don't match"
	}

	return fields
}

func userResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
