package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	authmiddleware "github.com/krishisethu/backend/internal/auth/middleware"
	"github.com/krishisethu/backend/internal/models"
	"go.uber.org/zap"
)

// refreshTokenCookie is the cookie carrying the refresh token.
// The access token is never set as a cookie; clients send it as a Bearer header.
const refreshTokenCookie = "refresh_token"

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Signup performs credentials validation and user creation.
	//
	// "req" parameter contains phone number, password, name and profile fields.
	//
	// Returns the created user without tokens, or an error when the input is
	// invalid or the phone number is already registered.
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	// Method Login authenticates a user and issues a token pair.
	//
	// Returns the user together with access and refresh tokens, or an error
	// when the credentials are invalid.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, string, error)
	// Method Logout clears the stored refresh token of the user. Idempotent.
	Logout(ctx context.Context, userID int) error
	// Method Refresh rotates a refresh token and returns a new token pair.
	//
	// The presented token must be valid and must match the stored one;
	// otherwise an unauthorized error is returned.
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService   AuthService
	refreshExpiry time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, refreshExpiry time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		authService:   authService,
		refreshExpiry: refreshExpiry,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
		})
	})
}

// Signup handles POST /auth/signup
// @Summary Register a new user
// @Description Register a new user with phone number, password, name and location. Returns the created profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup request"
// @Success 201 {object} models.User "User created"
// @Failure 400 {object} map[string]string "Invalid request body or missing fields"
// @Failure 409 {object} map[string]string "Phone number already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to sign up user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, user)
}

// loginResponse is the response body for a successful login
type loginResponse struct {
	Message     string             `json:"message"`
	User        models.UserSummary `json:"user"`
	AccessToken string             `json:"accessToken"`
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with phone number and password. Sets the refresh token as an HTTP-only cookie and returns the access token in the body.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} loginResponse "Login successful"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, accessToken, refreshToken, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to login user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.setRefreshCookie(w, refreshToken)

	h.RespondJSON(w, http.StatusOK, loginResponse{
		Message:     "login successful",
		User:        user.Summary(),
		AccessToken: accessToken,
	})
}

// Logout handles POST /auth/logout
// @Summary Logout user
// @Description Clear the stored refresh token and the refresh cookie. Idempotent.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Logout successful"
// @Failure 401 {object} map[string]string "Missing or invalid access token"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		h.Logger.Error("failed to logout user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.clearRefreshCookie(w)

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// refreshResponse is the response body for a successful token refresh
type refreshResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

// refreshRequest is the body fallback for clients that cannot send cookies
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /auth/refresh
// @Summary Refresh access token
// @Description Rotate the refresh token and return a new access token. The refresh token is read from the cookie, with a body fallback.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body refreshRequest false "Refresh token request (optional if using cookie)"
// @Success 200 {object} refreshResponse "Tokens refreshed"
// @Failure 401 {object} map[string]string "Missing, invalid or stale refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var refreshToken string

	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	} else {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken == "" {
		h.RespondError(w, http.StatusUnauthorized, "refresh token required")
		return
	}

	accessToken, newRefreshToken, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.Logger.Warn("failed to refresh tokens", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.setRefreshCookie(w, newRefreshToken)

	h.RespondJSON(w, http.StatusOK, refreshResponse{
		Message:     "tokens refreshed successfully",
		AccessToken: accessToken,
	})
}

// setRefreshCookie sets the refresh token as an HTTP-only cookie with a
// lifetime matching the token expiry
func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshExpiry.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearRefreshCookie expires the refresh token cookie
func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
