package api

import (
	"net/http"

	"github.com/example/cashew-corner/internal/api/middleware"
	"github.com/example/cashew-corner/internal/auth"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/validation"
	"github.com/sirupsen/logrus"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	store      *Store
	jwtService *auth.JWTService
	validate   *validation.Validator
	log        *logrus.Entry
}

func NewAuthHandlers(store *Store, jwtService *auth.JWTService, logger logrus.FieldLogger) *AuthHandlers {
	return &AuthHandlers{
		store:      store,
		jwtService: jwtService,
		validate:   validation.New(),
		log:        logging.Component(logger, "Auth"),
	}
}

// Login checks credentials and issues a bearer token pair
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeValid(w, r, h.validate, &req) {
		return
	}

	u, exists := h.store.UserByEmail(req.Email)
	if !exists || !auth.CheckPassword(req.Password, u.PasswordHash) {
		respondJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if !u.IsActive {
		respondJSONError(w, "User account is inactive", http.StatusUnauthorized)
		return
	}

	accessToken, _, err := h.jwtService.GenerateAccessToken(u.UserID, u.Email, u.RoleName)
	if err != nil {
		logging.LogError(h.log, "api", "Login", "sign access token", u.Email, err)
		respondJSONError(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}
	refreshToken, _, err := h.jwtService.GenerateRefreshToken(u.UserID)
	if err != nil {
		logging.LogError(h.log, "api", "Login", "sign refresh token", u.Email, err)
		respondJSONError(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	h.store.TouchLogin(u.Email)
	h.log.WithField("user_id", u.UserID).Info("login")

	user := u.AuthUser
	respondJSON(w, http.StatusOK, model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.jwtService.AccessTokenExpiry().Seconds()),
		User:         &user,
		Message:      "Login successful",
	})
}

// Logout has no server-side session to drop; tokens simply expire
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		h.log.WithField("user_id", claims.UserID).Info("logout")
	}
	respondJSON(w, http.StatusOK, model.LogoutResponse{Message: "Logout successful"})
}
