package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/brokerx/engine/internal/ledger"
	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/services"
	"github.com/brokerx/engine/internal/validators"
	"github.com/brokerx/engine/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService *services.AuthService
	validator   *validators.Validator
}

func NewAuthHandler(authService *services.AuthService, validator *validators.Validator) *AuthHandler {
	return &AuthHandler{authService: authService, validator: validator}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatErrors(err))
		return
	}

	user, err := h.authService.Register(ctx, req.Email, req.Password, req.GivenName, req.FamilyName)
	if err != nil {
		switch err {
		case ledger.ErrUserAlreadyExists:
			response.Conflict(w, "An account with this email already exists", nil)
		case ledger.ErrWeakPassword:
			response.BadRequest(w, "Password does not meet minimum requirements", nil)
		default:
			log.Printf("register %s: %v", req.Email, err)
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	response.Success(w, http.StatusCreated, user)
}

// VerifyEmail handles POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatErrors(err))
		return
	}

	if err := h.authService.VerifyEmail(ctx, req.Email, req.Code); err != nil {
		switch err {
		case services.ErrInvalidCode:
			response.BadRequest(w, "Invalid verification code", nil)
		case services.ErrCodeExpired:
			response.BadRequest(w, "Verification code has expired", nil)
		default:
			log.Printf("verify-email %s: %v", req.Email, err)
			response.InternalServerError(w, "Failed to verify email")
		}
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{"message": "Email verified successfully"})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatErrors(err))
		return
	}

	userAgent := r.Header.Get("User-Agent")
	ipAddress := stripPort(r.RemoteAddr)

	loginResponse, err := h.authService.Login(ctx, req.Email, req.Password, userAgent, ipAddress)
	if err != nil {
		switch err {
		case ledger.ErrUserNotFound, ledger.ErrInvalidPassword:
			response.Unauthorized(w, "Invalid email or password")
		case ledger.ErrNotVerified:
			response.Forbidden(w, "Account email is not verified")
		default:
			log.Printf("login %s: %v", req.Email, err)
			response.InternalServerError(w, "Failed to log in")
		}
		return
	}

	response.Success(w, http.StatusOK, loginResponse)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := extractTokenFromHeader(r)
	if token == "" {
		response.BadRequest(w, "Missing authorization token", nil)
		return
	}

	if err := h.authService.RevokeSession(ctx, token); err != nil {
		log.Printf("logout: %v", err)
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{"message": "Logged out successfully"})
}

// GetSessions handles GET /api/v1/auth/sessions
func (h *AuthHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		response.BadRequest(w, "Invalid user ID", nil)
		return
	}

	currentToken := extractTokenFromHeader(r)
	var currentSessionID string
	if currentToken != "" {
		_, currentSession, err := h.authService.ValidateToken(ctx, currentToken)
		if err == nil && currentSession != nil {
			currentSessionID = currentSession.ID.String()
		}
	}

	sessions, err := h.authService.GetActiveSessions(ctx, userUUID)
	if err != nil {
		log.Printf("get sessions for %s: %v", userID, err)
		response.InternalServerError(w, "Failed to retrieve sessions")
		return
	}

	sessionInfos := make([]models.SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		sessionInfos = append(sessionInfos, *session.ToSessionInfo(session.ID.String() == currentSessionID))
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"sessions": sessionInfos,
		"total":    len(sessionInfos),
	})
}

// RevokeSession handles DELETE /api/v1/auth/sessions/{id}
func (h *AuthHandler) RevokeSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID", nil)
		return
	}

	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		response.Unauthorized(w, "User not authenticated")
		return
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		response.BadRequest(w, "Invalid user ID", nil)
		return
	}

	sessions, err := h.authService.GetActiveSessions(ctx, userUUID)
	if err != nil {
		log.Printf("get sessions: %v", err)
		response.InternalServerError(w, "Failed to revoke session")
		return
	}
	found := false
	for _, session := range sessions {
		if session.ID == sessionID {
			found = true
			break
		}
	}
	if !found {
		response.NotFound(w, "Session not found or already revoked")
		return
	}

	if err := h.authService.RevokeSessionByID(ctx, sessionID); err != nil {
		log.Printf("revoke session %s: %v", sessionID, err)
		response.InternalServerError(w, "Failed to revoke session")
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{"message": "Session revoked successfully"})
}

func extractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

func stripPort(remoteAddr string) string {
	for i := len(remoteAddr) - 1; i >= 0; i-- {
		if remoteAddr[i] == ':' {
			return remoteAddr[:i]
		}
	}
	return remoteAddr
}
