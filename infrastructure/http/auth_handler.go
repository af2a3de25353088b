package http

import (
	"encoding/json"
	goerrors "errors"
	"log/slog"
	"net/http"
	"time"

	"chatline/auth"
	"chatline/errors"
	"chatline/services"
)

type AuthHandler struct {
	svc    services.IAuthService
	tokens *auth.TokenManager
	log    *slog.Logger
}

func NewAuthHandler(svc services.IAuthService, tokens *auth.TokenManager, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy to status codes: validation
// failures are the caller's fault (400), everything else is a dependency
// problem (500).
func writeError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case goerrors.Is(err, errors.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case goerrors.Is(err, errors.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		log.Error("handler: internal error", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token services.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    string(token),
		Path:     "/",
		MaxAge:   int(h.tokens.TTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	token, user, err := h.svc.Register(req.Name, req.Email, req.Password)
	if err != nil {
		writeError(h.log, w, err)
		return
	}

	h.setAuthCookie(w, token)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	token, user, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeError(h.log, w, err)
		return
	}

	h.setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// GET /api/auth/check
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Me(CallerID(r.Context()))
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// PUT /api/auth/update-profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	user, err := h.svc.UpdateAvatar(r.Context(), CallerID(r.Context()), req.Image)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
