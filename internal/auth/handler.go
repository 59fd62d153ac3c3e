// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
	"github.com/carterperez-dev/insight-dashboard/internal/middleware"
)

var registerMessages = map[error]string{
	ErrMissingFields:    "Please provide all required fields.",
	ErrPasswordMismatch: "Passwords do not match.",
	ErrEmailExists:      "Email already exists.",
	ErrPhoneExists:      "Phone number already exists.",
}

var loginMessages = map[error]string{
	ErrMissingCredentials: `Must include "phone" and "password".`,
	ErrInvalidCredentials: "Invalid phone number or password.",
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Post("/users/register", h.Register)
	r.Post("/users/login", h.Login)
	r.Post("/users/token/refresh", h.Refresh)

	r.With(authenticator).Post("/users/logout", h.Logout)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		for sentinel, msg := range registerMessages {
			if errors.Is(err, sentinel) {
				core.BadRequest(w, msg)
				return
			}
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, core.FormatValidationError(err))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	tokens, err := h.service.Login(r.Context(), req)
	if err != nil {
		for sentinel, msg := range loginMessages {
			if errors.Is(err, sentinel) {
				errs := core.FieldErrors{}
				errs.Add(core.NonFieldErrors, msg)
				core.FieldError(w, errs)
				return
			}
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, tokens)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		writeTokenError(w, err)
		return
	}

	core.OK(w, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.service.Logout(r.Context(), userID, req.Refresh); err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cannot revoke another user's token")
			return
		}
		writeTokenError(w, err)
		return
	}

	core.NoContent(w)
}

func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		errs := core.FieldErrors{}
		errs.Add("refresh", "This field is required.")
		core.FieldError(w, errs)
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		core.JSONError(w, core.TokenRevokedError())
	case errors.Is(err, core.ErrTokenInvalid):
		core.JSONError(w, core.TokenInvalidError())
	default:
		core.InternalServerError(w, err)
	}
}
