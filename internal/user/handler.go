// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/users", h.Query)
		r.Post("/users", h.Mutate)
		r.Patch("/users", h.Mutate)
		r.Delete("/users", h.Mutate)
	})
}

// Query serves the read action, taking its parameters from the URL.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	raw, ok := query["action"]
	if !ok {
		core.Write(w, core.MissingAction())
		return
	}

	name := ""
	if len(raw) > 0 {
		name = raw[len(raw)-1]
	}

	action, ok := ParseAction(http.MethodGet, name)
	if !ok {
		core.Write(w, core.WrongOption())
		return
	}

	core.Write(w, h.run(r.Context(), action, query, ActionRequest{}))
}

// Mutate serves the write actions, taking their parameters from a JSON
// body.
func (h *Handler) Mutate(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		core.Write(w, core.MessageOnly(http.StatusBadRequest, "Invalid request body."))
		return
	}

	if req.Action == nil {
		core.Write(w, core.MissingAction())
		return
	}

	action, ok := ParseAction(r.Method, *req.Action)
	if !ok {
		core.Write(w, core.WrongOption())
		return
	}

	core.Write(w, h.run(r.Context(), action, nil, req))
}

func (h *Handler) run(
	ctx context.Context,
	a Action,
	query url.Values,
	req ActionRequest,
) core.Result {
	switch a {
	case GetUser:
		return h.getUser(ctx, query)
	case PostUser:
		return h.postUser(ctx, req)
	case PatchUser:
		return h.patchUser(ctx, req)
	case DelUser:
		return h.delUser(ctx, req)
	}
	return core.WrongOption()
}

func (h *Handler) getUser(ctx context.Context, query url.Values) core.Result {
	users, total, err := h.service.ListUsers(ctx, query)
	if err != nil {
		if !errors.Is(err, core.ErrInvalidInput) && !errors.Is(err, core.ErrInvalidPage) {
			slog.ErrorContext(ctx, "list users failed", "error", err)
		}
		return notGettingData()
	}

	data := ToUserResponseList(users)
	if query.Get("id") == "" {
		return core.MessageWithTotal(http.StatusOK, "successfully getting User!", data, total)
	}

	if len(data) == 0 {
		return notGettingData()
	}

	return core.MessageWithTotal(http.StatusOK, "successfully getting User!", data[0], total)
}

func notGettingData() core.Result {
	return core.MessageOnly(http.StatusNotFound, "not getting data!")
}

func (h *Handler) postUser(ctx context.Context, req ActionRequest) core.Result {
	user, err := h.service.CreateUser(ctx, req.toCreate())
	if err != nil {
		return writeFailure(ctx, err)
	}

	return core.Message(http.StatusCreated, "User is Created!", ToUserResponse(user))
}

func (h *Handler) patchUser(ctx context.Context, req ActionRequest) core.Result {
	id, err := parseID(req.ID)
	if err != nil {
		return core.MessageOnly(
			http.StatusNotFound,
			fmt.Sprintf("users id %s Not Found!", req.ID),
		)
	}

	user, err := h.service.UpdateUser(ctx, id, req.toUpdate())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.MessageOnly(
				http.StatusNotFound,
				fmt.Sprintf("users id %d Not Found!", id),
			)
		}
		return writeFailure(ctx, err)
	}

	return core.Message(http.StatusOK, "users is Updated!", ToUserResponse(user))
}

func (h *Handler) delUser(ctx context.Context, req ActionRequest) core.Result {
	id, err := parseID(req.ID)
	if err != nil {
		return core.MessageOnly(http.StatusNotFound, "User id Not Found!")
	}

	if err := h.service.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.MessageOnly(http.StatusNotFound, "User id Not Found!")
		}
		return writeFailure(ctx, err)
	}

	return core.MessageOnly(http.StatusOK, "User deleted!")
}

func parseID(raw json.Number) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("id required: %w", core.ErrInvalidInput)
	}
	id, err := strconv.ParseInt(raw.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q: %w", raw, core.ErrInvalidInput)
	}
	return id, nil
}

func writeFailure(ctx context.Context, err error) core.Result {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return core.MessageOnly(http.StatusBadRequest, "Email already exists.")
	case errors.Is(err, ErrPhoneTaken):
		return core.MessageOnly(http.StatusBadRequest, "Phone number already exists.")
	case errors.Is(err, core.ErrDuplicateKey):
		return core.MessageOnly(http.StatusBadRequest, "User already exists.")
	case errors.Is(err, core.ErrInvalidInput):
		return core.Result{
			Status: http.StatusBadRequest,
			Body:   core.ValidationFieldErrors(err),
		}
	}

	slog.ErrorContext(ctx, "user action failed", "error", err)
	return core.Failure("Something went wrong!", err)
}
