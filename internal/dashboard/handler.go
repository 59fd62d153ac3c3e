// AngelaMos | 2026
// handler.go

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/data/dashboard", h.Dispatch)
}

// Dispatch runs the report named by the action query parameter.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
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

	action, ok := ParseAction(name)
	if !ok {
		core.Write(w, core.WrongOption())
		return
	}

	core.Write(w, h.service.Run(r.Context(), action, query))
}
