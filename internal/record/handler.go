// AngelaMos | 2026
// handler.go

package record

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

const uploadField = "datafile"

type Handler struct {
	service        *Service
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes mounts the record endpoints. uploadMiddleware wraps only
// the upload route.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	uploadMiddleware ...func(http.Handler) http.Handler,
) {
	r.With(uploadMiddleware...).Post("/data", h.Upload)
	r.Get("/data", h.List)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			core.JSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error": "Uploaded file is too large.",
			})
			return
		}
		core.BadRequest(w, "No file uploaded. Expected key: 'datafile'.")
		return
	}
	defer file.Close() //nolint:errcheck // multipart part

	data, err := io.ReadAll(file)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	created, err := h.service.Ingest(r.Context(), data)
	if err != nil {
		h.writeIngestError(w, r, err)
		return
	}

	core.Created(w, created)
}

func (h *Handler) writeIngestError(w http.ResponseWriter, r *http.Request, err error) {
	var dateErr *DateFormatError
	var batchErr *BatchError

	switch {
	case errors.Is(err, ErrInvalidJSON):
		core.BadRequest(w, "Invalid JSON format in uploaded file.")
	case errors.Is(err, ErrNotList):
		core.BadRequest(w, "Expected a list of records in JSON file.")
	case errors.As(err, &dateErr):
		core.JSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid date format. Expected: 'Month, DD YYYY HH:MM:SS'",
			"field": dateErr.Field,
		})
	case errors.As(err, &batchErr):
		core.JSON(w, http.StatusBadRequest, batchErr.Errors)
	default:
		slog.ErrorContext(r.Context(), "ingest failed", "error", err)
		core.Write(w, core.Failure("Something went wrong!", err))
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, total, err := h.service.List(r.Context(), r.URL.Query())
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) || errors.Is(err, core.ErrInvalidPage) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Write(w, core.MessageWithTotal(
		http.StatusOK,
		"Successfully fetched data!",
		records,
		total,
	))
}
