// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Result is the outcome of one dispatched action: the status code and the
// body to encode. Actions return it instead of writing to the response.
type Result struct {
	Status int
	Body   any
}

// Envelope is the {"message", "data", "total_count"} body shared by the
// action-keyed endpoints.
type Envelope struct {
	Message    string `json:"message"`
	Data       any    `json:"data"`
	TotalCount *int   `json:"total_count,omitempty"`
}

func Message(status int, message string, data any) Result {
	return Result{Status: status, Body: Envelope{Message: message, Data: data}}
}

func MessageWithTotal(
	status int,
	message string,
	data any,
	total int,
) Result {
	return Result{
		Status: status,
		Body:   Envelope{Message: message, Data: data, TotalCount: &total},
	}
}

func MessageOnly(status int, message string) Result {
	return Result{Status: status, Body: map[string]string{"message": message}}
}

// MissingAction is the reply when an action-keyed request names no action.
func MissingAction() Result {
	return Message(http.StatusBadRequest, "Action is not in dict", nil)
}

// WrongOption is the reply when the named action does not exist.
func WrongOption() Result {
	return Message(http.StatusBadRequest, "Choose Wrong Option !", nil)
}

func Failure(message string, err error) Result {
	return Result{
		Status: http.StatusInternalServerError,
		Body: map[string]string{
			"message":   message,
			"error_msg": err.Error(),
		},
	}
}

func Write(w http.ResponseWriter, res Result) {
	if res.Status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	JSON(w, res.Status, res.Body)
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

func FieldError(w http.ResponseWriter, errs FieldErrors) {
	JSON(w, http.StatusBadRequest, errs)
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	Write(w, Failure("Something went wrong!", err))
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		InternalServerError(w, err)
		return
	}

	JSON(w, appErr.StatusCode, map[string]string{
		"message": appErr.Message,
		"code":    appErr.Code,
	})
}
