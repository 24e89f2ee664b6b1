package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/roosterplan/backend/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

type Response struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Data     any    `json:"data"`
	Warnings any    `json:"warnings,omitempty"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.errorResponse(w, r, http.StatusBadRequest, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
		Data:    nil,
	})
}

// domainError maps the core's typed errors onto HTTP statuses. Anything
// untyped is a storage or programming fault and stays a 500.
func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr    *domain.ValidationError
		notFoundErr      *domain.NotFoundError
		authorizationErr *domain.AuthorizationError
		eligibilityErr   *domain.EligibilityError
		conflictErr      *domain.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		h.errorResponse(w, r, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		h.errorResponse(w, r, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &authorizationErr):
		h.errorResponse(w, r, http.StatusForbidden, authorizationErr.Error())
	case errors.As(err, &eligibilityErr):
		h.errorResponse(w, r, http.StatusUnprocessableEntity, eligibilityErr.Error())
	case errors.As(err, &conflictErr):
		h.errorResponse(w, r, http.StatusConflict, conflictErr.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// successWithWarnings carries the advisory compliance warnings next to the
// persisted result.
func (h *Handler) successWithWarnings(w http.ResponseWriter, r *http.Request, msg string, data any, warnings []domain.ComplianceWarning) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success:  true,
		Message:  msg,
		Data:     data,
		Warnings: warnings,
	})
}
