package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/roosterplan/backend/internal/domain"
)

func (h *Handler) GetAllAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.repository.GetAllAssignments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", assignments)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name" validate:"required"`
		Address  string  `json:"address"`
		LabelIDs []int64 `json:"labelIDs"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment := &domain.Assignment{
		Name:    req.Name,
		Address: req.Address,
	}

	if err := h.repository.CreateAssignment(assignment, req.LabelIDs); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "assignments_name_key":
				h.errorResponse(w, r, http.StatusConflict, "an assignment with this name already exists")
				return
			case "assignment_object_labels_object_label_id_fkey":
				h.errorResponse(w, r, http.StatusBadRequest, "unknown label id")
				return
			}
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment created", assignment)
}

func (h *Handler) GetAllLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := h.repository.GetAllLabels()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", labels)
}

func (h *Handler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	label := &domain.ObjectLabel{Name: req.Name}

	if err := h.repository.CreateLabel(label); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "object_labels_name_key" {
			h.errorResponse(w, r, http.StatusConflict, "a label with this name already exists")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "label created", label)
}
