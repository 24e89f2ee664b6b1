package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/roosterplan/backend/internal/domain"
	"github.com/roosterplan/backend/internal/scheduling"
)

type shiftRequest struct {
	EmployeeID   *int64 `json:"employeeID"`
	AssignmentID *int64 `json:"assignmentID"`
	Date         string `json:"date" validate:"required"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	BreakMinutes int32  `json:"breakMinutes" validate:"gte=0"`
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, warnings, err := h.shifts.Create(scheduling.ShiftInput{
		EmployeeID:   req.EmployeeID,
		AssignmentID: req.AssignmentID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successWithWarnings(w, r, "shift created", shift, warnings)
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	from, err := time.ParseInLocation("2006-01-02", fromParam, time.UTC)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toParam, time.UTC)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid to date")
		return
	}

	shifts, err := h.repository.ListShiftsBetween(from, to.AddDate(0, 0, 1))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", shifts)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid shift id")
		return
	}

	var req shiftRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, warnings, err := h.shifts.Update(shiftID, scheduling.ShiftInput{
		EmployeeID:   req.EmployeeID,
		AssignmentID: req.AssignmentID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successWithWarnings(w, r, "shift updated", shift, warnings)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shiftID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid shift id")
		return
	}

	if err := h.shifts.Delete(shiftID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}

func (h *Handler) ApproveShiftOverride(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	shiftID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid shift id")
		return
	}

	var req struct {
		Note string `json:"note" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.shifts.ApproveOverride(shiftID, req.Note, myInfo)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "override approved", shift)
}
