package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/roosterplan/backend/internal/domain"
)

func (h *Handler) ResolveAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	employeeID, err := strconv.ParseInt(query.Get("employeeID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid employee id")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", query.Get("date"), time.UTC)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid date")
		return
	}

	var window *domain.TimeWindow
	start, end := query.Get("start"), query.Get("end")
	if start != "" || end != "" {
		if start == "" || end == "" {
			h.errorResponse(w, r, http.StatusBadRequest, "start and end must be supplied together")
			return
		}
		window = &domain.TimeWindow{Start: start, End: end}
	}

	result, err := h.availability.Resolve(employeeID, date, window)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", result)
}

func (h *Handler) GetMyPatterns(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	patterns, err := h.repository.GetPatternsByEmployee(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", patterns)
}

// ReplaceMyPatterns swaps the caller's whole weekly pattern set at once.
func (h *Handler) ReplaceMyPatterns(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		Patterns []struct {
			DayOfWeek   int32  `json:"dayOfWeek" validate:"gte=0,lte=6"`
			StartTime   string `json:"startTime" validate:"required"`
			EndTime     string `json:"endTime" validate:"required"`
			IsAvailable bool   `json:"isAvailable"`
		} `json:"patterns" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patterns := make([]domain.AvailabilityPattern, 0, len(req.Patterns))
	for _, p := range req.Patterns {
		patterns = append(patterns, domain.AvailabilityPattern{
			DayOfWeek:   p.DayOfWeek,
			StartTime:   p.StartTime,
			EndTime:     p.EndTime,
			IsAvailable: p.IsAvailable,
		})
	}

	if err := h.repository.ReplacePatterns(myInfo.ID, patterns); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "patterns saved", patterns)
}

func (h *Handler) CreateException(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		Date        string `json:"date" validate:"required"`
		StartTime   string `json:"startTime"`
		EndTime     string `json:"endTime"`
		IsAvailable bool   `json:"isAvailable"`
		Reason      string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid date")
		return
	}

	exception := &domain.AvailabilityException{
		EmployeeID:  myInfo.ID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
		Reason:      req.Reason,
	}

	if err := h.repository.CreateException(exception); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "exception created", exception)
}

// CreateLeaveExceptions blocks out a leave period as one whole-day exception
// per date, in a single transaction. Leave-request approval drives this.
func (h *Handler) CreateLeaveExceptions(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		From   string `json:"from" validate:"required"`
		To     string `json:"to" validate:"required"`
		Reason string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	exceptions, err := h.repository.CreateExceptionsRange(myInfo.ID, from, to, false, req.Reason)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave registered", exceptions)
}

// DeleteLeaveExceptions reverses a leave period, for withdrawal or rejection.
func (h *Handler) DeleteLeaveExceptions(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		From string `json:"from" validate:"required"`
		To   string `json:"to" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repository.DeleteExceptionsRange(myInfo.ID, from, to); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave removed", nil)
}

func parseDateRange(fromParam, toParam string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", fromParam, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "from", Reason: "must be formatted as YYYY-MM-DD"}
	}
	to, err := time.ParseInLocation("2006-01-02", toParam, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "to", Reason: "must be formatted as YYYY-MM-DD"}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "to", Reason: "must not be before from"}
	}
	return from, to, nil
}
