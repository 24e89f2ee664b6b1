package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/roosterplan/backend/internal/domain"
)

func (h *Handler) CreateSwapRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		ShiftID          int64  `json:"shiftID" validate:"required"`
		SwapType         string `json:"swapType" validate:"required,oneof=takeover swap"`
		TargetEmployeeID *int64 `json:"targetEmployeeID"`
		Reason           string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	request, err := h.swaps.Create(req.ShiftID, myInfo.ID, domain.SwapType(req.SwapType), req.TargetEmployeeID, req.Reason)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap request created", request)
}

func (h *Handler) GetAllSwapRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.repository.GetAllSwapRequests()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", requests)
}

// ActOnSwapRequest applies one of the state machine's transitions, selected
// by an action discriminator in the request body.
func (h *Handler) ActOnSwapRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid swap request id")
		return
	}

	var req struct {
		Action          string `json:"action" validate:"required,oneof=claim approve reject cancel"`
		ResponseMessage string `json:"responseMessage"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var request *domain.SwapRequest
	switch req.Action {
	case "claim":
		request, err = h.swaps.Claim(requestID, myInfo.ID)
	case "approve":
		request, err = h.swaps.Approve(requestID, myInfo, req.ResponseMessage)
	case "reject":
		request, err = h.swaps.Reject(requestID, myInfo, req.ResponseMessage)
	case "cancel":
		request, err = h.swaps.Cancel(requestID, myInfo)
	}
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap request updated", request)
}

// ForceDeleteSwapRequest hard-deletes a request regardless of status. It is
// deliberately a separate endpoint, not an action, because it bypasses the
// state machine.
func (h *Handler) ForceDeleteSwapRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid swap request id")
		return
	}

	if err := h.swaps.ForceDelete(requestID, myInfo); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap request deleted", nil)
}
