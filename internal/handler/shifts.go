package handler

import (
	"net/http"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
	"github.com/workhive-dev/hr-admin/backend/internal/utils"
)

func (h *Handler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.repository.ListShifts(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, "shift fetched", shift)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftName   string   `json:"shiftName" validate:"required"`
		StartTime   string   `json:"startTime" validate:"required"`
		EndTime     string   `json:"endTime" validate:"required"`
		WorkingDays []string `json:"workingDays"`
		IsDefault   bool     `json:"isDefault"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	workingDays, err := utils.NormalizeWorkingDays(req.WorkingDays)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	shift := &domain.Shift{
		CompanyID:   h.companyID(r),
		ShiftName:   req.ShiftName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		WorkingDays: workingDays,
		IsDefault:   req.IsDefault,
	}

	if err := utils.ValidateShiftTimes(shift); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "create", "shift", shift.ID, shift)
	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		ShiftName   *string   `json:"shiftName"`
		StartTime   *string   `json:"startTime"`
		EndTime     *string   `json:"endTime"`
		WorkingDays *[]string `json:"workingDays"`
		IsDefault   *bool     `json:"isDefault"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.ShiftName != nil {
		shift.ShiftName = *req.ShiftName
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.WorkingDays != nil {
		workingDays, err := utils.NormalizeWorkingDays(*req.WorkingDays)
		if err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}
		shift.WorkingDays = workingDays
	}
	if req.IsDefault != nil {
		// the default flag can only be granted here; revoking it would leave
		// the company without a default, which set-default on another shift
		// handles instead
		if !*req.IsDefault && shift.IsDefault {
			h.errorResponse(w, r, "cannot unset the default shift, set another shift as default instead")
			return
		}
		shift.IsDefault = *req.IsDefault
	}

	if err := utils.ValidateShiftTimes(shift); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "update", "shift", shift.ID, shift)
	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.CompanyID, shift.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "delete", "shift", shift.ID, nil)
	h.successResponse(w, r, "shift deleted", nil)
}

func (h *Handler) SetDefaultShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.SetDefaultShift(shift.CompanyID, shift.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "set-default", "shift", shift.ID, nil)
	h.successResponse(w, r, "default shift updated", nil)
}
