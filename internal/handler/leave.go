package handler

import (
	"net/http"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

func (h *Handler) GetAllLeaveTypes(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	leaveTypes, err := h.repository.ListLeaveTypes(h.companyID(r), includeArchived)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave types fetched", leaveTypes)
}

func (h *Handler) GetLeaveType(w http.ResponseWriter, r *http.Request) {
	leaveType := r.Context().Value(LeaveTypeCtx).(*domain.LeaveType)
	h.successResponse(w, r, "leave type fetched", leaveType)
}

func (h *Handler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Code        string `json:"code" validate:"required"`
		IsPaid      bool   `json:"isPaid"`
		AllowedDays int32  `json:"allowedDays" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	leaveType := &domain.LeaveType{
		CompanyID:   h.companyID(r),
		Name:        req.Name,
		Code:        req.Code,
		IsPaid:      req.IsPaid,
		AllowedDays: req.AllowedDays,
	}

	if err := h.repository.CreateLeaveType(leaveType); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "create", "leave_type", leaveType.ID, leaveType)
	h.successResponse(w, r, "leave type created", leaveType)
}

func (h *Handler) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	leaveType := r.Context().Value(LeaveTypeCtx).(*domain.LeaveType)

	var req struct {
		Name        *string `json:"name"`
		Code        *string `json:"code"`
		IsPaid      *bool   `json:"isPaid"`
		AllowedDays *int32  `json:"allowedDays" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		leaveType.Name = *req.Name
	}
	if req.Code != nil {
		leaveType.Code = *req.Code
	}
	if req.IsPaid != nil {
		leaveType.IsPaid = *req.IsPaid
	}
	if req.AllowedDays != nil {
		leaveType.AllowedDays = *req.AllowedDays
	}

	if err := h.repository.UpdateLeaveType(leaveType); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "update", "leave_type", leaveType.ID, leaveType)
	h.successResponse(w, r, "leave type updated", leaveType)
}

func (h *Handler) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	leaveType := r.Context().Value(LeaveTypeCtx).(*domain.LeaveType)

	if err := h.repository.DeleteLeaveType(leaveType.CompanyID, leaveType.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "delete", "leave_type", leaveType.ID, nil)
	h.successResponse(w, r, "leave type deleted", nil)
}

func (h *Handler) ArchiveLeaveType(w http.ResponseWriter, r *http.Request) {
	leaveType := r.Context().Value(LeaveTypeCtx).(*domain.LeaveType)

	if leaveType.IsArchived {
		h.errorResponse(w, r, "leave type is already archived")
		return
	}

	leaveType.IsArchived = true
	if err := h.repository.UpdateLeaveType(leaveType); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "archive", "leave_type", leaveType.ID, nil)
	h.successResponse(w, r, "leave type archived", leaveType)
}

func (h *Handler) RestoreLeaveType(w http.ResponseWriter, r *http.Request) {
	leaveType := r.Context().Value(LeaveTypeCtx).(*domain.LeaveType)

	if !leaveType.IsArchived {
		h.errorResponse(w, r, "leave type is not archived")
		return
	}

	leaveType.IsArchived = false
	if err := h.repository.UpdateLeaveType(leaveType); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "restore", "leave_type", leaveType.ID, nil)
	h.successResponse(w, r, "leave type restored", leaveType)
}

func (h *Handler) GetLeaveGeneralSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repository.GetLeaveGeneralSettings(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave general settings fetched", settings)
}

func (h *Handler) UpdateLeaveGeneralSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AllowHalfDay        *bool  `json:"allowHalfDay"`
		RequireApproval     *bool  `json:"requireApproval"`
		MaxCarryForwardDays *int32 `json:"maxCarryForwardDays" validate:"omitempty,min=0"`
		YearStartMonth      *int32 `json:"yearStartMonth" validate:"omitempty,min=1,max=12"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings, err := h.repository.GetLeaveGeneralSettings(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.AllowHalfDay != nil {
		settings.AllowHalfDay = *req.AllowHalfDay
	}
	if req.RequireApproval != nil {
		settings.RequireApproval = *req.RequireApproval
	}
	if req.MaxCarryForwardDays != nil {
		settings.MaxCarryForwardDays = *req.MaxCarryForwardDays
	}
	if req.YearStartMonth != nil {
		settings.YearStartMonth = *req.YearStartMonth
	}

	if err := h.repository.UpdateLeaveGeneralSettings(settings); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "update", "leave_general_settings", settings.ID, settings)
	h.successResponse(w, r, "leave general settings updated", settings)
}
