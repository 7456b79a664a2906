package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
	"github.com/workhive-dev/hr-admin/backend/internal/utils"
)

func (h *Handler) GetAllRotations(w http.ResponseWriter, r *http.Request) {
	rotations, err := h.repository.ListRotations(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift rotations fetched", rotations)
}

func (h *Handler) CreateRotation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RotationName         string  `json:"rotationName" validate:"required"`
		RotationFrequency    string  `json:"rotationFrequency" validate:"required,oneof=Daily Weekly Monthly"`
		ReplaceExistingShift bool    `json:"replaceExistingShift"`
		ShiftsInSequence     []int64 `json:"shiftsInSequence"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// an empty sequence is allowed here and rejected at run time; a non-empty
	// one must reference existing shifts of this company
	if req.ShiftsInSequence == nil {
		req.ShiftsInSequence = []int64{}
	}
	if len(req.ShiftsInSequence) > 0 {
		knownIDs, err := h.repository.ListShiftIDs(h.companyID(r))
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if missing := utils.MissingShiftIDs(req.ShiftsInSequence, knownIDs); len(missing) > 0 {
			h.errorResponse(w, r, fmt.Sprintf("rotation references unknown shifts: %v", missing))
			return
		}
	}

	rotation := &domain.ShiftRotation{
		CompanyID:            h.companyID(r),
		RotationName:         req.RotationName,
		RotationFrequency:    req.RotationFrequency,
		ReplaceExistingShift: req.ReplaceExistingShift,
		ShiftsInSequence:     req.ShiftsInSequence,
	}

	if err := h.repository.CreateRotation(rotation); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "create", "shift_rotation", rotation.ID, rotation)
	h.successResponse(w, r, "shift rotation created", rotation)
}

func (h *Handler) DeleteRotation(w http.ResponseWriter, r *http.Request) {
	rotation := r.Context().Value(RotationCtx).(*domain.ShiftRotation)

	if err := h.repository.DeleteRotation(rotation.CompanyID, rotation.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "delete", "shift_rotation", rotation.ID, nil)
	h.successResponse(w, r, "shift rotation deleted", nil)
}

func (h *Handler) RunRotation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RotationID  int64   `json:"rotationID" validate:"required"`
		EmployeeIDs []int64 `json:"employeeIDs" validate:"required,min=1"`
		StartDate   string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rotation, err := h.repository.GetRotation(h.companyID(r), req.RotationID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	// the engine always takes an explicit date; an omitted startDate means
	// today in UTC
	var date time.Time
	if req.StartDate != "" {
		date, err = time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			h.errorResponse(w, r, "invalid start date")
			return
		}
	} else {
		now := time.Now().UTC()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	report, err := h.engine.Run(rotation, req.EmployeeIDs, date)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "run", "shift_rotation", rotation.ID, report)
	h.successResponse(w, r, fmt.Sprintf("shift rotation applied to %d employees", report.AssignmentsCreated), report)
}
