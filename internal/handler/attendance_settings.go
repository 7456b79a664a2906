package handler

import (
	"net/http"
)

func (h *Handler) GetAttendanceSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repository.GetAttendanceSettings(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "attendance settings fetched", settings)
}

func (h *Handler) UpdateAttendanceSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AllowShiftChangeRequest     *bool     `json:"allowShiftChangeRequest"`
		SaveClockInLocation         *bool     `json:"saveClockInLocation"`
		AllowEmployeeSelfClockInOut *bool     `json:"allowEmployeeSelfClockInOut"`
		AutoClockInFirstLogin       *bool     `json:"autoClockInFirstLogin"`
		ClockInLocationRadiusCheck  *bool     `json:"clockInLocationRadiusCheck"`
		ClockInLocationRadiusValue  *int32    `json:"clockInLocationRadiusValue"`
		AllowClockInOutsideShift    *bool     `json:"allowClockInOutsideShift"`
		ClockInIPCheck              *bool     `json:"clockInIPCheck"`
		ClockInIPAddresses          *[]string `json:"clockInIPAddresses"`
		SendMonthlyReportEmail      *bool     `json:"sendMonthlyReportEmail"`
		WeekStartsFrom              *string   `json:"weekStartsFrom" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
		AttendanceReminderStatus    *bool     `json:"attendanceReminderStatus"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// patch onto the stored row so omitted fields keep their values; the read
	// also creates the defaults row on first access
	settings, err := h.repository.GetAttendanceSettings(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.AllowShiftChangeRequest != nil {
		settings.AllowShiftChangeRequest = *req.AllowShiftChangeRequest
	}
	if req.SaveClockInLocation != nil {
		settings.SaveClockInLocation = *req.SaveClockInLocation
	}
	if req.AllowEmployeeSelfClockInOut != nil {
		settings.AllowEmployeeSelfClockInOut = *req.AllowEmployeeSelfClockInOut
	}
	if req.AutoClockInFirstLogin != nil {
		settings.AutoClockInFirstLogin = *req.AutoClockInFirstLogin
	}
	if req.ClockInLocationRadiusCheck != nil {
		settings.ClockInLocationRadiusCheck = *req.ClockInLocationRadiusCheck
	}
	if req.ClockInLocationRadiusValue != nil {
		settings.ClockInLocationRadiusValue = *req.ClockInLocationRadiusValue
	}
	if req.AllowClockInOutsideShift != nil {
		settings.AllowClockInOutsideShift = *req.AllowClockInOutsideShift
	}
	if req.ClockInIPCheck != nil {
		settings.ClockInIPCheck = *req.ClockInIPCheck
	}
	if req.ClockInIPAddresses != nil {
		settings.ClockInIPAddresses = *req.ClockInIPAddresses
	}
	if req.SendMonthlyReportEmail != nil {
		settings.SendMonthlyReportEmail = *req.SendMonthlyReportEmail
	}
	if req.WeekStartsFrom != nil {
		settings.WeekStartsFrom = *req.WeekStartsFrom
	}
	if req.AttendanceReminderStatus != nil {
		settings.AttendanceReminderStatus = *req.AttendanceReminderStatus
	}

	if err := h.repository.UpdateAttendanceSettings(settings); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "update", "attendance_settings", settings.ID, settings)
	h.successResponse(w, r, "attendance settings updated", settings)
}
