package domain

import "time"

// AttendanceSettings is a per-company singleton row. A defaults row is created
// on first read; updates are partial patches.
type AttendanceSettings struct {
	ID                          int64     `json:"id"`
	CompanyID                   int64     `json:"companyID"`
	AllowShiftChangeRequest     bool      `json:"allowShiftChangeRequest"`
	SaveClockInLocation         bool      `json:"saveClockInLocation"`
	AllowEmployeeSelfClockInOut bool      `json:"allowEmployeeSelfClockInOut"`
	AutoClockInFirstLogin       bool      `json:"autoClockInFirstLogin"`
	ClockInLocationRadiusCheck  bool      `json:"clockInLocationRadiusCheck"`
	ClockInLocationRadiusValue  int32     `json:"clockInLocationRadiusValue"`
	AllowClockInOutsideShift    bool      `json:"allowClockInOutsideShift"`
	ClockInIPCheck              bool      `json:"clockInIPCheck"`
	ClockInIPAddresses          []string  `json:"clockInIPAddresses"`
	SendMonthlyReportEmail      bool      `json:"sendMonthlyReportEmail"`
	WeekStartsFrom              string    `json:"weekStartsFrom"`
	AttendanceReminderStatus    bool      `json:"attendanceReminderStatus"`
	CreatedAt                   time.Time `json:"createdAt"`
}

// DefaultAttendanceSettings mirrors the defaults applied when a company reads
// its settings for the first time.
func DefaultAttendanceSettings(companyID int64) *AttendanceSettings {
	return &AttendanceSettings{
		CompanyID:                   companyID,
		AllowEmployeeSelfClockInOut: true,
		ClockInIPAddresses:          []string{},
		WeekStartsFrom:              "Monday",
	}
}
