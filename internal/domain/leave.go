package domain

import "time"

type LeaveType struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"companyID"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	IsPaid      bool      `json:"isPaid"`
	AllowedDays int32     `json:"allowedDays"`
	IsArchived  bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// LeaveGeneralSettings is a per-company singleton, created with defaults on
// first read. Balance accrual is handled elsewhere; these are definitions only.
type LeaveGeneralSettings struct {
	ID                  int64     `json:"id"`
	CompanyID           int64     `json:"companyID"`
	AllowHalfDay        bool      `json:"allowHalfDay"`
	RequireApproval     bool      `json:"requireApproval"`
	MaxCarryForwardDays int32     `json:"maxCarryForwardDays"`
	YearStartMonth      int32     `json:"yearStartMonth"`
	CreatedAt           time.Time `json:"createdAt"`
}

func DefaultLeaveGeneralSettings(companyID int64) *LeaveGeneralSettings {
	return &LeaveGeneralSettings{
		CompanyID:       companyID,
		RequireApproval: true,
		YearStartMonth:  1,
	}
}
