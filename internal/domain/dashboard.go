package domain

import "time"

type DashboardSummary struct {
	EmployeeCount        int64   `json:"employeeCount"`
	ShiftCount           int64   `json:"shiftCount"`
	RotationCount        int64   `json:"rotationCount"`
	TodayAssignmentCount int64   `json:"todayAssignmentCount"`
	PendingExpenseCount  int64   `json:"pendingExpenseCount"`
	ApprovedExpenseCount int64   `json:"approvedExpenseCount"`
	MonthExpenseTotal    float64 `json:"monthExpenseTotal"`
}

type Todo struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"companyID"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"isDone"`
	CreatedAt time.Time `json:"createdAt"`
}

// StickyNote is one free-form note per company, overwritten in place.
type StickyNote struct {
	CompanyID int64     `json:"companyID"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}
