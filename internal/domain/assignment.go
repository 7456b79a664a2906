package domain

import "time"

// EmployeeShiftAssignment is the resolved shift for one employee on one
// calendar date. (employee_id, assigned_date) is the conflict key: at most one
// row may exist per pair, enforced by a unique index at the storage layer.
type EmployeeShiftAssignment struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"companyID"`
	EmployeeID   int64     `json:"employeeID"`
	ShiftID      int64     `json:"shiftID"`
	AssignedDate time.Time `json:"assignedDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AssignmentOutcome describes what a rotation run did to one employee's row.
type AssignmentOutcome string

const (
	OutcomeCreated  AssignmentOutcome = "created"
	OutcomeReplaced AssignmentOutcome = "replaced"
	OutcomeSkipped  AssignmentOutcome = "skipped"
	OutcomeFailed   AssignmentOutcome = "failed"
)
