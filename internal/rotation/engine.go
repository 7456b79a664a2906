// Package rotation implements the rotation execution engine: deterministic
// round-robin assignment of a rotation's shift sequence over an ordered
// employee list, reconciled against the stored assignments for one date.
package rotation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

// Store is the slice of the repository the engine needs. The engine never
// reads ambient state; the run date is always supplied by the caller.
type Store interface {
	ListShiftIDs(companyID int64) ([]int64, error)
	ReconcileAssignment(companyID int64, employeeID int64, shiftID int64, date time.Time, replace bool) (domain.AssignmentOutcome, error)
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Entry is one planned assignment: employee i gets sequence[i mod len].
type Entry struct {
	EmployeeID int64
	ShiftID    int64
}

type EmployeeResult struct {
	EmployeeID int64                    `json:"employeeID"`
	ShiftID    int64                    `json:"shiftID"`
	Outcome    domain.AssignmentOutcome `json:"outcome"`
}

// RunReport aggregates one run. AssignmentsCreated counts every employee
// processed in the loop, whether their row was inserted, replaced or skipped;
// Results carries the per-employee breakdown.
type RunReport struct {
	AssignmentsCreated int              `json:"assignmentsCreated"`
	AssignedDate       time.Time        `json:"assignedDate"`
	Results            []EmployeeResult `json:"results"`
}

// BuildPlan computes the round-robin assignment plan. It is a pure function
// of its inputs: the same sequence and employee order always yield the same
// plan, regardless of date or prior state.
func BuildPlan(sequence []int64, employeeIDs []int64) ([]Entry, error) {
	if len(employeeIDs) == 0 {
		return nil, fmt.Errorf("employee list is empty: %w", domain.ErrInvalidInput)
	}
	if len(sequence) == 0 {
		return nil, fmt.Errorf("rotation has no shifts defined: %w", domain.ErrInvalidInput)
	}

	entries := make([]Entry, 0, len(employeeIDs))
	for i, employeeID := range employeeIDs {
		entries = append(entries, Entry{
			EmployeeID: employeeID,
			ShiftID:    sequence[i%len(sequence)],
		})
	}

	return entries, nil
}

// Run executes the rotation against the employee list for a single date.
// Outcomes are isolated per employee: a storage failure on one row marks that
// employee failed and the loop continues.
func (e *Engine) Run(rotation *domain.ShiftRotation, employeeIDs []int64, date time.Time) (*RunReport, error) {
	entries, err := BuildPlan(rotation.ShiftsInSequence, employeeIDs)
	if err != nil {
		return nil, err
	}

	// the sequence references shifts by id only; re-check them against the
	// registry so a deleted shift fails the run up front instead of writing
	// dangling assignments
	if err := e.checkSequenceShifts(rotation); err != nil {
		return nil, err
	}

	report := &RunReport{
		AssignmentsCreated: len(entries),
		AssignedDate:       date,
		Results:            make([]EmployeeResult, 0, len(entries)),
	}

	for _, entry := range entries {
		outcome, err := e.store.ReconcileAssignment(rotation.CompanyID, entry.EmployeeID, entry.ShiftID, date, rotation.ReplaceExistingShift)
		if err != nil {
			slog.Error("failed to reconcile assignment",
				"rotation_id", rotation.ID,
				"employee_id", entry.EmployeeID,
				"assigned_date", date.Format(time.DateOnly),
				"error", err,
			)
			outcome = domain.OutcomeFailed
		}

		report.Results = append(report.Results, EmployeeResult{
			EmployeeID: entry.EmployeeID,
			ShiftID:    entry.ShiftID,
			Outcome:    outcome,
		})
	}

	return report, nil
}

func (e *Engine) checkSequenceShifts(rotation *domain.ShiftRotation) error {
	ids, err := e.store.ListShiftIDs(rotation.CompanyID)
	if err != nil {
		return err
	}

	known := make(map[int64]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	for _, shiftID := range rotation.ShiftsInSequence {
		if !known[shiftID] {
			return fmt.Errorf("rotation references unknown shift %d: %w", shiftID, domain.ErrInvalidInput)
		}
	}

	return nil
}
