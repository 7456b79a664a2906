package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

const assignmentConflictKey = "employee_shift_assignments_employee_id_assigned_date_key"

// ReconcileAssignment brings one employee's row for one date in line with the
// rotation's target shift. An existing row is updated in place when replace is
// true and left untouched otherwise. A uniqueness violation on insert means a
// concurrent run created the row between our read and our write; it is
// resolved the same way an existing row would have been, never surfaced raw.
// The fallback depends on the (employee_id, assigned_date) unique constraint
// declared in migrations/0001_init.sql, whose name assignmentConflictKey
// mirrors.
func (r *Repository) ReconcileAssignment(companyID int64, employeeID int64, shiftID int64, date time.Time, replace bool) (domain.AssignmentOutcome, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var existingID int64
	query := `SELECT id FROM employee_shift_assignments WHERE employee_id = $1 AND assigned_date = $2`
	err := r.dbpool.QueryRowContext(ctx, query, employeeID, date).Scan(&existingID)

	switch {
	case err == nil:
		if !replace {
			return domain.OutcomeSkipped, nil
		}
		return r.replaceAssignment(ctx, employeeID, shiftID, date)
	case errors.Is(err, sql.ErrNoRows):
		query = `
			INSERT INTO employee_shift_assignments (company_id, employee_id, shift_id, assigned_date)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := r.dbpool.ExecContext(ctx, query, companyID, employeeID, shiftID, date); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.ConstraintName == assignmentConflictKey {
				// the row appeared concurrently, fall back to the replace policy
				if !replace {
					return domain.OutcomeSkipped, nil
				}
				return r.replaceAssignment(ctx, employeeID, shiftID, date)
			}
			return domain.OutcomeFailed, err
		}
		return domain.OutcomeCreated, nil
	default:
		return domain.OutcomeFailed, err
	}
}

func (r *Repository) replaceAssignment(ctx context.Context, employeeID int64, shiftID int64, date time.Time) (domain.AssignmentOutcome, error) {
	query := `
		UPDATE employee_shift_assignments
		SET shift_id = $1
		WHERE employee_id = $2 AND assigned_date = $3
	`
	if _, err := r.dbpool.ExecContext(ctx, query, shiftID, employeeID, date); err != nil {
		return domain.OutcomeFailed, err
	}
	return domain.OutcomeReplaced, nil
}

func (r *Repository) ListAssignments(companyID int64, date time.Time) ([]*domain.EmployeeShiftAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, employee_id, shift_id, assigned_date, created_at
		FROM employee_shift_assignments
		WHERE company_id = $1 AND assigned_date = $2
		ORDER BY employee_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.EmployeeShiftAssignment, 0)
	for rows.Next() {
		assignment := &domain.EmployeeShiftAssignment{
			CompanyID: companyID,
		}
		dst := []any{&assignment.ID, &assignment.EmployeeID, &assignment.ShiftID, &assignment.AssignedDate, &assignment.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
