package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

func (r *Repository) GetShift(companyID int64, id int64) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT shift_name, start_time, end_time, working_days, is_default, created_at, version
		FROM shifts WHERE id = $1 AND company_id = $2
	`

	shift := &domain.Shift{
		ID:        id,
		CompanyID: companyID,
	}

	var workingDays []byte
	dst := []any{&shift.ShiftName, &shift.StartTime, &shift.EndTime, &workingDays, &shift.IsDefault, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(dst...); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("shift %d: %w", id, domain.ErrNotFound)
		default:
			return nil, err
		}
	}

	if err := json.Unmarshal(workingDays, &shift.WorkingDays); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) ListShifts(companyID int64) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, shift_name, start_time, end_time, working_days, is_default, created_at, version
		FROM shifts
		WHERE company_id = $1
		ORDER BY is_default DESC, shift_name ASC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{
			CompanyID: companyID,
		}

		var workingDays []byte
		dst := []any{&shift.ID, &shift.ShiftName, &shift.StartTime, &shift.EndTime, &workingDays, &shift.IsDefault, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(workingDays, &shift.WorkingDays); err != nil {
			return nil, err
		}

		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListShiftIDs returns the ids of every shift owned by the company. Used to
// validate rotation sequences without an array-typed query parameter.
func (r *Repository) ListShiftIDs(companyID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT id FROM shifts WHERE company_id = $1`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// CreateShift inserts the shift. When the new shift is marked default, the
// clear-then-set sequence runs inside one transaction so the single-default
// invariant holds even when two admins race.
func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if shift.IsDefault {
		query := `UPDATE shifts SET is_default = FALSE WHERE company_id = $1 AND is_default`
		if _, err := tx.ExecContext(ctx, query, shift.CompanyID); err != nil {
			return err
		}
	}

	workingDays, err := json.Marshal(shift.WorkingDays)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shifts (company_id, shift_name, start_time, end_time, working_days, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`
	args := []any{shift.CompanyID, shift.ShiftName, shift.StartTime, shift.EndTime, workingDays, shift.IsDefault}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// UpdateShift persists a patched shift. The caller is expected to have loaded
// the row first, so the version check doubles as concurrent-update detection.
func (r *Repository) UpdateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if shift.IsDefault {
		// clear the flag on every sibling, excluding the target itself
		query := `UPDATE shifts SET is_default = FALSE WHERE company_id = $1 AND id != $2 AND is_default`
		if _, err := tx.ExecContext(ctx, query, shift.CompanyID, shift.ID); err != nil {
			return err
		}
	}

	workingDays, err := json.Marshal(shift.WorkingDays)
	if err != nil {
		return err
	}

	query := `
		UPDATE shifts
		SET
			shift_name = $1,
			start_time = $2,
			end_time = $3,
			working_days = $4,
			is_default = $5,
			version = version + 1
		WHERE id = $6 AND company_id = $7 AND version = $8
		RETURNING version
	`
	args := []any{shift.ShiftName, shift.StartTime, shift.EndTime, workingDays, shift.IsDefault, shift.ID, shift.CompanyID, shift.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("shift %d was modified concurrently: %w", shift.ID, domain.ErrConflict)
		default:
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// DeleteShift removes the shift unless it is the company default or still
// referenced by assignments. The guards and the delete share one transaction.
func (r *Repository) DeleteShift(companyID int64, id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var isDefault bool
	query := `SELECT is_default FROM shifts WHERE id = $1 AND company_id = $2 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, id, companyID).Scan(&isDefault); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("shift %d: %w", id, domain.ErrNotFound)
		default:
			return err
		}
	}

	if isDefault {
		return fmt.Errorf("cannot delete the default shift: %w", domain.ErrInvariantViolation)
	}

	var assignmentCount int64
	query = `SELECT COUNT(*) FROM employee_shift_assignments WHERE shift_id = $1`
	if err := tx.QueryRowContext(ctx, query, id).Scan(&assignmentCount); err != nil {
		return err
	}

	if assignmentCount > 0 {
		return fmt.Errorf("cannot delete a shift with employee assignments: %w", domain.ErrInvariantViolation)
	}

	query = `DELETE FROM shifts WHERE id = $1 AND company_id = $2`
	if _, err := tx.ExecContext(ctx, query, id, companyID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// SetDefaultShift is the canonical default switch: clear every default for the
// company, then set the target, all in one transaction.
func (r *Repository) SetDefaultShift(companyID int64, id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int64
	query := `SELECT id FROM shifts WHERE id = $1 AND company_id = $2 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, id, companyID).Scan(&exists); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("shift %d: %w", id, domain.ErrNotFound)
		default:
			return err
		}
	}

	query = `UPDATE shifts SET is_default = FALSE WHERE company_id = $1 AND is_default`
	if _, err := tx.ExecContext(ctx, query, companyID); err != nil {
		return err
	}

	query = `UPDATE shifts SET is_default = TRUE, version = version + 1 WHERE id = $1 AND company_id = $2`
	if _, err := tx.ExecContext(ctx, query, id, companyID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
