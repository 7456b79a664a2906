package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

func (r *Repository) GetLeaveType(companyID int64, id int64) (*domain.LeaveType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, code, is_paid, allowed_days, is_archived, created_at, version
		FROM leave_types WHERE id = $1 AND company_id = $2
	`

	leaveType := &domain.LeaveType{
		ID:        id,
		CompanyID: companyID,
	}

	dst := []any{&leaveType.Name, &leaveType.Code, &leaveType.IsPaid, &leaveType.AllowedDays, &leaveType.IsArchived, &leaveType.CreatedAt, &leaveType.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(dst...); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("leave type %d: %w", id, domain.ErrNotFound)
		default:
			return nil, err
		}
	}

	return leaveType, nil
}

func (r *Repository) ListLeaveTypes(companyID int64, includeArchived bool) ([]*domain.LeaveType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, name, code, is_paid, allowed_days, is_archived, created_at, version
		FROM leave_types
		WHERE company_id = $1 AND (is_archived = FALSE OR $2)
		ORDER BY name ASC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, includeArchived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaveTypes := make([]*domain.LeaveType, 0)
	for rows.Next() {
		leaveType := &domain.LeaveType{
			CompanyID: companyID,
		}
		dst := []any{&leaveType.ID, &leaveType.Name, &leaveType.Code, &leaveType.IsPaid, &leaveType.AllowedDays, &leaveType.IsArchived, &leaveType.CreatedAt, &leaveType.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		leaveTypes = append(leaveTypes, leaveType)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaveTypes, nil
}

func (r *Repository) CreateLeaveType(leaveType *domain.LeaveType) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO leave_types (company_id, name, code, is_paid, allowed_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_archived, created_at, version
	`

	args := []any{leaveType.CompanyID, leaveType.Name, leaveType.Code, leaveType.IsPaid, leaveType.AllowedDays}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&leaveType.ID, &leaveType.IsArchived, &leaveType.CreatedAt, &leaveType.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateLeaveType(leaveType *domain.LeaveType) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE leave_types
		SET
			name = $1,
			code = $2,
			is_paid = $3,
			allowed_days = $4,
			is_archived = $5,
			version = version + 1
		WHERE id = $6 AND company_id = $7 AND version = $8
		RETURNING version
	`

	args := []any{leaveType.Name, leaveType.Code, leaveType.IsPaid, leaveType.AllowedDays, leaveType.IsArchived, leaveType.ID, leaveType.CompanyID, leaveType.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&leaveType.Version); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("leave type %d was modified concurrently: %w", leaveType.ID, domain.ErrConflict)
		default:
			return err
		}
	}

	return nil
}

func (r *Repository) DeleteLeaveType(companyID int64, id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM leave_types WHERE id = $1 AND company_id = $2`

	result, err := r.dbpool.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("leave type %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetLeaveGeneralSettings returns the company's general leave settings,
// creating the defaults row on first read.
func (r *Repository) GetLeaveGeneralSettings(companyID int64) (*domain.LeaveGeneralSettings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	settings := &domain.LeaveGeneralSettings{
		CompanyID: companyID,
	}

	query := `
		SELECT id, allow_half_day, require_approval, max_carry_forward_days, year_start_month, created_at
		FROM leave_general_settings WHERE company_id = $1
	`
	dst := []any{&settings.ID, &settings.AllowHalfDay, &settings.RequireApproval, &settings.MaxCarryForwardDays, &settings.YearStartMonth, &settings.CreatedAt}
	err := r.dbpool.QueryRowContext(ctx, query, companyID).Scan(dst...)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	settings = domain.DefaultLeaveGeneralSettings(companyID)
	query = `
		INSERT INTO leave_general_settings (company_id, allow_half_day, require_approval, max_carry_forward_days, year_start_month)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE SET company_id = EXCLUDED.company_id
		RETURNING id, allow_half_day, require_approval, max_carry_forward_days, year_start_month, created_at
	`
	args := []any{settings.CompanyID, settings.AllowHalfDay, settings.RequireApproval, settings.MaxCarryForwardDays, settings.YearStartMonth}
	dst = []any{&settings.ID, &settings.AllowHalfDay, &settings.RequireApproval, &settings.MaxCarryForwardDays, &settings.YearStartMonth, &settings.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *Repository) UpdateLeaveGeneralSettings(settings *domain.LeaveGeneralSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE leave_general_settings
		SET
			allow_half_day = $1,
			require_approval = $2,
			max_carry_forward_days = $3,
			year_start_month = $4
		WHERE company_id = $5
	`
	args := []any{settings.AllowHalfDay, settings.RequireApproval, settings.MaxCarryForwardDays, settings.YearStartMonth, settings.CompanyID}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}
