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

func (r *Repository) GetRotation(companyID int64, id int64) (*domain.ShiftRotation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT rotation_name, rotation_frequency, replace_existing_shift, shifts_in_sequence, created_at
		FROM shift_rotations WHERE id = $1 AND company_id = $2
	`

	rotation := &domain.ShiftRotation{
		ID:        id,
		CompanyID: companyID,
	}

	var sequence []byte
	dst := []any{&rotation.RotationName, &rotation.RotationFrequency, &rotation.ReplaceExistingShift, &sequence, &rotation.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(dst...); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("rotation %d: %w", id, domain.ErrNotFound)
		default:
			return nil, err
		}
	}

	if err := json.Unmarshal(sequence, &rotation.ShiftsInSequence); err != nil {
		return nil, err
	}

	return rotation, nil
}

func (r *Repository) ListRotations(companyID int64) ([]*domain.ShiftRotation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, rotation_name, rotation_frequency, replace_existing_shift, shifts_in_sequence, created_at
		FROM shift_rotations
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rotations := make([]*domain.ShiftRotation, 0)
	for rows.Next() {
		rotation := &domain.ShiftRotation{
			CompanyID: companyID,
		}

		var sequence []byte
		dst := []any{&rotation.ID, &rotation.RotationName, &rotation.RotationFrequency, &rotation.ReplaceExistingShift, &sequence, &rotation.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(sequence, &rotation.ShiftsInSequence); err != nil {
			return nil, err
		}

		rotations = append(rotations, rotation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rotations, nil
}

func (r *Repository) CreateRotation(rotation *domain.ShiftRotation) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	sequence, err := json.Marshal(rotation.ShiftsInSequence)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shift_rotations (company_id, rotation_name, rotation_frequency, replace_existing_shift, shifts_in_sequence)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	args := []any{rotation.CompanyID, rotation.RotationName, rotation.RotationFrequency, rotation.ReplaceExistingShift, sequence}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rotation.ID, &rotation.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteRotation(companyID int64, id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM shift_rotations WHERE id = $1 AND company_id = $2`

	result, err := r.dbpool.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("rotation %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
