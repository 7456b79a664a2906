package repository

import (
	"context"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

func (r *Repository) ListEmployees(companyID int64) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, full_name, username, email, job_title, is_active, created_at
		FROM employees
		WHERE company_id = $1
		ORDER BY full_name ASC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{
			CompanyID: companyID,
		}
		dst := []any{&employee.ID, &employee.FullName, &employee.Username, &employee.Email, &employee.JobTitle, &employee.IsActive, &employee.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO employees (company_id, full_name, username, email, job_title)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at
	`

	args := []any{employee.CompanyID, employee.FullName, employee.Username, employee.Email, employee.JobTitle}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.ID, &employee.IsActive, &employee.CreatedAt); err != nil {
		return err
	}

	return nil
}
