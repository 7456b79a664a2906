package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

// GetDashboardSummary computes the aggregate counters for one company. The
// handler caches the result; this always reads current state.
func (r *Repository) GetDashboardSummary(companyID int64, today time.Time) (*domain.DashboardSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	summary := &domain.DashboardSummary{}

	// assigned_date is a plain date column; strip the time of day before
	// comparing so a mid-day timestamp still matches today's rows
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM employees WHERE company_id = $1 AND is_active`, []any{companyID}, &summary.EmployeeCount},
		{`SELECT COUNT(*) FROM shifts WHERE company_id = $1`, []any{companyID}, &summary.ShiftCount},
		{`SELECT COUNT(*) FROM shift_rotations WHERE company_id = $1`, []any{companyID}, &summary.RotationCount},
		{`SELECT COUNT(*) FROM employee_shift_assignments WHERE company_id = $1 AND assigned_date = $2`, []any{companyID, day}, &summary.TodayAssignmentCount},
		{`SELECT COUNT(*) FROM expenses WHERE company_id = $1 AND is_deleted = FALSE AND status = 'Pending'`, []any{companyID}, &summary.PendingExpenseCount},
		{`SELECT COUNT(*) FROM expenses WHERE company_id = $1 AND is_deleted = FALSE AND status = 'Approved'`, []any{companyID}, &summary.ApprovedExpenseCount},
	}

	for _, count := range counts {
		if err := r.dbpool.QueryRowContext(ctx, count.query, count.args...).Scan(count.dst); err != nil {
			return nil, err
		}
	}

	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM expenses
		WHERE company_id = $1 AND is_deleted = FALSE AND created_at >= date_trunc('month', $2::timestamptz)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, today).Scan(&summary.MonthExpenseTotal); err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *Repository) ListTodos(companyID int64) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, title, is_done, created_at
		FROM todos WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		todo := &domain.Todo{
			CompanyID: companyID,
		}
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.IsDone, &todo.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *Repository) CreateTodo(todo *domain.Todo) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO todos (company_id, title, is_done)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.dbpool.QueryRowContext(ctx, query, todo.CompanyID, todo.Title, todo.IsDone).Scan(&todo.ID, &todo.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateTodo(todo *domain.Todo) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE todos SET title = $1, is_done = $2
		WHERE id = $3 AND company_id = $4
	`

	result, err := r.dbpool.ExecContext(ctx, query, todo.Title, todo.IsDone, todo.ID, todo.CompanyID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("todo %d: %w", todo.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *Repository) DeleteTodo(companyID int64, id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM todos WHERE id = $1 AND company_id = $2`

	result, err := r.dbpool.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *Repository) GetStickyNote(companyID int64) (*domain.StickyNote, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	note := &domain.StickyNote{
		CompanyID: companyID,
	}

	query := `SELECT content, updated_at FROM sticky_notes WHERE company_id = $1`
	if err := r.dbpool.QueryRowContext(ctx, query, companyID).Scan(&note.Content, &note.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// an absent note reads as empty, not as an error
			return note, nil
		default:
			return nil, err
		}
	}

	return note, nil
}

func (r *Repository) SaveStickyNote(note *domain.StickyNote) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO sticky_notes (company_id, content, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (company_id) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
		RETURNING updated_at
	`
	if err := r.dbpool.QueryRowContext(ctx, query, note.CompanyID, note.Content).Scan(&note.UpdatedAt); err != nil {
		return err
	}

	return nil
}
