package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

const expenseNumberKey = "expenses_company_id_expense_number_key"

// nextExpenseNumber computes the next EXP#NNN number for the company by
// scanning the numeric suffix of the existing rows. Runs inside the create
// transaction; the unique constraint backstops concurrent creates.
func (r *Repository) nextExpenseNumber(ctx context.Context, tx *sql.Tx, companyID int64) (string, error) {
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(expense_number FROM 5) AS INTEGER)), 0)
		FROM expenses
		WHERE company_id = $1 AND expense_number LIKE 'EXP#%'
	`

	var maxNum int64
	if err := tx.QueryRowContext(ctx, query, companyID).Scan(&maxNum); err != nil {
		return "", err
	}

	return fmt.Sprintf("EXP#%03d", maxNum+1), nil
}

func (r *Repository) CreateExpense(expense *domain.Expense) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	number, err := r.nextExpenseNumber(ctx, tx, expense.CompanyID)
	if err != nil {
		return err
	}
	expense.ExpenseNumber = number

	query := `
		INSERT INTO expenses (
			company_id, expense_number, lead_id, deal_id, valid_till, currency,
			calculate_tax, description, note, terms, discount, discount_type,
			sub_total, discount_amount, tax_amount, total, require_approval,
			status, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, version
	`
	args := []any{
		expense.CompanyID, expense.ExpenseNumber, expense.LeadID, expense.DealID, expense.ValidTill, expense.Currency,
		expense.CalculateTax, expense.Description, expense.Note, expense.Terms, expense.Discount, expense.DiscountType,
		expense.SubTotal, expense.DiscountAmount, expense.TaxAmount, expense.Total, expense.RequireApproval,
		expense.Status, expense.CreatedBy,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&expense.ID, &expense.CreatedAt, &expense.Version); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == expenseNumberKey {
			return fmt.Errorf("expense number %s already taken: %w", expense.ExpenseNumber, domain.ErrConflict)
		}
		return err
	}

	if err := r.insertExpenseItems(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) insertExpenseItems(ctx context.Context, tx *sql.Tx, expense *domain.Expense) error {
	for i := range expense.Items {
		query := `
			INSERT INTO expense_items (
				expense_id, item_name, description, quantity, unit, unit_price,
				tax, tax_rate, file_path, amount
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`
		item := &expense.Items[i]
		args := []any{expense.ID, item.ItemName, item.Description, item.Quantity, item.Unit, item.UnitPrice, item.Tax, item.TaxRate, item.FilePath, item.Amount}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
			return err
		}
		item.ExpenseID = expense.ID
	}

	return nil
}

func (r *Repository) GetExpense(companyID int64, id int64) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			expense_number, lead_id, deal_id, valid_till, currency, calculate_tax,
			description, note, terms, discount, discount_type, sub_total,
			discount_amount, tax_amount, total, require_approval, status,
			created_by, created_at, version
		FROM expenses WHERE id = $1 AND company_id = $2 AND is_deleted = FALSE
	`

	expense := &domain.Expense{
		ID:        id,
		CompanyID: companyID,
	}

	dst := []any{
		&expense.ExpenseNumber, &expense.LeadID, &expense.DealID, &expense.ValidTill, &expense.Currency, &expense.CalculateTax,
		&expense.Description, &expense.Note, &expense.Terms, &expense.Discount, &expense.DiscountType, &expense.SubTotal,
		&expense.DiscountAmount, &expense.TaxAmount, &expense.Total, &expense.RequireApproval, &expense.Status,
		&expense.CreatedBy, &expense.CreatedAt, &expense.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(dst...); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("expense %d: %w", id, domain.ErrNotFound)
		default:
			return nil, err
		}
	}

	itemsQuery := `
		SELECT id, item_name, description, quantity, unit, unit_price, tax, tax_rate, file_path, amount
		FROM expense_items WHERE expense_id = $1
		ORDER BY id
	`
	rows, err := r.dbpool.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expense.Items = make([]domain.ExpenseItem, 0)
	for rows.Next() {
		item := domain.ExpenseItem{
			ExpenseID: id,
		}
		dst := []any{&item.ID, &item.ItemName, &item.Description, &item.Quantity, &item.Unit, &item.UnitPrice, &item.Tax, &item.TaxRate, &item.FilePath, &item.Amount}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		expense.Items = append(expense.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpenses returns the company's non-deleted expenses newest first,
// optionally filtered by status, with their items attached.
func (r *Repository) ListExpenses(companyID int64, status string) ([]*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			e.id, e.expense_number, e.lead_id, e.deal_id, e.valid_till, e.currency,
			e.calculate_tax, e.description, e.note, e.terms, e.discount, e.discount_type,
			e.sub_total, e.discount_amount, e.tax_amount, e.total, e.require_approval,
			e.status, e.created_by, e.created_at, e.version,
			ei.id, ei.item_name, ei.description, ei.quantity, ei.unit, ei.unit_price,
			ei.tax, ei.tax_rate, ei.file_path, ei.amount
		FROM expenses e
		LEFT JOIN expense_items ei ON e.id = ei.expense_id
		WHERE e.company_id = $1 AND e.is_deleted = FALSE AND (e.status = $2 OR $2 = '')
		ORDER BY e.created_at DESC, e.id, ei.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	expensesMap := make(map[int64]*domain.Expense)

	for rows.Next() {
		var row struct {
			ID              int64
			ExpenseNumber   string
			LeadID          *int64
			DealID          *int64
			ValidTill       *time.Time
			Currency        string
			CalculateTax    string
			Description     string
			Note            string
			Terms           string
			Discount        float64
			DiscountType    string
			SubTotal        float64
			DiscountAmount  float64
			TaxAmount       float64
			Total           float64
			RequireApproval bool
			Status          string
			CreatedBy       int64
			CreatedAt       time.Time
			Version         int32

			ItemID          sql.NullInt64
			ItemName        sql.NullString
			ItemDescription sql.NullString
			Quantity        sql.NullFloat64
			Unit            sql.NullString
			UnitPrice       sql.NullFloat64
			Tax             sql.NullString
			TaxRate         sql.NullFloat64
			FilePath        sql.NullString
			Amount          sql.NullFloat64
		}

		dst := []any{
			&row.ID, &row.ExpenseNumber, &row.LeadID, &row.DealID, &row.ValidTill, &row.Currency,
			&row.CalculateTax, &row.Description, &row.Note, &row.Terms, &row.Discount, &row.DiscountType,
			&row.SubTotal, &row.DiscountAmount, &row.TaxAmount, &row.Total, &row.RequireApproval,
			&row.Status, &row.CreatedBy, &row.CreatedAt, &row.Version,
			&row.ItemID, &row.ItemName, &row.ItemDescription, &row.Quantity, &row.Unit, &row.UnitPrice,
			&row.Tax, &row.TaxRate, &row.FilePath, &row.Amount,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		expense, exists := expensesMap[row.ID]
		if !exists {
			expense = &domain.Expense{
				ID:              row.ID,
				CompanyID:       companyID,
				ExpenseNumber:   row.ExpenseNumber,
				LeadID:          row.LeadID,
				DealID:          row.DealID,
				ValidTill:       row.ValidTill,
				Currency:        row.Currency,
				CalculateTax:    row.CalculateTax,
				Description:     row.Description,
				Note:            row.Note,
				Terms:           row.Terms,
				Discount:        row.Discount,
				DiscountType:    row.DiscountType,
				SubTotal:        row.SubTotal,
				DiscountAmount:  row.DiscountAmount,
				TaxAmount:       row.TaxAmount,
				Total:           row.Total,
				RequireApproval: row.RequireApproval,
				Status:          domain.ExpenseStatus(row.Status),
				CreatedBy:       row.CreatedBy,
				Items:           make([]domain.ExpenseItem, 0),
				CreatedAt:       row.CreatedAt,
				Version:         row.Version,
			}
			expensesMap[row.ID] = expense
			expenses = append(expenses, expense)
		}

		// a null item id means the expense has no items
		if !row.ItemID.Valid {
			continue
		}

		expense.Items = append(expense.Items, domain.ExpenseItem{
			ID:          row.ItemID.Int64,
			ExpenseID:   row.ID,
			ItemName:    row.ItemName.String,
			Description: row.ItemDescription.String,
			Quantity:    row.Quantity.Float64,
			Unit:        row.Unit.String,
			UnitPrice:   row.UnitPrice.Float64,
			Tax:         row.Tax.String,
			TaxRate:     row.TaxRate.Float64,
			FilePath:    row.FilePath.String,
			Amount:      row.Amount.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

// UpdateExpense persists a patched expense and replaces its items wholesale.
func (r *Repository) UpdateExpense(expense *domain.Expense) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE expenses
		SET
			lead_id = $1, deal_id = $2, valid_till = $3, currency = $4,
			calculate_tax = $5, description = $6, note = $7, terms = $8,
			discount = $9, discount_type = $10, require_approval = $11,
			sub_total = $12, discount_amount = $13, tax_amount = $14, total = $15,
			version = version + 1
		WHERE id = $16 AND company_id = $17 AND version = $18
		RETURNING version
	`
	args := []any{
		expense.LeadID, expense.DealID, expense.ValidTill, expense.Currency,
		expense.CalculateTax, expense.Description, expense.Note, expense.Terms,
		expense.Discount, expense.DiscountType, expense.RequireApproval,
		expense.SubTotal, expense.DiscountAmount, expense.TaxAmount, expense.Total,
		expense.ID, expense.CompanyID, expense.Version,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&expense.Version); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("expense %d was modified concurrently: %w", expense.ID, domain.ErrConflict)
		default:
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_items WHERE expense_id = $1`, expense.ID); err != nil {
		return err
	}

	if err := r.insertExpenseItems(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// SoftDeleteExpense marks the expense deleted; rows are never removed.
func (r *Repository) SoftDeleteExpense(companyID int64, id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE expenses SET is_deleted = TRUE
		WHERE id = $1 AND company_id = $2 AND is_deleted = FALSE
	`

	result, err := r.dbpool.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("expense %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// UpdateExpenseStatus moves the expense to the given status. For rejections
// the reason, when present, overwrites the note.
func (r *Repository) UpdateExpenseStatus(expense *domain.Expense) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE expenses
		SET status = $1, note = $2, version = version + 1
		WHERE id = $3 AND company_id = $4 AND version = $5
		RETURNING version
	`

	args := []any{expense.Status, expense.Note, expense.ID, expense.CompanyID, expense.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&expense.Version); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("expense %d was modified concurrently: %w", expense.ID, domain.ErrConflict)
		default:
			return err
		}
	}

	return nil
}
