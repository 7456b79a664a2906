package handler

import (
	"net/http"
	"time"

	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

type expenseItemRequest struct {
	ItemName    string  `json:"itemName" validate:"required"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice" validate:"min=0"`
	Tax         string  `json:"tax"`
	TaxRate     float64 `json:"taxRate" validate:"min=0"`
	FilePath    string  `json:"filePath"`
	Amount      float64 `json:"amount" validate:"min=0"`
}

// toItem derives the line amount when the client did not send one: quantity
// times unit price, plus the item-level tax.
func (req *expenseItemRequest) toItem() domain.ExpenseItem {
	amount := req.Amount
	if amount == 0 {
		base := req.Quantity * req.UnitPrice
		amount = base + base*req.TaxRate/100
	}

	return domain.ExpenseItem{
		ItemName:    req.ItemName,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		Tax:         req.Tax,
		TaxRate:     req.TaxRate,
		FilePath:    req.FilePath,
		Amount:      amount,
	}
}

func (h *Handler) GetAllExpenses(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", string(domain.ExpensePending), string(domain.ExpenseApproved), string(domain.ExpenseRejected):
	default:
		h.errorResponse(w, r, "invalid expense status")
		return
	}

	expenses, err := h.repository.ListExpenses(h.companyID(r), status)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "expenses fetched", expenses)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense := r.Context().Value(ExpenseCtx).(*domain.Expense)
	h.successResponse(w, r, "expense fetched", expense)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LeadID          *int64               `json:"leadID"`
		DealID          *int64               `json:"dealID"`
		ValidTill       *time.Time           `json:"validTill"`
		Currency        string               `json:"currency" validate:"required"`
		CalculateTax    string               `json:"calculateTax"`
		Description     string               `json:"description"`
		Note            string               `json:"note"`
		Terms           string               `json:"terms"`
		Discount        float64              `json:"discount" validate:"min=0"`
		DiscountType    string               `json:"discountType" validate:"omitempty,oneof=% Fixed"`
		RequireApproval bool                 `json:"requireApproval"`
		Items           []expenseItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	expense := &domain.Expense{
		CompanyID:       h.companyID(r),
		LeadID:          req.LeadID,
		DealID:          req.DealID,
		ValidTill:       req.ValidTill,
		Currency:        req.Currency,
		CalculateTax:    req.CalculateTax,
		Description:     req.Description,
		Note:            req.Note,
		Terms:           req.Terms,
		Discount:        req.Discount,
		DiscountType:    req.DiscountType,
		RequireApproval: req.RequireApproval,
		Status:          domain.ExpensePending,
		CreatedBy:       h.actorID(r),
	}
	for _, item := range req.Items {
		expense.Items = append(expense.Items, item.toItem())
	}
	expense.ComputeTotals()

	// an expense created without mandatory approval is live immediately
	if !expense.RequireApproval {
		expense.Status = domain.ExpenseApproved
	}

	if err := h.repository.CreateExpense(expense); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "create", "expense", expense.ID, expense)
	h.successResponse(w, r, "expense created", expense)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	expense := r.Context().Value(ExpenseCtx).(*domain.Expense)

	if expense.Status == domain.ExpenseApproved {
		h.errorResponse(w, r, "an approved expense cannot be edited")
		return
	}

	var req struct {
		LeadID       *int64               `json:"leadID"`
		DealID       *int64               `json:"dealID"`
		ValidTill    *time.Time           `json:"validTill"`
		Currency     *string              `json:"currency"`
		CalculateTax *string              `json:"calculateTax"`
		Description  *string              `json:"description"`
		Note         *string              `json:"note"`
		Terms        *string              `json:"terms"`
		Discount     *float64             `json:"discount" validate:"omitempty,min=0"`
		DiscountType *string              `json:"discountType" validate:"omitempty,oneof=% Fixed"`
		Items        []expenseItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.LeadID != nil {
		expense.LeadID = req.LeadID
	}
	if req.DealID != nil {
		expense.DealID = req.DealID
	}
	if req.ValidTill != nil {
		expense.ValidTill = req.ValidTill
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}
	if req.CalculateTax != nil {
		expense.CalculateTax = *req.CalculateTax
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Note != nil {
		expense.Note = *req.Note
	}
	if req.Terms != nil {
		expense.Terms = *req.Terms
	}
	if req.Discount != nil {
		expense.Discount = *req.Discount
	}
	if req.DiscountType != nil {
		expense.DiscountType = *req.DiscountType
	}
	if req.Items != nil {
		expense.Items = expense.Items[:0]
		for _, item := range req.Items {
			expense.Items = append(expense.Items, item.toItem())
		}
	}
	expense.ComputeTotals()

	if err := h.repository.UpdateExpense(expense); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "update", "expense", expense.ID, expense)
	h.successResponse(w, r, "expense updated", expense)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expense := r.Context().Value(ExpenseCtx).(*domain.Expense)

	if err := h.repository.SoftDeleteExpense(expense.CompanyID, expense.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "delete", "expense", expense.ID, nil)
	h.successResponse(w, r, "expense deleted", nil)
}

func (h *Handler) ApproveExpense(w http.ResponseWriter, r *http.Request) {
	expense := r.Context().Value(ExpenseCtx).(*domain.Expense)

	switch expense.Status {
	case domain.ExpenseApproved:
		h.errorResponse(w, r, "expense is already approved")
		return
	case domain.ExpenseRejected:
		h.errorResponse(w, r, "a rejected expense cannot be approved")
		return
	}

	expense.Status = domain.ExpenseApproved
	if err := h.repository.UpdateExpenseStatus(expense); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "approve", "expense", expense.ID, nil)
	h.successResponse(w, r, "expense approved", expense)
}

func (h *Handler) RejectExpense(w http.ResponseWriter, r *http.Request) {
	expense := r.Context().Value(ExpenseCtx).(*domain.Expense)

	if expense.Status != domain.ExpensePending {
		h.errorResponse(w, r, "only a pending expense can be rejected")
		return
	}

	var req struct {
		Reason string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	expense.Status = domain.ExpenseRejected
	expense.Note = req.Reason
	if err := h.repository.UpdateExpenseStatus(expense); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishAudit(r, "reject", "expense", expense.ID, map[string]string{"reason": req.Reason})
	h.successResponse(w, r, "expense rejected", expense)
}
