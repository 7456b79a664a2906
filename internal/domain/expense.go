package domain

import "time"

type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "Pending"
	ExpenseApproved ExpenseStatus = "Approved"
	ExpenseRejected ExpenseStatus = "Rejected"
)

type ExpenseItem struct {
	ID          int64   `json:"id"`
	ExpenseID   int64   `json:"expenseID"`
	ItemName    string  `json:"itemName"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Tax         string  `json:"tax"`
	TaxRate     float64 `json:"taxRate"`
	FilePath    string  `json:"filePath"`
	Amount      float64 `json:"amount"`
}

type Expense struct {
	ID              int64         `json:"id"`
	CompanyID       int64         `json:"companyID"`
	ExpenseNumber   string        `json:"expenseNumber"`
	LeadID          *int64        `json:"leadID"`
	DealID          *int64        `json:"dealID"`
	ValidTill       *time.Time    `json:"validTill"`
	Currency        string        `json:"currency"`
	CalculateTax    string        `json:"calculateTax"`
	Description     string        `json:"description"`
	Note            string        `json:"note"`
	Terms           string        `json:"terms"`
	Discount        float64       `json:"discount"`
	DiscountType    string        `json:"discountType"`
	SubTotal        float64       `json:"subTotal"`
	DiscountAmount  float64       `json:"discountAmount"`
	TaxAmount       float64       `json:"taxAmount"`
	Total           float64       `json:"total"`
	RequireApproval bool          `json:"requireApproval"`
	Status          ExpenseStatus `json:"status"`
	CreatedBy       int64         `json:"createdBy"`
	Items           []ExpenseItem `json:"items"`
	CreatedAt       time.Time     `json:"createdAt"`
	Version         int32         `json:"-"`
}

// ComputeTotals fills the derived money columns from the items and the
// discount. Tax is already folded into each item's amount, so TaxAmount stays
// zero at the expense level.
func (e *Expense) ComputeTotals() {
	subTotal := 0.0
	for _, item := range e.Items {
		subTotal += item.Amount
	}

	discountAmount := e.Discount
	if e.DiscountType == "%" {
		discountAmount = subTotal * e.Discount / 100
	}

	e.SubTotal = subTotal
	e.DiscountAmount = discountAmount
	e.TaxAmount = 0
	e.Total = subTotal - discountAmount
}
