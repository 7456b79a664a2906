package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsPercentDiscount(t *testing.T) {
	expense := &Expense{
		Discount:     10,
		DiscountType: "%",
		Items: []ExpenseItem{
			{Amount: 100},
			{Amount: 50},
		},
	}

	expense.ComputeTotals()

	assert.Equal(t, 150.0, expense.SubTotal)
	assert.Equal(t, 15.0, expense.DiscountAmount)
	assert.Equal(t, 0.0, expense.TaxAmount)
	assert.Equal(t, 135.0, expense.Total)
}

func TestComputeTotalsFixedDiscount(t *testing.T) {
	expense := &Expense{
		Discount:     25,
		DiscountType: "Fixed",
		Items: []ExpenseItem{
			{Amount: 200},
		},
	}

	expense.ComputeTotals()

	assert.Equal(t, 200.0, expense.SubTotal)
	assert.Equal(t, 25.0, expense.DiscountAmount)
	assert.Equal(t, 175.0, expense.Total)
}

func TestComputeTotalsNoItems(t *testing.T) {
	expense := &Expense{DiscountType: "%"}

	expense.ComputeTotals()

	assert.Equal(t, 0.0, expense.SubTotal)
	assert.Equal(t, 0.0, expense.Total)
}
