package domain

import (
	"errors"
	"time"
)

var (
	// ErrExpenseNotFound indicates that the expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrExpenseOwnerMismatch indicates that the expense belongs to another user.
	ErrExpenseOwnerMismatch = errors.New("expense belongs to another user")
	// ErrInvalidAmount indicates that the amount is not a valid decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a zero or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrNoBeneficiaries indicates an empty beneficiary list.
	ErrNoBeneficiaries = errors.New("expense must have at least one beneficiary")
	// ErrPayerNotMember indicates that the payer is not a group member.
	ErrPayerNotMember = errors.New("payer is not a group member")
	// ErrBeneficiaryNotMember indicates a beneficiary outside the group.
	ErrBeneficiaryNotMember = errors.New("beneficiary is not a group member")
)

// Expense is a single shared payment. The payer covered Amount and the For
// members share it equally. Currency overrides the group currency when set;
// an empty Currency means the expense is denominated in the group currency.
// Expenses are immutable once created except for deletion.
type Expense struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	Payer    string    `json:"payer"`
	For      []string  `json:"for"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency,omitempty"`
	Note     string    `json:"note,omitempty"`
	Date     time.Time `json:"date"`
}

// CreateExpenseParams is the input data to create an expense.
type CreateExpenseParams struct {
	GroupID  string    `json:"group_id"`
	Payer    string    `json:"payer"`
	For      []string  `json:"for"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency,omitempty"`
	Note     string    `json:"note,omitempty"`
	Date     time.Time `json:"date"`
}
