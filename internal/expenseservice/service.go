// Package expenseservice manages business logic layer of expenses.
package expenseservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashsplit/cashsplit/internal/domain"
)

// Repo provides data access layer interface needed by expense service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package expenseservice
type Repo interface {
	Create(ctx context.Context, owner string, arg domain.CreateExpenseParams) (domain.Expense, error)
	Get(ctx context.Context, id string) (domain.Expense, string, error)
	ListByGroup(ctx context.Context, groupID string) ([]domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

// GroupGetter provides the group service interface needed by expense service layer.
type GroupGetter interface {
	Get(ctx context.Context, owner, id string) (domain.Group, error)
}

// Service facilitates expense service layer logic.
type Service struct {
	repo   Repo
	groups GroupGetter
}

// New returns expense service struct to manage expense business logic.
func New(er Repo, gg GroupGetter) *Service {
	return &Service{repo: er, groups: gg}
}

// CreateParams is the input data to record an expense. Amount arrives as a
// string so that the caller's decimal value survives transport untouched.
type CreateParams struct {
	GroupID  string
	Payer    string
	For      []string
	Amount   string
	Currency string
	Note     string
	Date     time.Time
}

// Create validates the expense against its group and records it. The payer
// and every beneficiary must be members of the group at creation time; later
// membership edits do not retroactively invalidate the expense.
func (s *Service) Create(ctx context.Context, owner string, arg CreateParams) (domain.Expense, error) {
	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		return domain.Expense{}, domain.ErrInvalidAmount
	}

	if !amount.IsPositive() {
		return domain.Expense{}, domain.ErrNonPositiveAmount
	}

	if len(arg.For) == 0 {
		return domain.Expense{}, domain.ErrNoBeneficiaries
	}

	group, err := s.groups.Get(ctx, owner, arg.GroupID)
	if err != nil {
		return domain.Expense{}, err
	}

	if !group.IsMember(arg.Payer) {
		return domain.Expense{}, domain.ErrPayerNotMember
	}

	for _, m := range arg.For {
		if !group.IsMember(m) {
			return domain.Expense{}, domain.ErrBeneficiaryNotMember
		}
	}

	date := arg.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	currency := arg.Currency
	if currency == group.Currency {
		currency = ""
	}

	return s.repo.Create(ctx, owner, domain.CreateExpenseParams{
		GroupID:  arg.GroupID,
		Payer:    arg.Payer,
		For:      arg.For,
		Amount:   amount.Round(2).InexactFloat64(),
		Currency: currency,
		Note:     arg.Note,
		Date:     date,
	})
}

// ListByGroup returns the group's expenses, newest first.
func (s *Service) ListByGroup(ctx context.Context, owner, groupID string) ([]domain.Expense, error) {
	if _, err := s.groups.Get(ctx, owner, groupID); err != nil {
		return nil, err
	}

	return s.repo.ListByGroup(ctx, groupID)
}

// Delete removes a single expense if its group is owned by owner.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	_, expenseOwner, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if expenseOwner != owner {
		return domain.ErrExpenseOwnerMismatch
	}

	return s.repo.Delete(ctx, id)
}
