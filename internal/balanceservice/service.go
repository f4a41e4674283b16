// Package balanceservice computes per-member balances and settlement plans
// for a group.
package balanceservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cashsplit/cashsplit/internal/calculator"
	"github.com/cashsplit/cashsplit/internal/domain"
)

// GroupGetter provides the group service interface needed by balance service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package balanceservice
type GroupGetter interface {
	Get(ctx context.Context, owner, id string) (domain.Group, error)
}

// ExpenseLister provides the expense repository interface needed by balance service layer.
type ExpenseLister interface {
	ListByGroup(ctx context.Context, groupID string) ([]domain.Expense, error)
}

// RateProvider provides the rates service interface needed by balance service layer.
type RateProvider interface {
	Table(ctx context.Context) (domain.RateTable, error)
}

// Service facilitates balance service layer logic.
type Service struct {
	groups   GroupGetter
	expenses ExpenseLister
	rates    RateProvider
}

// New returns balance service struct to manage balance business logic.
func New(gg GroupGetter, el ExpenseLister, rp RateProvider) *Service {
	return &Service{groups: gg, expenses: el, rates: rp}
}

// Balances returns the group's net per-member positions in the group
// currency, along with the currency pairs that had no stored conversion rate
// and were therefore treated at parity.
func (s *Service) Balances(ctx context.Context, owner, groupID string) (map[string]float64, []domain.RatePair, error) {
	l := zerolog.Ctx(ctx)

	group, err := s.groups.Get(ctx, owner, groupID)
	if err != nil {
		return nil, nil, err
	}

	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	table, err := s.rates.Table(ctx)
	if err != nil {
		return nil, nil, err
	}

	balances, missing, err := calculator.Balances(group, expenses, table)
	if err != nil {
		return nil, nil, err
	}

	if len(missing) != 0 {
		l.Warn().
			Str("group_id", groupID).
			Interface("pairs", missing).
			Msg("no conversion rate stored, assumed parity")
	}

	return balances, missing, nil
}

// Settlements returns a minimal transaction plan that clears the group's
// balances.
func (s *Service) Settlements(ctx context.Context, owner, groupID string) ([]domain.Transaction, []domain.RatePair, error) {
	balances, missing, err := s.Balances(ctx, owner, groupID)
	if err != nil {
		return nil, nil, err
	}

	return calculator.Settlements(balances), missing, nil
}
