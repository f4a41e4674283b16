// Package groupservice manages business logic layer of groups.
package groupservice

import (
	"context"

	"github.com/cashsplit/cashsplit/internal/domain"
)

// Repo provides data access layer interface needed by group service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package groupservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateGroupParams) (domain.Group, error)
	Get(ctx context.Context, id string) (domain.Group, error)
	List(ctx context.Context, owner string) ([]domain.Group, error)
	Update(ctx context.Context, id, name string, members []string) (domain.Group, error)
	Delete(ctx context.Context, id string) error
}

// Service facilitates group service layer logic.
type Service struct {
	repo Repo
}

// New returns group service struct to manage group business logic.
func New(gr Repo) *Service {
	return &Service{repo: gr}
}

func validateMembers(members []string) error {
	if len(members) == 0 {
		return domain.ErrNoMembers
	}

	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, ok := seen[m]; ok {
			return domain.ErrDuplicateMember
		}

		seen[m] = struct{}{}
	}

	return nil
}

// Create creates and returns a group for the given owner.
func (s *Service) Create(ctx context.Context, owner, name, currency string, members []string) (domain.Group, error) {
	if err := validateMembers(members); err != nil {
		return domain.Group{}, err
	}

	arg := domain.CreateGroupParams{
		Owner:    owner,
		Name:     name,
		Currency: currency,
		Members:  members,
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the group with the given id if it is owned by owner.
func (s *Service) Get(ctx context.Context, owner, id string) (domain.Group, error) {
	group, err := s.repo.Get(ctx, id)
	if err != nil {
		return group, err
	}

	if group.Owner != owner {
		return domain.Group{}, domain.ErrGroupOwnerMismatch
	}

	return group, nil
}

// List returns all groups owned by the given user.
func (s *Service) List(ctx context.Context, owner string) ([]domain.Group, error) {
	return s.repo.List(ctx, owner)
}

// Update renames the group and/or replaces its member list. An empty name or
// nil member list keeps the current value. Expenses referencing removed
// members stay untouched; their balances keep counting the orphaned
// identifiers.
func (s *Service) Update(ctx context.Context, owner, id, name string, members []string) (domain.Group, error) {
	group, err := s.Get(ctx, owner, id)
	if err != nil {
		return domain.Group{}, err
	}

	if name == "" {
		name = group.Name
	}

	if members == nil {
		members = group.Members
	}

	if err := validateMembers(members); err != nil {
		return domain.Group{}, err
	}

	return s.repo.Update(ctx, id, name, members)
}

// Delete removes the group and, through the storage cascade, all of its
// expenses.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
