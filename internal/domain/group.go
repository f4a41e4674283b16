// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrGroupNotFound indicates that the group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupOwnerMismatch indicates that the group belongs to another user.
	ErrGroupOwnerMismatch = errors.New("group belongs to another user")
	// ErrOwnerNotFound indicates that the owner for the group is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrNoMembers indicates an empty member list.
	ErrNoMembers = errors.New("group must have at least one member")
	// ErrDuplicateMember indicates a repeated member identifier.
	ErrDuplicateMember = errors.New("duplicate group member")
)

// Group holds a set of people sharing expenses in a single reporting currency.
// Members keep their insertion order; identifiers are compared by exact string
// equality.
type Group struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateGroupParams is the input data to create a group.
type CreateGroupParams struct {
	Owner    string   `json:"owner"`
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Members  []string `json:"members"`
}

// IsMember reports whether person is in the group's member list.
func (g Group) IsMember(person string) bool {
	for _, m := range g.Members {
		if m == person {
			return true
		}
	}

	return false
}
