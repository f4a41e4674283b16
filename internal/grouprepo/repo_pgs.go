// Package grouprepo manages repository layer of groups.
package grouprepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/cashsplit/cashsplit/internal/domain"
	"github.com/cashsplit/cashsplit/pkg/dbpkg"
	"github.com/cashsplit/cashsplit/pkg/errorspkg"
)

// RepoPGS facilitates group repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns group RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    groups (owner, name, currency, members)
VALUES
    ($1, $2, $3, $4)
RETURNING id, owner, name, currency, members, created_at
`

// Create creates the group and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateGroupParams) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.Owner, arg.Name, arg.Currency, pq.Array(arg.Members))

	var g domain.Group

	err := row.Scan(
		&g.ID,
		&g.Owner,
		&g.Name,
		&g.Currency,
		pq.Array(&g.Members),
		&g.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "groups_owner_fkey" {
				return g, domain.ErrOwnerNotFound
			}
		}

		return g, errorspkg.ErrInternal
	}

	return g, nil
}

const getQuery = `
SELECT
	id, owner, name, currency, members, created_at
FROM groups
WHERE id = $1
`

// Get returns the group with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var g domain.Group

	err := row.Scan(
		&g.ID,
		&g.Owner,
		&g.Name,
		&g.Currency,
		pq.Array(&g.Members),
		&g.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return g, domain.ErrGroupNotFound
		}

		return g, errorspkg.ErrInternal
	}

	return g, nil
}

const listQuery = `
SELECT
	id, owner, name, currency, members, created_at
FROM groups
WHERE owner = $1
ORDER BY created_at DESC
`

// List returns all groups owned by the given user, newest first.
func (r *RepoPGS) List(ctx context.Context, owner string) ([]domain.Group, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, owner)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Group{}

	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Owner, &g.Name, &g.Currency, pq.Array(&g.Members), &g.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, g)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE groups
SET name = $2, members = $3
WHERE id = $1
RETURNING id, owner, name, currency, members, created_at
`

// Update replaces the group's name and member list and returns the changed group.
func (r *RepoPGS) Update(ctx context.Context, id, name string, members []string) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, id, name, pq.Array(members))

	var g domain.Group

	err := row.Scan(
		&g.ID,
		&g.Owner,
		&g.Name,
		&g.Currency,
		pq.Array(&g.Members),
		&g.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return g, domain.ErrGroupNotFound
		}

		return g, errorspkg.ErrInternal
	}

	return g, nil
}

const deleteQuery = `
DELETE FROM groups
WHERE id = $1
`

// Delete removes the group with the given id. Expenses referencing the group
// are removed by the FK cascade.
func (r *RepoPGS) Delete(ctx context.Context, id string) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrGroupNotFound
	}

	return nil
}
