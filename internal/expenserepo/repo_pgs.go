// Package expenserepo manages repository layer of expenses.
package expenserepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/cashsplit/cashsplit/internal/domain"
	"github.com/cashsplit/cashsplit/pkg/dbpkg"
	"github.com/cashsplit/cashsplit/pkg/errorspkg"
)

// RepoPGS facilitates expense repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns expense RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    expenses (group_id, owner, payer, for_members, amount, currency, note, date)
VALUES
    ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
RETURNING id, group_id, payer, for_members, amount, COALESCE(currency, ''), COALESCE(note, ''), date
`

// Create creates the expense and then returns it.
func (r *RepoPGS) Create(ctx context.Context, owner string, arg domain.CreateExpenseParams) (domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.GroupID,
		owner,
		arg.Payer,
		pq.Array(arg.For),
		arg.Amount,
		arg.Currency,
		arg.Note,
		arg.Date,
	)

	var e domain.Expense

	err := row.Scan(
		&e.ID,
		&e.GroupID,
		&e.Payer,
		pq.Array(&e.For),
		&e.Amount,
		&e.Currency,
		&e.Note,
		&e.Date,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "expenses_group_id_fkey":
				return e, domain.ErrGroupNotFound
			case "expenses_for_members_check":
				return e, domain.ErrNoBeneficiaries
			case "expenses_amount_check":
				return e, domain.ErrNonPositiveAmount
			}
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const getQuery = `
SELECT
	id, group_id, owner, payer, for_members, amount, COALESCE(currency, ''), COALESCE(note, ''), date
FROM expenses
WHERE id = $1
`

// Get returns the expense with the given id along with its owner.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Expense, string, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var (
		e     domain.Expense
		owner string
	)

	err := row.Scan(
		&e.ID,
		&e.GroupID,
		&owner,
		&e.Payer,
		pq.Array(&e.For),
		&e.Amount,
		&e.Currency,
		&e.Note,
		&e.Date,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return e, "", domain.ErrExpenseNotFound
		}

		return e, "", errorspkg.ErrInternal
	}

	return e, owner, nil
}

const listByGroupQuery = `
SELECT
	id, group_id, payer, for_members, amount, COALESCE(currency, ''), COALESCE(note, ''), date
FROM expenses
WHERE group_id = $1
ORDER BY date DESC
`

// ListByGroup returns all expenses of the given group, newest first. The
// ordering only matters for display; balance computation is order invariant.
func (r *RepoPGS) ListByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByGroupQuery, groupID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Expense{}

	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Payer, pq.Array(&e.For), &e.Amount, &e.Currency, &e.Note, &e.Date); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM expenses
WHERE id = $1
`

// Delete removes the expense with the given id.
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
		return domain.ErrExpenseNotFound
	}

	return nil
}
