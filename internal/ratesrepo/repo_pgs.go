// Package ratesrepo manages repository layer of currency conversion rates.
package ratesrepo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cashsplit/cashsplit/internal/domain"
	"github.com/cashsplit/cashsplit/pkg/dbpkg"
	"github.com/cashsplit/cashsplit/pkg/errorspkg"
)

// RepoPGS facilitates rates repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns rates RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const upsertQuery = `
INSERT INTO
    rates (from_currency, to_currency, rate, fetched_at)
VALUES
    ($1, $2, $3, $4)
ON CONFLICT (from_currency, to_currency)
DO UPDATE SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at
`

// Upsert stores the conversion factor for a directed currency pair,
// replacing any previously fetched value.
func (r *RepoPGS) Upsert(ctx context.Context, rate domain.Rate) error {
	l := zerolog.Ctx(ctx)

	_, err := r.db.ExecContext(ctx, upsertQuery, rate.From, rate.To, rate.Rate, rate.FetchedAt)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const tableQuery = `
SELECT
	from_currency, to_currency, rate
FROM rates
`

// Table loads every stored pair into a RateTable. The table may be sparse;
// missing pairs fall back to parity inside the calculator.
func (r *RepoPGS) Table(ctx context.Context) (domain.RateTable, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, tableQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	table := domain.RateTable{}

	for rows.Next() {
		var (
			pair   domain.RatePair
			factor float64
		)

		if err := rows.Scan(&pair.From, &pair.To, &factor); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		table[pair] = factor
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return table, nil
}
