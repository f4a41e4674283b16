// Package calculator computes member balances and settlement plans for a
// group. It is pure, synchronous and never mutates its inputs, so it is safe
// to call concurrently. Balances are recomputed from the full expense set on
// every call and are invariant to the order of the expenses.
package calculator

import (
	"math"
	"sort"

	"github.com/cashsplit/cashsplit/internal/domain"
)

// roundCents rounds to 2 decimal places to suppress floating-point noise
// accumulated across many small additions and subtractions.
func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}

// Balances returns the signed net balance per member in the group's currency.
// Positive means the member is owed money by the group, negative means the
// member owes money.
//
// Every current group member is seeded at 0, so members without expenses
// appear in the result. Identifiers referenced by an expense but absent from
// the member list (a payer or beneficiary dropped by a later member edit)
// still accumulate an entry; expense history is immutable truth.
//
// An expense denominated in a foreign currency is converted with the directed
// pair from rates. A missing pair converts at parity (factor 1); the pairs
// that fell back this way are returned so callers can surface the
// approximation. The only error condition is a malformed expense with no
// beneficiaries, which would otherwise divide by zero.
func Balances(g domain.Group, expenses []domain.Expense, rates domain.RateTable) (map[string]float64, []domain.RatePair, error) {
	bal := make(map[string]float64, len(g.Members))
	for _, m := range g.Members {
		bal[m] = 0
	}

	missing := make(map[domain.RatePair]struct{})

	for _, e := range expenses {
		if e.GroupID != g.ID {
			continue
		}

		if len(e.For) == 0 {
			return nil, nil, domain.ErrNoBeneficiaries
		}

		currency := e.Currency
		if currency == "" {
			currency = g.Currency
		}

		factor, ok := rates.Factor(currency, g.Currency)
		if !ok {
			factor = 1
			missing[domain.RatePair{From: currency, To: g.Currency}] = struct{}{}
		}

		amount := e.Amount * factor
		share := amount / float64(len(e.For))

		bal[e.Payer] += amount
		for _, m := range e.For {
			bal[m] -= share
		}
	}

	for m := range bal {
		bal[m] = roundCents(bal[m])
	}

	return bal, sortedPairs(missing), nil
}

func sortedPairs(set map[domain.RatePair]struct{}) []domain.RatePair {
	if len(set) == 0 {
		return nil
	}

	pairs := make([]domain.RatePair, 0, len(set))
	for p := range set {
		pairs = append(pairs, p)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].From != pairs[j].From {
			return pairs[i].From < pairs[j].From
		}

		return pairs[i].To < pairs[j].To
	})

	return pairs
}
