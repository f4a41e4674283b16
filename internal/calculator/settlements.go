package calculator

import (
	"math"
	"sort"

	"github.com/cashsplit/cashsplit/internal/domain"
)

const (
	// minTransaction suppresses rounding dust: transactions at or below half
	// a cent are not worth emitting.
	minTransaction = 0.005
	// epsilon absorbs floating-point drift when deciding that a cursor's
	// remaining balance has reached zero.
	epsilon = 1e-9
)

type memberBalance struct {
	member  string
	balance float64
}

// Settlements returns a near-minimal list of transactions that zeroes the
// given balance mapping. Debtors are matched against creditors greedily,
// largest imbalances first, which bounds the plan at |debtors|+|creditors|-1
// transactions in the typical case.
//
// Ties are broken by member identifier so the plan is deterministic. If the
// balances do not sum to zero (corrupt input) the residual is left unmatched
// on one side; no error is raised here, the zero-sum invariant is checked
// upstream and in tests.
func Settlements(balances map[string]float64) []domain.Transaction {
	var debtors, creditors []memberBalance

	for m, b := range balances {
		switch {
		case b < -epsilon:
			debtors = append(debtors, memberBalance{member: m, balance: b})
		case b > epsilon:
			creditors = append(creditors, memberBalance{member: m, balance: b})
		}
	}

	// Most negative debtor first, most positive creditor first.
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].balance != debtors[j].balance {
			return debtors[i].balance < debtors[j].balance
		}

		return debtors[i].member < debtors[j].member
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].balance != creditors[j].balance {
			return creditors[i].balance > creditors[j].balance
		}

		return creditors[i].member < creditors[j].member
	})

	var plan []domain.Transaction

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		pay := math.Min(-debtors[i].balance, creditors[j].balance)

		if pay > minTransaction {
			plan = append(plan, domain.Transaction{
				From:   debtors[i].member,
				To:     creditors[j].member,
				Amount: roundCents(pay),
			})
		}

		debtors[i].balance += pay
		creditors[j].balance -= pay

		if math.Abs(debtors[i].balance) < epsilon {
			i++
		}

		if math.Abs(creditors[j].balance) < epsilon {
			j++
		}
	}

	return plan
}
