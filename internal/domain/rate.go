package domain

import "time"

// RatePair is a directed currency pair, e.g. {From: "USD", To: "EUR"}.
// It replaces the concatenated "USD->EUR" string keys of ad-hoc rate maps.
type RatePair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RateTable maps directed currency pairs to positive conversion factors:
// amountInTo = amountInFrom * table[RatePair{From, To}].
// The table is sparse; only fetched pairs are present.
type RateTable map[RatePair]float64

// Factor returns the conversion factor for the pair and whether the table
// holds it. Identical currencies always convert with factor 1.
func (t RateTable) Factor(from, to string) (float64, bool) {
	if from == to {
		return 1, true
	}

	f, ok := t[RatePair{From: from, To: to}]

	return f, ok
}

// Rate is a stored conversion factor for a directed currency pair.
type Rate struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
}
