package domain

// Transaction is one leg of a settlement plan: From pays To the given amount.
type Transaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
