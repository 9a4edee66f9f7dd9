package domain

// Transaction is a payment record tied to a Route, optionally moving
// money between two accounts.
type Transaction struct {
	ID              string  `json:"id"`
	RouteID         string  `json:"routeId"`
	TransactionDate Date    `json:"transactionDate"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	PaymentMethod   *string `json:"paymentMethod"`
	Type            string  `json:"type"`
	Description     *string `json:"description"`
	FromAccountID   *string `json:"fromAccountId"`
	ToAccountID     *string `json:"toAccountId"`
}

// DefaultCurrency is applied when a transaction omits one.
const DefaultCurrency = "USD"

func (t *Transaction) Normalize() error {
	if t.TransactionDate.IsZero() {
		return Invalidf("transactionDate is required")
	}
	if t.Amount == 0 {
		return Invalidf("amount is required")
	}
	if t.Type == "" {
		return Invalidf("type is required")
	}
	if t.Currency == "" {
		t.Currency = DefaultCurrency
	}
	return nil
}
