package mysql

import (
	"context"
	"database/sql"

	"tourops/internal/domain"
)

const insertTransactionSQL = `
INSERT INTO transactions
  (id, route_id, transaction_date, amount, currency, payment_method, type,
   description, from_account_id, to_account_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (r *Repo) ListTransactions(ctx context.Context, routeID string) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, route_id, transaction_date, amount, currency, payment_method, type,
       description, from_account_id, to_account_id
FROM transactions
WHERE route_id = ?
ORDER BY transaction_date DESC, id`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		var method, desc, from, to sql.NullString
		if err := rows.Scan(
			&t.ID, &t.RouteID, &t.TransactionDate, &t.Amount, &t.Currency,
			&method, &t.Type, &desc, &from, &to,
		); err != nil {
			return nil, err
		}
		t.PaymentMethod = ptrStr(method)
		t.Description = ptrStr(desc)
		t.FromAccountID = ptrStr(from)
		t.ToAccountID = ptrStr(to)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	if t.ID == "" {
		t.ID = newID()
	}
	_, err := r.db.ExecContext(ctx, insertTransactionSQL,
		t.ID, t.RouteID, t.TransactionDate.String(), t.Amount, t.Currency,
		valStr(t.PaymentMethod), t.Type, valStr(t.Description),
		valStr(t.FromAccountID), valStr(t.ToAccountID))
	return err
}
