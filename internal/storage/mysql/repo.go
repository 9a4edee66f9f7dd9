package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}
func ptrInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	i := int(n.Int64)
	return &i
}
func ptrF64(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}

func newID() string { return uuid.NewString() }

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// withTx runs fn inside a transaction, rolling back on error. Every
// multi-statement write in this package goes through it so partially
// applied child sets are never visible to readers.
func (r *Repo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
