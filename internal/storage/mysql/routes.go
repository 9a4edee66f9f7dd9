package mysql

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
)

const insertRouteSQL = `
INSERT INTO routes
  (id, name, description, start_date, end_date, duration, status,
   total_distance, estimated_cost, actual_cost, currency, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateRouteSQL = `
UPDATE routes SET
  name = ?, description = ?, start_date = ?, end_date = ?, duration = ?,
  status = ?, total_distance = ?, estimated_cost = ?, actual_cost = ?,
  currency = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const selectRouteCols = `
  id, name, description, start_date, end_date, duration, status,
  total_distance, estimated_cost, actual_cost, currency, notes
`

func (r *Repo) CreateRoute(ctx context.Context, rt *domain.Route) error {
	if rt.ID == "" {
		rt.ID = newID()
	}
	_, err := r.db.ExecContext(ctx, insertRouteSQL,
		rt.ID, rt.Name, valStr(rt.Description), dateVal(rt.StartDate), dateVal(rt.EndDate),
		valInt(rt.Duration), string(rt.Status), valF64(rt.TotalDistance),
		valF64(rt.EstimatedCost), valF64(rt.ActualCost), valStr(rt.Currency), valStr(rt.Notes),
	)
	return err
}

func (r *Repo) GetRoute(ctx context.Context, id string) (domain.Route, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+selectRouteCols+"FROM routes WHERE id = ?", id)
	rt, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Route{}, domain.ErrNotFound
	}
	return rt, err
}

func (r *Repo) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT"+selectRouteCols+"FROM routes ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateRoute(ctx context.Context, rt *domain.Route) error {
	res, err := r.db.ExecContext(ctx, updateRouteSQL,
		rt.Name, valStr(rt.Description), dateVal(rt.StartDate), dateVal(rt.EndDate),
		valInt(rt.Duration), string(rt.Status), valF64(rt.TotalDistance),
		valF64(rt.EstimatedCost), valF64(rt.ActualCost), valStr(rt.Currency), valStr(rt.Notes),
		rt.ID,
	)
	if err != nil {
		return err
	}
	// zero rows can mean "same values"; only 404 when the row is absent
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM routes WHERE id = ?", rt.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteRoute removes the route; segments, logistics, participants,
// transfers and transactions go with it via FK cascade.
func (r *Repo) DeleteRoute(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM routes WHERE id = ?", id)
	return mustAffect(res, err)
}

type rowScanner interface{ Scan(dest ...any) error }

func scanRoute(row rowScanner) (domain.Route, error) {
	var rt domain.Route
	var desc, currency, notes sql.NullString
	var start, end nullDate
	var duration sql.NullInt64
	var dist, est, act sql.NullFloat64
	var status string
	if err := row.Scan(
		&rt.ID, &rt.Name, &desc, &start, &end, &duration, &status,
		&dist, &est, &act, &currency, &notes,
	); err != nil {
		return domain.Route{}, err
	}
	rt.Description = ptrStr(desc)
	rt.StartDate = start.ptr()
	rt.EndDate = end.ptr()
	rt.Duration = ptrInt(duration)
	rt.Status = domain.RouteStatus(status)
	rt.TotalDistance = ptrF64(dist)
	rt.EstimatedCost = ptrF64(est)
	rt.ActualCost = ptrF64(act)
	rt.Currency = ptrStr(currency)
	rt.Notes = ptrStr(notes)
	return rt, nil
}

// mustAffect converts a zero-row write into ErrNotFound so handlers
// can 404 on updates/deletes scoped to a missing or foreign parent.
func mustAffect(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// dateVal unwraps an optional Date for a DATE column parameter.
func dateVal(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// nullDate scans a nullable DATE column.
type nullDate struct {
	date  domain.Date
	valid bool
}

func (n *nullDate) Scan(src any) error {
	if src == nil {
		n.valid = false
		return nil
	}
	if err := n.date.Scan(src); err != nil {
		return err
	}
	n.valid = true
	return nil
}

func (n nullDate) ptr() *domain.Date {
	if !n.valid {
		return nil
	}
	d := n.date
	return &d
}
