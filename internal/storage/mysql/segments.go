package mysql

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
)

const selectSegmentSQL = `
SELECT
  s.id, s.route_id, s.day_number, s.segment_date,
  s.from_location_id, s.to_location_id, s.distance, s.segment_order, s.notes,
  fl.name, tl.name
FROM route_segments s
LEFT JOIN locations fl ON fl.id = s.from_location_id
LEFT JOIN locations tl ON tl.id = s.to_location_id
`

const insertSegmentSQL = `
INSERT INTO route_segments
  (id, route_id, day_number, segment_date, from_location_id, to_location_id,
   distance, segment_order, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateSegmentSQL = `
UPDATE route_segments SET
  day_number = ?, segment_date = ?, from_location_id = ?, to_location_id = ?,
  distance = ?, segment_order = ?, notes = ?
WHERE id = ? AND route_id = ?
`

func (r *Repo) ListSegments(ctx context.Context, routeID string) ([]domain.SegmentView, error) {
	rows, err := r.db.QueryContext(ctx,
		selectSegmentSQL+"WHERE s.route_id = ? ORDER BY s.segment_order, s.day_number", routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.SegmentView{}
	for rows.Next() {
		sv, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		stops, err := r.ListStops(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Stops = stops
	}
	return out, nil
}

func (r *Repo) GetSegment(ctx context.Context, id, routeID string) (domain.SegmentView, error) {
	row := r.db.QueryRowContext(ctx, selectSegmentSQL+"WHERE s.id = ? AND s.route_id = ?", id, routeID)
	sv, err := scanSegment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SegmentView{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.SegmentView{}, err
	}
	sv.Stops, err = r.ListStops(ctx, sv.ID)
	return sv, err
}

func (r *Repo) MaxDayNumber(ctx context.Context, routeID string) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(day_number), 0) FROM route_segments WHERE route_id = ?", routeID).Scan(&max)
	return max, err
}

func (r *Repo) CreateSegment(ctx context.Context, s *domain.Segment) error {
	if s.ID == "" {
		s.ID = newID()
	}
	_, err := r.db.ExecContext(ctx, insertSegmentSQL,
		s.ID, s.RouteID, s.DayNumber, dateVal(s.SegmentDate),
		valStr(s.FromLocationID), valStr(s.ToLocationID), valF64(s.Distance),
		s.SegmentOrder, valStr(s.Notes),
	)
	return err
}

func (r *Repo) UpdateSegment(ctx context.Context, s *domain.Segment) error {
	res, err := r.db.ExecContext(ctx, updateSegmentSQL,
		s.DayNumber, dateVal(s.SegmentDate), valStr(s.FromLocationID), valStr(s.ToLocationID),
		valF64(s.Distance), s.SegmentOrder, valStr(s.Notes),
		s.ID, s.RouteID,
	)
	if err != nil {
		return err
	}
	// zero rows can mean "same values"; only 404 when the row is absent
	if n, _ := res.RowsAffected(); n == 0 {
		return r.segmentExists(ctx, s.ID, s.RouteID)
	}
	return nil
}

func (r *Repo) DeleteSegment(ctx context.Context, id, routeID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM route_segments WHERE id = ? AND route_id = ?", id, routeID)
	return mustAffect(res, err)
}

// ReorderSegments applies each (id, order) pair scoped to the route in
// one transaction; a bad id rolls the whole batch back.
func (r *Repo) ReorderSegments(ctx context.Context, routeID string, updates []domain.OrderUpdate) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range updates {
			res, err := tx.ExecContext(ctx,
				"UPDATE route_segments SET segment_order = ? WHERE id = ? AND route_id = ?",
				u.Order, u.ID, routeID)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				var one int
				err := tx.QueryRowContext(ctx,
					"SELECT 1 FROM route_segments WHERE id = ? AND route_id = ?", u.ID, routeID).Scan(&one)
				if errors.Is(err, sql.ErrNoRows) {
					return domain.ErrNotFound
				}
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *Repo) segmentExists(ctx context.Context, id, routeID string) error {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM route_segments WHERE id = ? AND route_id = ?", id, routeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func scanSegment(row rowScanner) (domain.SegmentView, error) {
	var sv domain.SegmentView
	var segDate nullDate
	var from, to, notes, fromName, toName sql.NullString
	var dist sql.NullFloat64
	if err := row.Scan(
		&sv.ID, &sv.RouteID, &sv.DayNumber, &segDate,
		&from, &to, &dist, &sv.SegmentOrder, &notes,
		&fromName, &toName,
	); err != nil {
		return domain.SegmentView{}, err
	}
	sv.SegmentDate = segDate.ptr()
	sv.FromLocationID = ptrStr(from)
	sv.ToLocationID = ptrStr(to)
	sv.Distance = ptrF64(dist)
	sv.Notes = ptrStr(notes)
	sv.FromLocationName = ptrStr(fromName)
	sv.ToLocationName = ptrStr(toName)
	sv.Stops = []domain.StopView{}
	return sv, nil
}

// ---- stops ----

func (r *Repo) ListStops(ctx context.Context, segmentID string) ([]domain.StopView, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT st.id, st.segment_id, st.location_id, st.stop_order, st.notes, l.name
FROM segment_stops st
LEFT JOIN locations l ON l.id = st.location_id
WHERE st.segment_id = ?
ORDER BY st.stop_order, st.id`, segmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.StopView{}
	for rows.Next() {
		var sv domain.StopView
		var notes, name sql.NullString
		if err := rows.Scan(&sv.ID, &sv.SegmentID, &sv.LocationID, &sv.StopOrder, &notes, &name); err != nil {
			return nil, err
		}
		sv.Notes = ptrStr(notes)
		sv.LocationName = ptrStr(name)
		out = append(out, sv)
	}
	return out, rows.Err()
}

func (r *Repo) CreateStop(ctx context.Context, st *domain.Stop) error {
	if st.ID == "" {
		st.ID = newID()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO segment_stops (id, segment_id, location_id, stop_order, notes) VALUES (?, ?, ?, ?, ?)",
		st.ID, st.SegmentID, st.LocationID, st.StopOrder, valStr(st.Notes))
	return err
}

func (r *Repo) ReorderStops(ctx context.Context, segmentID string, updates []domain.OrderUpdate) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range updates {
			res, err := tx.ExecContext(ctx,
				"UPDATE segment_stops SET stop_order = ? WHERE id = ? AND segment_id = ?",
				u.Order, u.ID, segmentID)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				var one int
				err := tx.QueryRowContext(ctx,
					"SELECT 1 FROM segment_stops WHERE id = ? AND segment_id = ?", u.ID, segmentID).Scan(&one)
				if errors.Is(err, sql.ErrNoRows) {
					return domain.ErrNotFound
				}
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *Repo) DeleteStop(ctx context.Context, id, segmentID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM segment_stops WHERE id = ? AND segment_id = ?", id, segmentID)
	return mustAffect(res, err)
}
