package mysql

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
)

const insertLogisticsSQL = `
INSERT INTO logistics
  (id, route_id, segment_id, logistics_type, entity_id, entity_type, item_name,
   quantity, cost, date, driver_pilot_name, is_own_vehicle, vehicle_type, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateLogisticsSQL = `
UPDATE logistics SET
  segment_id = ?, logistics_type = ?, entity_id = ?, entity_type = ?, item_name = ?,
  quantity = ?, cost = ?, date = ?, driver_pilot_name = ?, is_own_vehicle = ?,
  vehicle_type = ?, notes = ?
WHERE id = ? AND route_id = ?
`

const selectLogisticsSQL = `
SELECT id, route_id, segment_id, logistics_type, entity_id, entity_type, item_name,
       quantity, cost, date, driver_pilot_name, is_own_vehicle, vehicle_type, notes
FROM logistics
WHERE route_id = ?
ORDER BY date, id
`

func (r *Repo) ListLogistics(ctx context.Context, routeID string) ([]domain.LogisticsView, error) {
	rows, err := r.db.QueryContext(ctx, selectLogisticsSQL, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.LogisticsView{}
	for rows.Next() {
		var lv domain.LogisticsView
		var segID, entityID, itemName, driver, vehicleType, notes sql.NullString
		var date nullDate
		if err := rows.Scan(
			&lv.ID, &lv.RouteID, &segID, &lv.LogisticsType, &entityID, &lv.EntityType, &itemName,
			&lv.Quantity, &lv.Cost, &date, &driver, &lv.IsOwnVehicle, &vehicleType, &notes,
		); err != nil {
			return nil, err
		}
		lv.SegmentID = ptrStr(segID)
		lv.EntityID = ptrStr(entityID)
		lv.ItemName = ptrStr(itemName)
		lv.Date = date.ptr()
		lv.DriverPilotName = ptrStr(driver)
		lv.VehicleType = ptrStr(vehicleType)
		lv.Notes = ptrStr(notes)
		out = append(out, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// lunch and extra-cost rows carry their own item name; everything
	// else resolves through the entity reference
	for i := range out {
		switch out[i].LogisticsType {
		case domain.LogisticsLunch, domain.LogisticsExtraCost:
			out[i].EntityName = out[i].ItemName
		default:
			if out[i].EntityID == nil {
				continue
			}
			ref := domain.EntityRef{Type: domain.EntityType(out[i].EntityType), ID: *out[i].EntityID}
			name, err := r.ResolveName(ctx, ref)
			if err != nil {
				return nil, err
			}
			out[i].EntityName = name
		}
	}
	return out, nil
}

func (r *Repo) CreateLogistics(ctx context.Context, l *domain.Logistics) error {
	if l.ID == "" {
		l.ID = newID()
	}
	_, err := r.db.ExecContext(ctx, insertLogisticsSQL,
		l.ID, l.RouteID, valStr(l.SegmentID), l.LogisticsType, valStr(l.EntityID),
		l.EntityType, valStr(l.ItemName), l.Quantity, l.Cost, dateVal(l.Date),
		valStr(l.DriverPilotName), l.IsOwnVehicle, valStr(l.VehicleType), valStr(l.Notes),
	)
	return err
}

func (r *Repo) UpdateLogistics(ctx context.Context, l *domain.Logistics) error {
	res, err := r.db.ExecContext(ctx, updateLogisticsSQL,
		valStr(l.SegmentID), l.LogisticsType, valStr(l.EntityID), l.EntityType,
		valStr(l.ItemName), l.Quantity, l.Cost, dateVal(l.Date),
		valStr(l.DriverPilotName), l.IsOwnVehicle, valStr(l.VehicleType), valStr(l.Notes),
		l.ID, l.RouteID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx,
			"SELECT 1 FROM logistics WHERE id = ? AND route_id = ?", l.ID, l.RouteID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *Repo) DeleteLogistics(ctx context.Context, id, routeID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM logistics WHERE id = ? AND route_id = ?", id, routeID)
	return mustAffect(res, err)
}
