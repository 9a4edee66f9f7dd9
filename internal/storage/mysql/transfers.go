package mysql

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
)

// totalCost is derived from the vehicle assignments on every read
// rather than maintained as a stored aggregate.
const selectTransferSQL = `
SELECT
  t.id, t.route_id, t.transfer_date, t.from_location_id, t.to_location_id, t.notes,
  COALESCE((SELECT SUM(tv.quantity * tv.cost) FROM transfer_vehicles tv WHERE tv.transfer_id = t.id), 0),
  fl.name, tl.name
FROM transfers t
LEFT JOIN locations fl ON fl.id = t.from_location_id
LEFT JOIN locations tl ON tl.id = t.to_location_id
`

const selectRidersSQL = `
SELECT tp.id, tp.transfer_id, tp.participant_id, c.name, g.name, p.role
FROM transfer_participants tp
JOIN route_participants p ON p.id = tp.participant_id
LEFT JOIN clients c ON c.id = p.client_id
LEFT JOIN guides g ON g.id = p.guide_id
WHERE tp.transfer_id = ?
ORDER BY tp.id
`

func (r *Repo) ListTransfers(ctx context.Context, routeID string) ([]domain.TransferView, error) {
	rows, err := r.db.QueryContext(ctx,
		selectTransferSQL+"WHERE t.route_id = ? ORDER BY t.transfer_date, t.id", routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TransferView{}
	for rows.Next() {
		var tv domain.TransferView
		var date nullDate
		var notes, fromName, toName sql.NullString
		if err := rows.Scan(
			&tv.ID, &tv.RouteID, &date, &tv.FromLocationID, &tv.ToLocationID, &notes,
			&tv.TotalCost, &fromName, &toName,
		); err != nil {
			return nil, err
		}
		tv.TransferDate = date.ptr()
		tv.Notes = ptrStr(notes)
		tv.FromLocationName = ptrStr(fromName)
		tv.ToLocationName = ptrStr(toName)
		out = append(out, tv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Vehicles, err = r.listTransferVehicles(ctx, out[i].ID); err != nil {
			return nil, err
		}
		if out[i].Participants, err = r.listTransferRiders(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repo) GetTransfer(ctx context.Context, id, routeID string) (domain.Transfer, error) {
	var t domain.Transfer
	var date nullDate
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx, `
SELECT t.id, t.route_id, t.transfer_date, t.from_location_id, t.to_location_id, t.notes,
  COALESCE((SELECT SUM(tv.quantity * tv.cost) FROM transfer_vehicles tv WHERE tv.transfer_id = t.id), 0)
FROM transfers t
WHERE t.id = ? AND t.route_id = ?`, id, routeID).Scan(
		&t.ID, &t.RouteID, &date, &t.FromLocationID, &t.ToLocationID, &notes, &t.TotalCost)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transfer{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Transfer{}, err
	}
	t.TransferDate = date.ptr()
	t.Notes = ptrStr(notes)
	return t, nil
}

// CreateTransfer inserts the transfer with both child sets atomically.
// Duplicate riders in the input collapse silently via INSERT IGNORE.
func (r *Repo) CreateTransfer(ctx context.Context, t *domain.Transfer, vehicles []domain.TransferVehicle, riders []domain.TransferRider) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO transfers (id, route_id, transfer_date, from_location_id, to_location_id, notes) VALUES (?, ?, ?, ?, ?, ?)",
			t.ID, t.RouteID, dateVal(t.TransferDate), t.FromLocationID, t.ToLocationID, valStr(t.Notes)); err != nil {
			return err
		}
		return insertTransferChildren(ctx, tx, t.ID, vehicles, riders)
	})
}

// UpdateTransfer rewrites the transfer row and replaces both child
// sets: delete everything, reinsert the supplied rows, one transaction.
func (r *Repo) UpdateTransfer(ctx context.Context, t *domain.Transfer, vehicles []domain.TransferVehicle, riders []domain.TransferRider) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE transfers SET transfer_date = ?, from_location_id = ?, to_location_id = ?, notes = ? WHERE id = ? AND route_id = ?",
			dateVal(t.TransferDate), t.FromLocationID, t.ToLocationID, valStr(t.Notes), t.ID, t.RouteID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var one int
			err := tx.QueryRowContext(ctx,
				"SELECT 1 FROM transfers WHERE id = ? AND route_id = ?", t.ID, t.RouteID).Scan(&one)
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			if err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM transfer_vehicles WHERE transfer_id = ?", t.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM transfer_participants WHERE transfer_id = ?", t.ID); err != nil {
			return err
		}
		return insertTransferChildren(ctx, tx, t.ID, vehicles, riders)
	})
}

func (r *Repo) DeleteTransfer(ctx context.Context, id, routeID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transfers WHERE id = ? AND route_id = ?", id, routeID)
	return mustAffect(res, err)
}

func (r *Repo) AddTransferVehicle(ctx context.Context, v *domain.TransferVehicle) error {
	if v.ID == "" {
		v.ID = newID()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO transfer_vehicles (id, transfer_id, vehicle_id, driver_pilot_name, quantity, cost, is_own_vehicle, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		v.ID, v.TransferID, v.VehicleID, valStr(v.DriverPilotName), v.Quantity, v.Cost, v.IsOwnVehicle, valStr(v.Notes))
	return err
}

func (r *Repo) RemoveTransferVehicle(ctx context.Context, id, transferID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transfer_vehicles WHERE id = ? AND transfer_id = ?", id, transferID)
	return mustAffect(res, err)
}

func (r *Repo) AddTransferRider(ctx context.Context, rd *domain.TransferRider) error {
	if rd.ID == "" {
		rd.ID = newID()
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO transfer_participants (id, transfer_id, participant_id) VALUES (?, ?, ?)",
		rd.ID, rd.TransferID, rd.ParticipantID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *Repo) RemoveTransferRider(ctx context.Context, transferID, participantID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transfer_participants WHERE transfer_id = ? AND participant_id = ?",
		transferID, participantID)
	return mustAffect(res, err)
}

func (r *Repo) listTransferVehicles(ctx context.Context, transferID string) ([]domain.TransferVehicleView, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, transfer_id, vehicle_id, driver_pilot_name, quantity, cost, is_own_vehicle, notes
FROM transfer_vehicles
WHERE transfer_id = ?
ORDER BY id`, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TransferVehicleView{}
	for rows.Next() {
		var vv domain.TransferVehicleView
		var driver, notes sql.NullString
		if err := rows.Scan(&vv.ID, &vv.TransferID, &vv.VehicleID, &driver, &vv.Quantity, &vv.Cost, &vv.IsOwnVehicle, &notes); err != nil {
			return nil, err
		}
		vv.DriverPilotName = ptrStr(driver)
		vv.Notes = ptrStr(notes)
		out = append(out, vv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		label, err := r.ResolveName(ctx, domain.EntityRef{Type: domain.EntityVehicle, ID: out[i].VehicleID})
		if err != nil {
			return nil, err
		}
		out[i].VehicleLabel = label
	}
	return out, nil
}

func (r *Repo) listTransferRiders(ctx context.Context, transferID string) ([]domain.TransferRiderView, error) {
	rows, err := r.db.QueryContext(ctx, selectRidersSQL, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TransferRiderView{}
	for rows.Next() {
		var rv domain.TransferRiderView
		var clientName, guideName, role sql.NullString
		if err := rows.Scan(&rv.ID, &rv.TransferID, &rv.ParticipantID, &clientName, &guideName, &role); err != nil {
			return nil, err
		}
		switch {
		case clientName.Valid:
			rv.ParticipantName = clientName.String
		case guideName.Valid:
			rv.ParticipantName = guideName.String
		default:
			rv.ParticipantName = "Staff"
		}
		rv.Role = ptrStr(role)
		out = append(out, rv)
	}
	return out, rows.Err()
}

func insertTransferChildren(ctx context.Context, tx *sql.Tx, transferID string, vehicles []domain.TransferVehicle, riders []domain.TransferRider) error {
	for i := range vehicles {
		if vehicles[i].ID == "" {
			vehicles[i].ID = newID()
		}
		vehicles[i].TransferID = transferID
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO transfer_vehicles (id, transfer_id, vehicle_id, driver_pilot_name, quantity, cost, is_own_vehicle, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			vehicles[i].ID, transferID, vehicles[i].VehicleID, valStr(vehicles[i].DriverPilotName),
			vehicles[i].Quantity, vehicles[i].Cost, vehicles[i].IsOwnVehicle, valStr(vehicles[i].Notes)); err != nil {
			return err
		}
	}
	for i := range riders {
		if riders[i].ID == "" {
			riders[i].ID = newID()
		}
		riders[i].TransferID = transferID
		if _, err := tx.ExecContext(ctx,
			"INSERT IGNORE INTO transfer_participants (id, transfer_id, participant_id) VALUES (?, ?, ?)",
			riders[i].ID, transferID, riders[i].ParticipantID); err != nil {
			return err
		}
	}
	return nil
}
