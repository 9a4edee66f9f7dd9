package mysql

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
)

const insertRoomSQL = `
INSERT INTO accommodation_rooms
  (id, accommodation_id, room_type, room_number, capacity, cost_per_night, notes)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE accommodation_rooms SET
  room_type = ?, room_number = ?, capacity = ?, cost_per_night = ?, notes = ?
WHERE id = ? AND accommodation_id = ?
`

// occupant names: prefer the client, then the guide, else the literal
// "Staff" fallback is applied in Go.
const selectOccupantsSQL = `
SELECT rp.room_id, rp.participant_id, rp.is_couple, c.name, g.name, p.role
FROM room_participants rp
JOIN route_participants p ON p.id = rp.participant_id
LEFT JOIN clients c ON c.id = p.client_id
LEFT JOIN guides g ON g.id = p.guide_id
WHERE rp.room_id = ?
ORDER BY rp.participant_id
`

func (r *Repo) ListAccommodations(ctx context.Context, segmentID string) ([]domain.AccommodationView, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT a.id, a.segment_id, a.hotel_id, a.client_type, a.notes, h.name
FROM accommodations a
LEFT JOIN hotels h ON h.id = a.hotel_id
WHERE a.segment_id = ?
ORDER BY a.id`, segmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.AccommodationView{}
	for rows.Next() {
		var av domain.AccommodationView
		var notes, hotelName sql.NullString
		if err := rows.Scan(&av.ID, &av.SegmentID, &av.HotelID, &av.ClientType, &notes, &hotelName); err != nil {
			return nil, err
		}
		av.Notes = ptrStr(notes)
		av.HotelName = ptrStr(hotelName)
		out = append(out, av)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		rooms, err := r.listRooms(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Rooms = rooms
	}
	return out, nil
}

func (r *Repo) GetAccommodation(ctx context.Context, id, segmentID string) (domain.Accommodation, error) {
	var a domain.Accommodation
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, segment_id, hotel_id, client_type, notes FROM accommodations WHERE id = ? AND segment_id = ?",
		id, segmentID).Scan(&a.ID, &a.SegmentID, &a.HotelID, &a.ClientType, &notes)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Accommodation{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Accommodation{}, err
	}
	a.Notes = ptrStr(notes)
	return a, nil
}

func (r *Repo) CreateAccommodation(ctx context.Context, a *domain.Accommodation) error {
	if a.ID == "" {
		a.ID = newID()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO accommodations (id, segment_id, hotel_id, client_type, notes) VALUES (?, ?, ?, ?, ?)",
		a.ID, a.SegmentID, a.HotelID, a.ClientType, valStr(a.Notes))
	return err
}

func (r *Repo) DeleteAccommodation(ctx context.Context, id, segmentID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM accommodations WHERE id = ? AND segment_id = ?", id, segmentID)
	return mustAffect(res, err)
}

func (r *Repo) listRooms(ctx context.Context, accommodationID string) ([]domain.RoomView, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, accommodation_id, room_type, room_number, capacity, cost_per_night, notes
FROM accommodation_rooms
WHERE accommodation_id = ?
ORDER BY id`, accommodationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RoomView{}
	for rows.Next() {
		var rv domain.RoomView
		var number, notes sql.NullString
		var capacity sql.NullInt64
		if err := rows.Scan(&rv.ID, &rv.AccommodationID, &rv.RoomType, &number, &capacity, &rv.CostPerNight, &notes); err != nil {
			return nil, err
		}
		rv.RoomNumber = ptrStr(number)
		rv.Capacity = ptrInt(capacity)
		rv.Notes = ptrStr(notes)
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		occ, err := r.listOccupants(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Participants = occ
	}
	return out, nil
}

func (r *Repo) listOccupants(ctx context.Context, roomID string) ([]domain.RoomOccupantView, error) {
	rows, err := r.db.QueryContext(ctx, selectOccupantsSQL, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RoomOccupantView{}
	for rows.Next() {
		var ov domain.RoomOccupantView
		var clientName, guideName, role sql.NullString
		if err := rows.Scan(&ov.RoomID, &ov.ParticipantID, &ov.IsCouple, &clientName, &guideName, &role); err != nil {
			return nil, err
		}
		switch {
		case clientName.Valid:
			ov.ParticipantName = clientName.String
		case guideName.Valid:
			ov.ParticipantName = guideName.String
		default:
			ov.ParticipantName = "Staff"
		}
		ov.Role = ptrStr(role)
		out = append(out, ov)
	}
	return out, rows.Err()
}

// CreateRoom inserts the room and its occupant rows atomically.
func (r *Repo) CreateRoom(ctx context.Context, rm *domain.Room, occupants []domain.RoomOccupant) error {
	if rm.ID == "" {
		rm.ID = newID()
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertRoomSQL,
			rm.ID, rm.AccommodationID, rm.RoomType, valStr(rm.RoomNumber),
			valInt(rm.Capacity), rm.CostPerNight, valStr(rm.Notes)); err != nil {
			return err
		}
		return insertOccupants(ctx, tx, rm.ID, occupants)
	})
}

// UpdateRoom rewrites the room fields and replaces the occupant set:
// delete everything, reinsert the supplied rows, one transaction.
func (r *Repo) UpdateRoom(ctx context.Context, rm *domain.Room, occupants []domain.RoomOccupant) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateRoomSQL,
			rm.RoomType, valStr(rm.RoomNumber), valInt(rm.Capacity), rm.CostPerNight, valStr(rm.Notes),
			rm.ID, rm.AccommodationID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var one int
			err := tx.QueryRowContext(ctx,
				"SELECT 1 FROM accommodation_rooms WHERE id = ? AND accommodation_id = ?",
				rm.ID, rm.AccommodationID).Scan(&one)
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			if err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM room_participants WHERE room_id = ?", rm.ID); err != nil {
			return err
		}
		return insertOccupants(ctx, tx, rm.ID, occupants)
	})
}

func (r *Repo) DeleteRoom(ctx context.Context, id, accommodationID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM accommodation_rooms WHERE id = ? AND accommodation_id = ?", id, accommodationID)
	return mustAffect(res, err)
}

func insertOccupants(ctx context.Context, tx *sql.Tx, roomID string, occupants []domain.RoomOccupant) error {
	for _, o := range occupants {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO room_participants (room_id, participant_id, is_couple) VALUES (?, ?, ?)",
			roomID, o.ParticipantID, o.IsCouple); err != nil {
			return err
		}
	}
	return nil
}
