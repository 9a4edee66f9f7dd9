package mysql

import (
	"context"
	"database/sql"
	"errors"

	"tourops/internal/domain"
)

const selectParticipantSQL = `
SELECT p.id, p.route_id, p.client_id, p.guide_id, p.role, p.is_optional, p.notes,
       c.name, g.name
FROM route_participants p
LEFT JOIN clients c ON c.id = p.client_id
LEFT JOIN guides g ON g.id = p.guide_id
`

func (r *Repo) ListParticipants(ctx context.Context, routeID string) ([]domain.Participant, error) {
	rows, err := r.db.QueryContext(ctx, selectParticipantSQL+"WHERE p.route_id = ? ORDER BY p.id", routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetParticipant(ctx context.Context, id, routeID string) (domain.Participant, error) {
	row := r.db.QueryRowContext(ctx, selectParticipantSQL+"WHERE p.id = ? AND p.route_id = ?", id, routeID)
	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Participant{}, domain.ErrNotFound
	}
	return p, err
}

func (r *Repo) CreateParticipant(ctx context.Context, p *domain.Participant) error {
	if p.ID == "" {
		p.ID = newID()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO route_participants (id, route_id, client_id, guide_id, role, is_optional, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.RouteID, valStr(p.ClientID), valStr(p.GuideID), valStr(p.Role), p.IsOptional, valStr(p.Notes))
	return err
}

func (r *Repo) UpdateParticipant(ctx context.Context, p *domain.Participant) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE route_participants SET client_id = ?, guide_id = ?, role = ?, is_optional = ?, notes = ? WHERE id = ? AND route_id = ?",
		valStr(p.ClientID), valStr(p.GuideID), valStr(p.Role), p.IsOptional, valStr(p.Notes), p.ID, p.RouteID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx,
			"SELECT 1 FROM route_participants WHERE id = ? AND route_id = ?", p.ID, p.RouteID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteParticipant also drops the participant's segment, room and
// transfer memberships via FK cascade.
func (r *Repo) DeleteParticipant(ctx context.Context, id, routeID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM route_participants WHERE id = ? AND route_id = ?", id, routeID)
	return mustAffect(res, err)
}

// SetParticipantSegments replaces the participant's segment membership
// with the given set in one transaction.
func (r *Repo) SetParticipantSegments(ctx context.Context, participantID string, segmentIDs []string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM segment_participants WHERE participant_id = ?", participantID); err != nil {
			return err
		}
		for _, segID := range segmentIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT IGNORE INTO segment_participants (segment_id, participant_id) VALUES (?, ?)",
				segID, participantID); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddParticipantToSegment inserts one membership pair and reports an
// existing pair as a conflict, unlike the idempotent bulk path.
func (r *Repo) AddParticipantToSegment(ctx context.Context, segmentID, participantID string) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO segment_participants (segment_id, participant_id) VALUES (?, ?)",
		segmentID, participantID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *Repo) RemoveParticipantFromSegment(ctx context.Context, segmentID, participantID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM segment_participants WHERE segment_id = ? AND participant_id = ?",
		segmentID, participantID)
	return mustAffect(res, err)
}

func scanParticipant(row rowScanner) (domain.Participant, error) {
	var p domain.Participant
	var clientID, guideID, role, notes, clientName, guideName sql.NullString
	if err := row.Scan(
		&p.ID, &p.RouteID, &clientID, &guideID, &role, &p.IsOptional, &notes,
		&clientName, &guideName,
	); err != nil {
		return domain.Participant{}, err
	}
	p.ClientID = ptrStr(clientID)
	p.GuideID = ptrStr(guideID)
	p.Role = ptrStr(role)
	p.Notes = ptrStr(notes)
	p.ClientName = ptrStr(clientName)
	p.GuideName = ptrStr(guideName)
	return p, nil
}
