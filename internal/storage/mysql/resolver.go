package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tourops/internal/domain"
)

// ResolveName maps a tagged {type, id} reference to a display name by
// dispatching to a per-type lookup. A reference that does not resolve
// yields (nil, nil) so read views can render a missing name as null.
func (r *Repo) ResolveName(ctx context.Context, ref domain.EntityRef) (*string, error) {
	if ref.ID == "" {
		return nil, nil
	}
	switch ref.Type {
	case domain.EntityClient:
		return r.lookupName(ctx, "SELECT name FROM clients WHERE id=?", ref.ID)
	case domain.EntityGuide:
		return r.lookupName(ctx, "SELECT name FROM guides WHERE id=?", ref.ID)
	case domain.EntityHotel:
		return r.lookupName(ctx, "SELECT name FROM hotels WHERE id=?", ref.ID)
	case domain.EntityLocation:
		return r.lookupName(ctx, "SELECT name FROM locations WHERE id=?", ref.ID)
	case domain.EntityThirdParty:
		return r.lookupName(ctx, "SELECT name FROM third_parties WHERE id=?", ref.ID)
	case domain.EntityVehicle:
		return r.vehicleLabel(ctx, ref.ID)
	default:
		return nil, fmt.Errorf("unknown entity type %q", ref.Type)
	}
}

func (r *Repo) lookupName(ctx context.Context, query, id string) (*string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &name, nil
}

// vehicleLabel renders "<type> - <owner>", where the owner is the
// hotel or third party the vehicle belongs to, or "Company" for fleet
// vehicles.
func (r *Repo) vehicleLabel(ctx context.Context, id string) (*string, error) {
	var vehicleType string
	var hotelName, thirdPartyName sql.NullString
	err := r.db.QueryRowContext(ctx, `
SELECT v.vehicle_type, h.name, tp.name
FROM vehicles v
LEFT JOIN hotels h ON h.id = v.hotel_id
LEFT JOIN third_parties tp ON tp.id = v.third_party_id
WHERE v.id = ?`, id).Scan(&vehicleType, &hotelName, &thirdPartyName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	owner := "Company"
	switch {
	case hotelName.Valid:
		owner = hotelName.String
	case thirdPartyName.Valid:
		owner = thirdPartyName.String
	}
	label := vehicleType + " - " + owner
	return &label, nil
}
