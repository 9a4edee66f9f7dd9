package app

import (
	"context"

	"tourops/internal/domain"
)

// TransferService owns inter-location transfers with their vehicle
// assignments and rider lists.
type TransferService struct {
	repo   domain.TransferRepository
	routes domain.RouteRepository
	roster domain.ParticipantRepository
	cache  domain.Cache
}

func NewTransferService(
	repo domain.TransferRepository,
	routes domain.RouteRepository,
	roster domain.ParticipantRepository,
	cache domain.Cache,
) *TransferService {
	return &TransferService{repo: repo, routes: routes, roster: roster, cache: cache}
}

// TransferInput carries transfer fields plus both child sets. On
// update the child sets replace whatever the transfer currently holds.
type TransferInput struct {
	TransferDate   *domain.Date   `json:"transferDate"`
	FromLocationID string         `json:"fromLocationId"`
	ToLocationID   string         `json:"toLocationId"`
	Notes          *string        `json:"notes"`
	Vehicles       []VehicleInput `json:"vehicles"`
	Participants   []RiderInput   `json:"participants"`
}

type VehicleInput struct {
	VehicleID       string  `json:"vehicleId"`
	DriverPilotName *string `json:"driverPilotName"`
	Quantity        int     `json:"quantity"`
	Cost            float64 `json:"cost"`
	IsOwnVehicle    bool    `json:"isOwnVehicle"`
	Notes           *string `json:"notes"`
}

type RiderInput struct {
	ParticipantID string `json:"participantId"`
}

func (s *TransferService) List(ctx context.Context, routeID string) ([]domain.TransferView, error) {
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return nil, err
	}
	return s.repo.ListTransfers(ctx, routeID)
}

func (s *TransferService) Create(ctx context.Context, routeID string, in TransferInput) (domain.Transfer, error) {
	t := domain.Transfer{
		RouteID:        routeID,
		TransferDate:   in.TransferDate,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Notes:          in.Notes,
	}
	if err := t.Validate(); err != nil {
		return domain.Transfer{}, err
	}
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return domain.Transfer{}, err
	}
	vehicles, riders, err := s.children(ctx, routeID, in)
	if err != nil {
		return domain.Transfer{}, err
	}
	if err := s.repo.CreateTransfer(ctx, &t, vehicles, riders); err != nil {
		return domain.Transfer{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	// re-read so the response carries the total derived from the
	// vehicle assignments just written
	return s.repo.GetTransfer(ctx, t.ID, routeID)
}

// Update rewrites the transfer and replaces both child sets in one
// transaction: afterwards the transfer holds exactly in.Vehicles and
// in.Participants.
func (s *TransferService) Update(ctx context.Context, routeID, id string, in TransferInput) (domain.Transfer, error) {
	t := domain.Transfer{
		ID:             id,
		RouteID:        routeID,
		TransferDate:   in.TransferDate,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Notes:          in.Notes,
	}
	if err := t.Validate(); err != nil {
		return domain.Transfer{}, err
	}
	if _, err := s.repo.GetTransfer(ctx, id, routeID); err != nil {
		return domain.Transfer{}, err
	}
	vehicles, riders, err := s.children(ctx, routeID, in)
	if err != nil {
		return domain.Transfer{}, err
	}
	if err := s.repo.UpdateTransfer(ctx, &t, vehicles, riders); err != nil {
		return domain.Transfer{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return s.repo.GetTransfer(ctx, t.ID, routeID)
}

func (s *TransferService) Delete(ctx context.Context, routeID, id string) error {
	if err := s.repo.DeleteTransfer(ctx, id, routeID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

func (s *TransferService) AddVehicle(ctx context.Context, routeID, transferID string, in VehicleInput) (domain.TransferVehicle, error) {
	if in.VehicleID == "" {
		return domain.TransferVehicle{}, domain.Invalidf("vehicleId is required")
	}
	if _, err := s.repo.GetTransfer(ctx, transferID, routeID); err != nil {
		return domain.TransferVehicle{}, err
	}
	v := vehicleFromInput(transferID, in)
	if err := s.repo.AddTransferVehicle(ctx, &v); err != nil {
		return domain.TransferVehicle{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return v, nil
}

func (s *TransferService) RemoveVehicle(ctx context.Context, routeID, transferID, id string) error {
	if _, err := s.repo.GetTransfer(ctx, transferID, routeID); err != nil {
		return err
	}
	if err := s.repo.RemoveTransferVehicle(ctx, id, transferID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

// AddRider attaches a route participant as a rider. A participant from
// another route is a validation error; a duplicate pair is a conflict.
func (s *TransferService) AddRider(ctx context.Context, routeID, transferID, participantID string) (domain.TransferRider, error) {
	if _, err := s.repo.GetTransfer(ctx, transferID, routeID); err != nil {
		return domain.TransferRider{}, err
	}
	if _, err := s.roster.GetParticipant(ctx, participantID, routeID); err != nil {
		return domain.TransferRider{}, domain.Invalidf("participant %s does not belong to this route", participantID)
	}
	r := domain.TransferRider{TransferID: transferID, ParticipantID: participantID}
	if err := s.repo.AddTransferRider(ctx, &r); err != nil {
		return domain.TransferRider{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return r, nil
}

func (s *TransferService) RemoveRider(ctx context.Context, routeID, transferID, participantID string) error {
	if _, err := s.repo.GetTransfer(ctx, transferID, routeID); err != nil {
		return err
	}
	if err := s.repo.RemoveTransferRider(ctx, transferID, participantID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

func (s *TransferService) children(ctx context.Context, routeID string, in TransferInput) ([]domain.TransferVehicle, []domain.TransferRider, error) {
	vehicles := make([]domain.TransferVehicle, 0, len(in.Vehicles))
	for _, v := range in.Vehicles {
		if v.VehicleID == "" {
			return nil, nil, domain.Invalidf("vehicleId is required for transfer vehicles")
		}
		vehicles = append(vehicles, vehicleFromInput("", v))
	}
	riders := make([]domain.TransferRider, 0, len(in.Participants))
	for _, r := range in.Participants {
		if _, err := s.roster.GetParticipant(ctx, r.ParticipantID, routeID); err != nil {
			return nil, nil, domain.Invalidf("participant %s does not belong to this route", r.ParticipantID)
		}
		riders = append(riders, domain.TransferRider{ParticipantID: r.ParticipantID})
	}
	return vehicles, riders, nil
}

func vehicleFromInput(transferID string, in VehicleInput) domain.TransferVehicle {
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	return domain.TransferVehicle{
		TransferID:      transferID,
		VehicleID:       in.VehicleID,
		DriverPilotName: in.DriverPilotName,
		Quantity:        qty,
		Cost:            in.Cost,
		IsOwnVehicle:    in.IsOwnVehicle,
		Notes:           in.Notes,
	}
}
