package domain

import (
	"context"
	"time"
)

type RouteRepository interface {
	CreateRoute(ctx context.Context, r *Route) error
	GetRoute(ctx context.Context, id string) (Route, error)
	ListRoutes(ctx context.Context) ([]Route, error)
	UpdateRoute(ctx context.Context, r *Route) error
	DeleteRoute(ctx context.Context, id string) error
}

type SegmentRepository interface {
	ListSegments(ctx context.Context, routeID string) ([]SegmentView, error)
	GetSegment(ctx context.Context, id, routeID string) (SegmentView, error)
	MaxDayNumber(ctx context.Context, routeID string) (int, error)
	CreateSegment(ctx context.Context, s *Segment) error
	UpdateSegment(ctx context.Context, s *Segment) error
	DeleteSegment(ctx context.Context, id, routeID string) error
	ReorderSegments(ctx context.Context, routeID string, updates []OrderUpdate) error

	ListStops(ctx context.Context, segmentID string) ([]StopView, error)
	CreateStop(ctx context.Context, st *Stop) error
	ReorderStops(ctx context.Context, segmentID string, updates []OrderUpdate) error
	DeleteStop(ctx context.Context, id, segmentID string) error
}

type AccommodationRepository interface {
	ListAccommodations(ctx context.Context, segmentID string) ([]AccommodationView, error)
	GetAccommodation(ctx context.Context, id, segmentID string) (Accommodation, error)
	CreateAccommodation(ctx context.Context, a *Accommodation) error
	DeleteAccommodation(ctx context.Context, id, segmentID string) error

	// Room writes replace the occupant set atomically.
	CreateRoom(ctx context.Context, rm *Room, occupants []RoomOccupant) error
	UpdateRoom(ctx context.Context, rm *Room, occupants []RoomOccupant) error
	DeleteRoom(ctx context.Context, id, accommodationID string) error
}

type LogisticsRepository interface {
	ListLogistics(ctx context.Context, routeID string) ([]LogisticsView, error)
	CreateLogistics(ctx context.Context, l *Logistics) error
	UpdateLogistics(ctx context.Context, l *Logistics) error
	DeleteLogistics(ctx context.Context, id, routeID string) error
}

type ParticipantRepository interface {
	ListParticipants(ctx context.Context, routeID string) ([]Participant, error)
	GetParticipant(ctx context.Context, id, routeID string) (Participant, error)
	CreateParticipant(ctx context.Context, p *Participant) error
	UpdateParticipant(ctx context.Context, p *Participant) error
	DeleteParticipant(ctx context.Context, id, routeID string) error

	SetParticipantSegments(ctx context.Context, participantID string, segmentIDs []string) error
	AddParticipantToSegment(ctx context.Context, segmentID, participantID string) error
	RemoveParticipantFromSegment(ctx context.Context, segmentID, participantID string) error
}

type TransferRepository interface {
	ListTransfers(ctx context.Context, routeID string) ([]TransferView, error)
	GetTransfer(ctx context.Context, id, routeID string) (Transfer, error)
	CreateTransfer(ctx context.Context, t *Transfer, vehicles []TransferVehicle, riders []TransferRider) error
	UpdateTransfer(ctx context.Context, t *Transfer, vehicles []TransferVehicle, riders []TransferRider) error
	DeleteTransfer(ctx context.Context, id, routeID string) error

	AddTransferVehicle(ctx context.Context, v *TransferVehicle) error
	RemoveTransferVehicle(ctx context.Context, id, transferID string) error
	AddTransferRider(ctx context.Context, r *TransferRider) error
	RemoveTransferRider(ctx context.Context, transferID, participantID string) error
}

type TransactionRepository interface {
	ListTransactions(ctx context.Context, routeID string) ([]Transaction, error)
	CreateTransaction(ctx context.Context, t *Transaction) error
}

// PlannerRepository is the full storage surface the services wire against.
type PlannerRepository interface {
	RouteRepository
	SegmentRepository
	AccommodationRepository
	LogisticsRepository
	ParticipantRepository
	TransferRepository
	TransactionRepository
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
