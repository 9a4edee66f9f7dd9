package app

import (
	"context"

	"tourops/internal/domain"
)

// AccommodationService owns hotel bookings under a segment, their
// rooms, and room occupancy.
type AccommodationService struct {
	repo     domain.AccommodationRepository
	segments domain.SegmentRepository
	roster   domain.ParticipantRepository
	cache    domain.Cache
}

func NewAccommodationService(
	repo domain.AccommodationRepository,
	segments domain.SegmentRepository,
	roster domain.ParticipantRepository,
	cache domain.Cache,
) *AccommodationService {
	return &AccommodationService{repo: repo, segments: segments, roster: roster, cache: cache}
}

func (s *AccommodationService) List(ctx context.Context, routeID, segmentID string) ([]domain.AccommodationView, error) {
	if _, err := s.segments.GetSegment(ctx, segmentID, routeID); err != nil {
		return nil, err
	}
	return s.repo.ListAccommodations(ctx, segmentID)
}

func (s *AccommodationService) Create(ctx context.Context, routeID, segmentID string, a domain.Accommodation) (domain.Accommodation, error) {
	if err := a.Validate(); err != nil {
		return domain.Accommodation{}, err
	}
	if _, err := s.segments.GetSegment(ctx, segmentID, routeID); err != nil {
		return domain.Accommodation{}, err
	}
	a.SegmentID = segmentID
	if err := s.repo.CreateAccommodation(ctx, &a); err != nil {
		return domain.Accommodation{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return a, nil
}

func (s *AccommodationService) Delete(ctx context.Context, routeID, segmentID, id string) error {
	if _, err := s.segments.GetSegment(ctx, segmentID, routeID); err != nil {
		return err
	}
	if err := s.repo.DeleteAccommodation(ctx, id, segmentID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

// RoomInput carries room fields plus the full occupant set. The
// occupant set replaces whatever is currently on the room.
type RoomInput struct {
	RoomType     string          `json:"roomType"`
	RoomNumber   *string         `json:"roomNumber"`
	Capacity     *int            `json:"capacity"`
	CostPerNight float64         `json:"costPerNight"`
	Notes        *string         `json:"notes"`
	Participants []OccupantInput `json:"participants"`
}

type OccupantInput struct {
	ParticipantID string `json:"participantId"`
	IsCouple      bool   `json:"isCouple"`
}

func (s *AccommodationService) CreateRoom(ctx context.Context, routeID, segmentID, accommodationID string, in RoomInput) (domain.Room, error) {
	if in.RoomType == "" {
		return domain.Room{}, domain.Invalidf("roomType is required")
	}
	if _, err := s.repo.GetAccommodation(ctx, accommodationID, segmentID); err != nil {
		return domain.Room{}, err
	}
	occupants, err := s.occupants(ctx, routeID, in.Participants)
	if err != nil {
		return domain.Room{}, err
	}
	rm := domain.Room{
		AccommodationID: accommodationID,
		RoomType:        in.RoomType,
		RoomNumber:      in.RoomNumber,
		Capacity:        in.Capacity,
		CostPerNight:    in.CostPerNight,
		Notes:           in.Notes,
	}
	if err := s.repo.CreateRoom(ctx, &rm, occupants); err != nil {
		return domain.Room{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return rm, nil
}

// UpdateRoom replaces the room fields and the full occupant set in one
// transaction: after the call the room holds exactly in.Participants.
func (s *AccommodationService) UpdateRoom(ctx context.Context, routeID, segmentID, accommodationID, roomID string, in RoomInput) (domain.Room, error) {
	if in.RoomType == "" {
		return domain.Room{}, domain.Invalidf("roomType is required")
	}
	if _, err := s.repo.GetAccommodation(ctx, accommodationID, segmentID); err != nil {
		return domain.Room{}, err
	}
	occupants, err := s.occupants(ctx, routeID, in.Participants)
	if err != nil {
		return domain.Room{}, err
	}
	rm := domain.Room{
		ID:              roomID,
		AccommodationID: accommodationID,
		RoomType:        in.RoomType,
		RoomNumber:      in.RoomNumber,
		Capacity:        in.Capacity,
		CostPerNight:    in.CostPerNight,
		Notes:           in.Notes,
	}
	if err := s.repo.UpdateRoom(ctx, &rm, occupants); err != nil {
		return domain.Room{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return rm, nil
}

func (s *AccommodationService) DeleteRoom(ctx context.Context, routeID, segmentID, accommodationID, roomID string) error {
	if _, err := s.repo.GetAccommodation(ctx, accommodationID, segmentID); err != nil {
		return err
	}
	if err := s.repo.DeleteRoom(ctx, roomID, accommodationID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

// occupants validates that each referenced participant belongs to the
// route before any row is written.
func (s *AccommodationService) occupants(ctx context.Context, routeID string, in []OccupantInput) ([]domain.RoomOccupant, error) {
	out := make([]domain.RoomOccupant, 0, len(in))
	for _, o := range in {
		if o.ParticipantID == "" {
			return nil, domain.Invalidf("participantId is required for room participants")
		}
		if _, err := s.roster.GetParticipant(ctx, o.ParticipantID, routeID); err != nil {
			return nil, domain.Invalidf("participant %s does not belong to this route", o.ParticipantID)
		}
		out = append(out, domain.RoomOccupant{ParticipantID: o.ParticipantID, IsCouple: o.IsCouple})
	}
	return out, nil
}
