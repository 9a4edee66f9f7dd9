package app

import (
	"context"

	"tourops/internal/domain"
)

// ParticipantService owns the route roster and the segment membership
// join table.
type ParticipantService struct {
	repo     domain.ParticipantRepository
	routes   domain.RouteRepository
	segments domain.SegmentRepository
	cache    domain.Cache
}

func NewParticipantService(
	repo domain.ParticipantRepository,
	routes domain.RouteRepository,
	segments domain.SegmentRepository,
	cache domain.Cache,
) *ParticipantService {
	return &ParticipantService{repo: repo, routes: routes, segments: segments, cache: cache}
}

func (s *ParticipantService) List(ctx context.Context, routeID string) ([]domain.Participant, error) {
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return nil, err
	}
	return s.repo.ListParticipants(ctx, routeID)
}

func (s *ParticipantService) Create(ctx context.Context, routeID string, p domain.Participant) (domain.Participant, error) {
	if err := p.Validate(); err != nil {
		return domain.Participant{}, err
	}
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return domain.Participant{}, err
	}
	p.RouteID = routeID
	if err := s.repo.CreateParticipant(ctx, &p); err != nil {
		return domain.Participant{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return p, nil
}

func (s *ParticipantService) Update(ctx context.Context, routeID, id string, p domain.Participant) (domain.Participant, error) {
	if err := p.Validate(); err != nil {
		return domain.Participant{}, err
	}
	p.ID = id
	p.RouteID = routeID
	if err := s.repo.UpdateParticipant(ctx, &p); err != nil {
		return domain.Participant{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return p, nil
}

func (s *ParticipantService) Delete(ctx context.Context, routeID, id string) error {
	if err := s.repo.DeleteParticipant(ctx, id, routeID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

// SetSegments replaces the participant's segment membership with the
// given set, atomically. Every segment must belong to the same route.
func (s *ParticipantService) SetSegments(ctx context.Context, routeID, participantID string, segmentIDs []string) error {
	if _, err := s.repo.GetParticipant(ctx, participantID, routeID); err != nil {
		return err
	}
	for _, segID := range segmentIDs {
		if _, err := s.segments.GetSegment(ctx, segID, routeID); err != nil {
			return domain.Invalidf("segment %s does not belong to this route", segID)
		}
	}
	if err := s.repo.SetParticipantSegments(ctx, participantID, segmentIDs); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

// AddToSegment attaches one participant to one segment. Unlike the
// bulk SetSegments path, an existing pair is reported as a conflict.
func (s *ParticipantService) AddToSegment(ctx context.Context, routeID, segmentID, participantID string) error {
	if _, err := s.segments.GetSegment(ctx, segmentID, routeID); err != nil {
		return err
	}
	if _, err := s.repo.GetParticipant(ctx, participantID, routeID); err != nil {
		return err
	}
	if err := s.repo.AddParticipantToSegment(ctx, segmentID, participantID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

func (s *ParticipantService) RemoveFromSegment(ctx context.Context, routeID, segmentID, participantID string) error {
	if _, err := s.segments.GetSegment(ctx, segmentID, routeID); err != nil {
		return err
	}
	if err := s.repo.RemoveParticipantFromSegment(ctx, segmentID, participantID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}
