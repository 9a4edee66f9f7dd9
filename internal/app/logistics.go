package app

import (
	"context"

	"tourops/internal/domain"
)

// LogisticsService owns cost/resource line items on a route.
type LogisticsService struct {
	repo   domain.LogisticsRepository
	routes domain.RouteRepository
	cache  domain.Cache
}

func NewLogisticsService(repo domain.LogisticsRepository, routes domain.RouteRepository, cache domain.Cache) *LogisticsService {
	return &LogisticsService{repo: repo, routes: routes, cache: cache}
}

func (s *LogisticsService) List(ctx context.Context, routeID string) ([]domain.LogisticsView, error) {
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return nil, err
	}
	return s.repo.ListLogistics(ctx, routeID)
}

func (s *LogisticsService) Create(ctx context.Context, routeID string, l domain.Logistics) (domain.Logistics, error) {
	if err := l.Validate(); err != nil {
		return domain.Logistics{}, err
	}
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return domain.Logistics{}, err
	}
	l.RouteID = routeID
	if l.Quantity == 0 {
		l.Quantity = 1
	}
	if err := s.repo.CreateLogistics(ctx, &l); err != nil {
		return domain.Logistics{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return l, nil
}

func (s *LogisticsService) Update(ctx context.Context, routeID, id string, l domain.Logistics) (domain.Logistics, error) {
	if err := l.Validate(); err != nil {
		return domain.Logistics{}, err
	}
	l.ID = id
	l.RouteID = routeID
	if err := s.repo.UpdateLogistics(ctx, &l); err != nil {
		return domain.Logistics{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return l, nil
}

func (s *LogisticsService) Delete(ctx context.Context, routeID, id string) error {
	if err := s.repo.DeleteLogistics(ctx, id, routeID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}
