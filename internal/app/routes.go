package app

import (
	"context"

	"tourops/internal/domain"
)

// RouteService owns the Route lifecycle: flat CRUD plus the shallow
// duplicate operation.
type RouteService struct {
	repo  domain.RouteRepository
	cache domain.Cache
}

func NewRouteService(repo domain.RouteRepository, cache domain.Cache) *RouteService {
	return &RouteService{repo: repo, cache: cache}
}

func (s *RouteService) List(ctx context.Context) ([]domain.Route, error) {
	return s.repo.ListRoutes(ctx)
}

func (s *RouteService) Create(ctx context.Context, r domain.Route) (domain.Route, error) {
	if err := r.Normalize(); err != nil {
		return domain.Route{}, err
	}
	if err := s.repo.CreateRoute(ctx, &r); err != nil {
		return domain.Route{}, err
	}
	return r, nil
}

func (s *RouteService) Update(ctx context.Context, r domain.Route) (domain.Route, error) {
	if err := r.Normalize(); err != nil {
		return domain.Route{}, err
	}
	if err := s.repo.UpdateRoute(ctx, &r); err != nil {
		return domain.Route{}, err
	}
	invalidateRoute(ctx, s.cache, r.ID)
	return r, nil
}

func (s *RouteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteRoute(ctx, id); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, id)
	return nil
}

// Duplicate copies only the top-level scalar fields of a route into a
// new identity. Segments, logistics, participants, transfers and
// transactions are intentionally not copied: a duplicate starts empty.
func (s *RouteService) Duplicate(ctx context.Context, id string, name string) (domain.Route, error) {
	src, err := s.repo.GetRoute(ctx, id)
	if err != nil {
		return domain.Route{}, err
	}
	cp := src
	cp.ID = ""
	cp.Name = name
	if cp.Name == "" {
		cp.Name = src.Name + " (Copy)"
	}
	if err := s.repo.CreateRoute(ctx, &cp); err != nil {
		return domain.Route{}, err
	}
	return cp, nil
}
