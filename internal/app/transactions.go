package app

import (
	"context"

	"tourops/internal/domain"
)

// TransactionService owns payment records on a route.
type TransactionService struct {
	repo   domain.TransactionRepository
	routes domain.RouteRepository
	cache  domain.Cache
}

func NewTransactionService(repo domain.TransactionRepository, routes domain.RouteRepository, cache domain.Cache) *TransactionService {
	return &TransactionService{repo: repo, routes: routes, cache: cache}
}

func (s *TransactionService) List(ctx context.Context, routeID string) ([]domain.Transaction, error) {
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, routeID)
}

func (s *TransactionService) Create(ctx context.Context, routeID string, t domain.Transaction) (domain.Transaction, error) {
	if err := t.Normalize(); err != nil {
		return domain.Transaction{}, err
	}
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return domain.Transaction{}, err
	}
	t.RouteID = routeID
	if err := s.repo.CreateTransaction(ctx, &t); err != nil {
		return domain.Transaction{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return t, nil
}
