package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"tourops/internal/domain"
)

// QueryService assembles the full route aggregate, with a cache-aside
// layer in front of the repository.
type QueryService struct {
	repo     domain.PlannerRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(repo domain.PlannerRepository, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: repo, cache: cache, cacheTTL: ttl}
}

// GetRoute returns the nested route graph: segments with their stops,
// logistics, participants and transactions. Sub-collections are
// fetched concurrently once the route row is confirmed to exist.
func (s *QueryService) GetRoute(ctx context.Context, id string) (domain.RouteAggregate, error) {
	key := routeKey(id)
	var agg domain.RouteAggregate
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &agg); ok {
			return agg, nil
		}
	}

	rt, err := s.repo.GetRoute(ctx, id)
	if err != nil {
		return domain.RouteAggregate{}, err
	}
	agg.Route = rt

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		agg.Segments, err = s.repo.ListSegments(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		agg.Logistics, err = s.repo.ListLogistics(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		agg.Participants, err = s.repo.ListParticipants(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		agg.Transactions, err = s.repo.ListTransactions(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.RouteAggregate{}, err
	}

	if agg.Segments == nil {
		agg.Segments = []domain.SegmentView{}
	}
	if agg.Logistics == nil {
		agg.Logistics = []domain.LogisticsView{}
	}
	if agg.Participants == nil {
		agg.Participants = []domain.Participant{}
	}
	if agg.Transactions == nil {
		agg.Transactions = []domain.Transaction{}
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, agg, s.cacheTTL)
	}
	return agg, nil
}
