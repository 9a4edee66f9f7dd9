package app

import (
	"context"

	"tourops/internal/domain"
)

// SegmentService owns day-segments and their stop lists.
type SegmentService struct {
	repo   domain.SegmentRepository
	routes domain.RouteRepository
	cache  domain.Cache
}

func NewSegmentService(repo domain.SegmentRepository, routes domain.RouteRepository, cache domain.Cache) *SegmentService {
	return &SegmentService{repo: repo, routes: routes, cache: cache}
}

// SegmentInput carries optional fields for segment create/update;
// nil means "omitted", which matters for the day/order defaults.
type SegmentInput struct {
	DayNumber      *int     `json:"dayNumber"`
	FromLocationID *string  `json:"fromLocationId"`
	ToLocationID   *string  `json:"toLocationId"`
	Distance       *float64 `json:"distance"`
	SegmentOrder   *int     `json:"segmentOrder"`
	Notes          *string  `json:"notes"`
}

func (s *SegmentService) List(ctx context.Context, routeID string) ([]domain.SegmentView, error) {
	if _, err := s.routes.GetRoute(ctx, routeID); err != nil {
		return nil, err
	}
	return s.repo.ListSegments(ctx, routeID)
}

// Create computes dayNumber and segmentOrder defaults from the highest
// existing dayNumber on the route, and derives segmentDate from the
// route start date. An omitted segmentOrder defaults to max(dayNumber),
// not max(segmentOrder); callers relying on the default get segments
// ordered by creation as long as days are contiguous.
func (s *SegmentService) Create(ctx context.Context, routeID string, in SegmentInput) (domain.SegmentView, error) {
	rt, err := s.routes.GetRoute(ctx, routeID)
	if err != nil {
		return domain.SegmentView{}, err
	}
	maxDay, err := s.repo.MaxDayNumber(ctx, routeID)
	if err != nil {
		return domain.SegmentView{}, err
	}

	seg := domain.Segment{
		RouteID:        routeID,
		DayNumber:      maxDay + 1,
		SegmentOrder:   maxDay,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Distance:       in.Distance,
		Notes:          in.Notes,
	}
	if in.DayNumber != nil {
		seg.DayNumber = *in.DayNumber
	}
	if in.SegmentOrder != nil {
		seg.SegmentOrder = *in.SegmentOrder
	}
	seg.SegmentDate = segmentDate(rt.StartDate, seg.DayNumber)

	if err := s.repo.CreateSegment(ctx, &seg); err != nil {
		return domain.SegmentView{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return s.repo.GetSegment(ctx, seg.ID, routeID)
}

func (s *SegmentService) Update(ctx context.Context, routeID, id string, in SegmentInput) (domain.SegmentView, error) {
	rt, err := s.routes.GetRoute(ctx, routeID)
	if err != nil {
		return domain.SegmentView{}, err
	}
	cur, err := s.repo.GetSegment(ctx, id, routeID)
	if err != nil {
		return domain.SegmentView{}, err
	}

	seg := cur.Segment
	if in.DayNumber != nil {
		seg.DayNumber = *in.DayNumber
	}
	if in.SegmentOrder != nil {
		seg.SegmentOrder = *in.SegmentOrder
	}
	seg.FromLocationID = in.FromLocationID
	seg.ToLocationID = in.ToLocationID
	seg.Distance = in.Distance
	seg.Notes = in.Notes
	seg.SegmentDate = segmentDate(rt.StartDate, seg.DayNumber)

	if err := s.repo.UpdateSegment(ctx, &seg); err != nil {
		return domain.SegmentView{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return s.repo.GetSegment(ctx, id, routeID)
}

func (s *SegmentService) Delete(ctx context.Context, routeID, id string) error {
	if err := s.repo.DeleteSegment(ctx, id, routeID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

func (s *SegmentService) Reorder(ctx context.Context, routeID string, updates []domain.OrderUpdate) error {
	if len(updates) == 0 {
		return domain.Invalidf("no segment order updates given")
	}
	if err := s.repo.ReorderSegments(ctx, routeID, updates); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

// segmentDate derives the calendar day of a segment from the route
// start date; nil when the route has no start date.
func segmentDate(start *domain.Date, dayNumber int) *domain.Date {
	if start == nil {
		return nil
	}
	d := start.AddDays(dayNumber - 1)
	return &d
}

// ---- stops ----

type StopInput struct {
	LocationID string  `json:"locationId"`
	StopOrder  *int    `json:"stopOrder"`
	Notes      *string `json:"notes"`
}

func (s *SegmentService) ListStops(ctx context.Context, routeID, segmentID string) ([]domain.StopView, error) {
	if _, err := s.repo.GetSegment(ctx, segmentID, routeID); err != nil {
		return nil, err
	}
	return s.repo.ListStops(ctx, segmentID)
}

func (s *SegmentService) CreateStop(ctx context.Context, routeID, segmentID string, in StopInput) (domain.Stop, error) {
	if in.LocationID == "" {
		return domain.Stop{}, domain.Invalidf("locationId is required")
	}
	if _, err := s.repo.GetSegment(ctx, segmentID, routeID); err != nil {
		return domain.Stop{}, err
	}
	st := domain.Stop{SegmentID: segmentID, LocationID: in.LocationID, StopOrder: 1, Notes: in.Notes}
	if in.StopOrder != nil {
		st.StopOrder = *in.StopOrder
	}
	if err := s.repo.CreateStop(ctx, &st); err != nil {
		return domain.Stop{}, err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return st, nil
}

func (s *SegmentService) ReorderStops(ctx context.Context, routeID, segmentID string, updates []domain.OrderUpdate) error {
	if len(updates) == 0 {
		return domain.Invalidf("no stop order updates given")
	}
	if _, err := s.repo.GetSegment(ctx, segmentID, routeID); err != nil {
		return err
	}
	if err := s.repo.ReorderStops(ctx, segmentID, updates); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}

func (s *SegmentService) DeleteStop(ctx context.Context, routeID, segmentID, id string) error {
	if _, err := s.repo.GetSegment(ctx, segmentID, routeID); err != nil {
		return err
	}
	if err := s.repo.DeleteStop(ctx, id, segmentID); err != nil {
		return err
	}
	invalidateRoute(ctx, s.cache, routeID)
	return nil
}
