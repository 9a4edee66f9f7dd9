package domain

// RouteStatus is the lifecycle state of a Route.
type RouteStatus string

const (
	StatusDraft      RouteStatus = "draft"
	StatusConfirmed  RouteStatus = "confirmed"
	StatusInProgress RouteStatus = "in-progress"
	StatusCompleted  RouteStatus = "completed"
	StatusCancelled  RouteStatus = "cancelled"
)

func (s RouteStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Route is the root aggregate: a planned multi-day trip.
type Route struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   *string     `json:"description"`
	StartDate     *Date       `json:"startDate"`
	EndDate       *Date       `json:"endDate"`
	Duration      *int        `json:"duration"`
	Status        RouteStatus `json:"status"`
	TotalDistance *float64    `json:"totalDistance"`
	EstimatedCost *float64    `json:"estimatedCost"`
	ActualCost    *float64    `json:"actualCost"`
	Currency      *string     `json:"currency"`
	Notes         *string     `json:"notes"`
}

// Normalize applies defaults and validates the Route for a write.
func (r *Route) Normalize() error {
	if r.Name == "" {
		return Invalidf("name is required")
	}
	if r.Status == "" {
		r.Status = StatusDraft
	}
	if !r.Status.Valid() {
		return Invalidf("invalid status %q", r.Status)
	}
	return nil
}

// RouteAggregate is the fully assembled read view of a Route.
type RouteAggregate struct {
	Route
	Segments     []SegmentView   `json:"segments"`
	Logistics    []LogisticsView `json:"logistics"`
	Participants []Participant   `json:"participants"`
	Transactions []Transaction   `json:"transactions"`
}
