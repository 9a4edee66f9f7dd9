package domain

// Segment is one day-leg of a Route.
type Segment struct {
	ID             string   `json:"id"`
	RouteID        string   `json:"routeId"`
	DayNumber      int      `json:"dayNumber"`
	SegmentDate    *Date    `json:"segmentDate"`
	FromLocationID *string  `json:"fromLocationId"`
	ToLocationID   *string  `json:"toLocationId"`
	Distance       *float64 `json:"distance"`
	SegmentOrder   int      `json:"segmentOrder"`
	Notes          *string  `json:"notes"`
}

// SegmentView joins a Segment with resolved location names and its stops.
type SegmentView struct {
	Segment
	FromLocationName *string    `json:"fromLocationName"`
	ToLocationName   *string    `json:"toLocationName"`
	Stops            []StopView `json:"stops"`
}

// Stop is an ordered waypoint within a Segment.
type Stop struct {
	ID         string  `json:"id"`
	SegmentID  string  `json:"segmentId"`
	LocationID string  `json:"locationId"`
	StopOrder  int     `json:"stopOrder"`
	Notes      *string `json:"notes"`
}

type StopView struct {
	Stop
	LocationName *string `json:"locationName"`
}

// OrderUpdate is one entry of a bulk reorder request.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
