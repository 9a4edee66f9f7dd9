package domain

// Logistics types that describe an ad-hoc line item rather than a
// referenced entity; these require itemName instead of entityId.
const (
	LogisticsLunch     = "lunch"
	LogisticsExtraCost = "extra-cost"
)

// Logistics is a cost/resource line item tied to a Route and
// optionally one of its Segments.
type Logistics struct {
	ID              string  `json:"id"`
	RouteID         string  `json:"routeId"`
	SegmentID       *string `json:"segmentId"`
	LogisticsType   string  `json:"logisticsType"`
	EntityID        *string `json:"entityId"`
	EntityType      string  `json:"entityType"`
	ItemName        *string `json:"itemName"`
	Quantity        int     `json:"quantity"`
	Cost            float64 `json:"cost"`
	Date            *Date   `json:"date"`
	DriverPilotName *string `json:"driverPilotName"`
	IsOwnVehicle    bool    `json:"isOwnVehicle"`
	VehicleType     *string `json:"vehicleType"`
	Notes           *string `json:"notes"`
}

func (l *Logistics) Validate() error {
	if l.EntityType == "" {
		return Invalidf("entityType is required")
	}
	switch l.LogisticsType {
	case LogisticsLunch, LogisticsExtraCost:
		if l.ItemName == nil || *l.ItemName == "" {
			return Invalidf("itemName is required for %s items", l.LogisticsType)
		}
	default:
		if l.EntityID == nil || *l.EntityID == "" {
			return Invalidf("entityId is required")
		}
	}
	return nil
}

// LogisticsView adds the resolved entity display name.
type LogisticsView struct {
	Logistics
	EntityName *string `json:"entityName"`
}
