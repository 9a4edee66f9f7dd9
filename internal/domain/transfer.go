package domain

// Transfer is an inter-location movement for a Route, carrying vehicle
// assignments and a rider list.
type Transfer struct {
	ID             string  `json:"id"`
	RouteID        string  `json:"routeId"`
	TransferDate   *Date   `json:"transferDate"`
	FromLocationID string  `json:"fromLocationId"`
	ToLocationID   string  `json:"toLocationId"`
	TotalCost      float64 `json:"totalCost"`
	Notes          *string `json:"notes"`
}

func (t *Transfer) Validate() error {
	if t.FromLocationID == "" || t.ToLocationID == "" {
		return Invalidf("fromLocationId and toLocationId are required")
	}
	if t.FromLocationID == t.ToLocationID {
		return Invalidf("fromLocationId and toLocationId must differ")
	}
	return nil
}

// TransferVehicle is one vehicle assignment on a Transfer.
type TransferVehicle struct {
	ID              string  `json:"id"`
	TransferID      string  `json:"transferId"`
	VehicleID       string  `json:"vehicleId"`
	DriverPilotName *string `json:"driverPilotName"`
	Quantity        int     `json:"quantity"`
	Cost            float64 `json:"cost"`
	IsOwnVehicle    bool    `json:"isOwnVehicle"`
	Notes           *string `json:"notes"`
}

// TransferVehicleView labels the vehicle: "<type> - <owner>", where the
// owner is Company, the owning hotel, or the owning third party.
type TransferVehicleView struct {
	TransferVehicle
	VehicleLabel *string `json:"vehicleLabel"`
}

// TransferRider attaches a Route Participant to a Transfer.
type TransferRider struct {
	ID            string `json:"id"`
	TransferID    string `json:"transferId"`
	ParticipantID string `json:"participantId"`
}

type TransferRiderView struct {
	TransferRider
	ParticipantName string  `json:"participantName"`
	Role            *string `json:"role"`
}

// TransferView is the nested read shape with a recomputed total cost.
type TransferView struct {
	Transfer
	FromLocationName *string               `json:"fromLocationName"`
	ToLocationName   *string               `json:"toLocationName"`
	Vehicles         []TransferVehicleView `json:"vehicles"`
	Participants     []TransferRiderView   `json:"participants"`
}
