package domain

// Accommodation is a hotel booking attached to a Segment.
type Accommodation struct {
	ID         string  `json:"id"`
	SegmentID  string  `json:"segmentId"`
	HotelID    string  `json:"hotelId"`
	ClientType string  `json:"clientType"`
	Notes      *string `json:"notes"`
}

func (a *Accommodation) Validate() error {
	if a.HotelID == "" {
		return Invalidf("hotelId is required")
	}
	if a.ClientType == "" {
		return Invalidf("clientType is required")
	}
	return nil
}

// Room is a bookable unit within an Accommodation.
type Room struct {
	ID              string  `json:"id"`
	AccommodationID string  `json:"accommodationId"`
	RoomType        string  `json:"roomType"`
	RoomNumber      *string `json:"roomNumber"`
	Capacity        *int    `json:"capacity"`
	CostPerNight    float64 `json:"costPerNight"`
	Notes           *string `json:"notes"`
}

// RoomOccupant assigns a Route Participant to a Room.
type RoomOccupant struct {
	RoomID        string `json:"roomId"`
	ParticipantID string `json:"participantId"`
	IsCouple      bool   `json:"isCouple"`
}

// RoomOccupantView resolves the occupant to a display name and role.
type RoomOccupantView struct {
	RoomOccupant
	ParticipantName string  `json:"participantName"`
	Role            *string `json:"role"`
}

type RoomView struct {
	Room
	Participants []RoomOccupantView `json:"participants"`
}

// AccommodationView is the nested read shape: booking, rooms, occupants.
type AccommodationView struct {
	Accommodation
	HotelName *string    `json:"hotelName"`
	Rooms     []RoomView `json:"rooms"`
}
