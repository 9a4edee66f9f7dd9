package domain

// EntityType tags a polymorphic reference to one of the flat resource
// tables. Logistics items and vehicle labels resolve through it.
type EntityType string

const (
	EntityClient     EntityType = "client"
	EntityGuide      EntityType = "guide"
	EntityHotel      EntityType = "hotel"
	EntityLocation   EntityType = "location"
	EntityVehicle    EntityType = "vehicle"
	EntityThirdParty EntityType = "third-party"
)

// EntityRef is a tagged reference {type, id} resolved to a display
// name at read time.
type EntityRef struct {
	Type EntityType
	ID   string
}
