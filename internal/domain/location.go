package domain

// LocationStatus represents whether a location accepts reservations
type LocationStatus string

const (
	LocationActive   LocationStatus = "active"
	LocationInactive LocationStatus = "inactive"
)

// Location represents a place exposing a fixed number of interchangeable resources
type Location struct {
	ID            int64
	Name          string
	Status        LocationStatus
	ResourceCount int
	SlotMinutes   int
}

// IsActive returns true if the location accepts reservations
func (l *Location) IsActive() bool {
	return l.Status == LocationActive
}

// HasResource returns true if resource is within [1, ResourceCount]
func (l *Location) HasResource(resource int) bool {
	return resource >= 1 && resource <= l.ResourceCount
}
