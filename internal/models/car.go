package models

import (
	"github.com/google/uuid"
)

// Car represents a fleet vehicle owned by a single organization.
type Car struct {
	ID     uuid.UUID
	RegNum string    // registration number, caller supplied
	OrgID  uuid.UUID // FK to organizations

	// GPSTracker is the bound tracker id. nil means no tracker is bound.
	// Binding is an overwrite: a new tracker replaces any previous value.
	GPSTracker *string

	IsRemoved bool
}

// HasTracker returns true if a GPS tracker is bound to the car.
func (c *Car) HasTracker() bool {
	return c.GPSTracker != nil
}
