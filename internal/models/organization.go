package models

import (
	"github.com/google/uuid"
)

// Organization represents a medical institution. Organizations are the tenancy
// boundary in the system: every car and every user belongs to exactly one.
type Organization struct {
	ID        uuid.UUID
	Name      string
	IsRemoved bool
}
