package models

import (
	"github.com/google/uuid"
)

// User represents a staff account. Users belong to an organization and carry a
// role for authorization. The password hash is opaque to everything above the
// store and must never appear in logs or responses.
type User struct {
	ID           uuid.UUID
	Login        string // unique across the system, enforced by storage
	PasswordHash string
	Role         Role
	OrgID        uuid.UUID // FK to organizations
	IsRemoved    bool
}
