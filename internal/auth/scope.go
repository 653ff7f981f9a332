package auth

import (
	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
)

// EffectiveScope derives the organization filter for a list or search query.
// nil means no filter: every organization's records are visible.
//
// SuperAdmin may narrow to any single organization via requested, or see
// everything when requested is nil. Every other role is always confined to
// its home organization; a caller-supplied organization id is silently
// overridden, never honored and never rejected.
//
// The result must be pushed into the storage query's predicate before it
// executes. Post-filtering fetched rows is not an acceptable substitute.
func EffectiveScope(p Principal, requested *uuid.UUID) *uuid.UUID {
	if p.Role == models.RoleSuperAdmin {
		return requested
	}

	org := p.OrgID
	return &org
}
