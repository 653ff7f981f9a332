package auth

import (
	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
)

// Authorization policy for the back office. Every function here is a pure
// decision: given a principal and a target organization, allow or deny. The
// policy never filters results itself; visibility narrowing for list and
// search queries is handled by EffectiveScope.
//
// Reads are allowed for every role and therefore have no policy function.

// CanManageOrganizations reports whether p may create, rename or remove
// organizations. Only SuperAdmin may.
func CanManageOrganizations(p Principal) bool {
	return p.Role == models.RoleSuperAdmin
}

// CanMutate reports whether p may create, update, delete or rebind a resource
// owned by orgID. SuperAdmin may mutate anywhere; OrgAdmin only inside its
// home organization, regardless of what organization id the request body
// claims. Dispatcher may never mutate.
func CanMutate(p Principal, orgID uuid.UUID) bool {
	switch p.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleOrgAdmin:
		return orgID == p.OrgID
	default:
		return false
	}
}

// CanReassign reports whether p may move a resource from currentOrg to
// newOrg. The caller must hold mutation rights over both organizations, which
// closes the privilege escalation of reassigning a record into or out of a
// foreign organization. When currentOrg == newOrg this degenerates to
// CanMutate.
func CanReassign(p Principal, currentOrg, newOrg uuid.UUID) bool {
	return CanMutate(p, currentOrg) && CanMutate(p, newOrg)
}

// CanAssignRole reports whether p may grant role to another account. A caller
// may never hand out a role ranked above its own.
func CanAssignRole(p Principal, role models.Role) bool {
	return p.Role.AtLeast(role)
}
