package models

// Role is the closed set of account roles.
type Role string

const (
	RoleDispatcher Role = "dispatcher"
	RoleOrgAdmin   Role = "org_admin"
	RoleSuperAdmin Role = "super_admin"
)

// roleRanks assigns each role an explicit privilege rank. All privilege
// comparisons go through AtLeast; the numeric values carry no meaning beyond
// ordering.
var roleRanks = map[Role]int{
	RoleDispatcher: 1,
	RoleOrgAdmin:   2,
	RoleSuperAdmin: 3,
}

// Valid returns true if r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast returns true if r has a privilege rank equal to or above other.
// Unknown roles rank below every known role.
func (r Role) AtLeast(other Role) bool {
	return roleRanks[r] >= roleRanks[other]
}

func (r Role) String() string {
	return string(r)
}

// ParseRole maps a role string to a Role. Unknown or empty input maps to
// RoleDispatcher, the least privileged role. This fail-safe default is a core
// invariant for tokens that lack a usable role claim.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return RoleDispatcher
	}
	return r
}
