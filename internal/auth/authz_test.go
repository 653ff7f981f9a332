package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/medfleet/backoffice/internal/models"
)

func TestCanManageOrganizations(t *testing.T) {
	orgA := uuid.New()

	tests := []struct {
		name    string
		role    models.Role
		allowed bool
	}{
		{name: "super admin may manage organizations", role: models.RoleSuperAdmin, allowed: true},
		{name: "org admin may not manage organizations", role: models.RoleOrgAdmin, allowed: false},
		{name: "dispatcher may not manage organizations", role: models.RoleDispatcher, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Principal{UserID: uuid.New(), Role: tt.role, OrgID: orgA}
			require.Equal(t, tt.allowed, CanManageOrganizations(p))
		})
	}
}

func TestCanMutate(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	tests := []struct {
		name      string
		role      models.Role
		homeOrg   uuid.UUID
		targetOrg uuid.UUID
		allowed   bool
	}{
		{
			name:      "super admin may mutate own org",
			role:      models.RoleSuperAdmin,
			homeOrg:   orgA,
			targetOrg: orgA,
			allowed:   true,
		},
		{
			name:      "super admin may mutate any org",
			role:      models.RoleSuperAdmin,
			homeOrg:   orgA,
			targetOrg: orgB,
			allowed:   true,
		},
		{
			name:      "super admin may mutate with no home org",
			role:      models.RoleSuperAdmin,
			homeOrg:   uuid.Nil,
			targetOrg: orgB,
			allowed:   true,
		},
		{
			name:      "org admin may mutate home org",
			role:      models.RoleOrgAdmin,
			homeOrg:   orgA,
			targetOrg: orgA,
			allowed:   true,
		},
		{
			name:      "org admin may not mutate foreign org",
			role:      models.RoleOrgAdmin,
			homeOrg:   orgA,
			targetOrg: orgB,
			allowed:   false,
		},
		{
			name:      "dispatcher may not mutate home org",
			role:      models.RoleDispatcher,
			homeOrg:   orgA,
			targetOrg: orgA,
			allowed:   false,
		},
		{
			name:      "dispatcher may not mutate foreign org",
			role:      models.RoleDispatcher,
			homeOrg:   orgA,
			targetOrg: orgB,
			allowed:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Principal{UserID: uuid.New(), Role: tt.role, OrgID: tt.homeOrg}
			require.Equal(t, tt.allowed, CanMutate(p, tt.targetOrg))
		})
	}
}

func TestCanReassign(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	t.Run("super admin may move records between orgs", func(t *testing.T) {
		p := Principal{Role: models.RoleSuperAdmin}
		require.True(t, CanReassign(p, orgA, orgB))
	})

	t.Run("org admin may not move a record out of home org", func(t *testing.T) {
		p := Principal{Role: models.RoleOrgAdmin, OrgID: orgA}
		require.False(t, CanReassign(p, orgA, orgB))
	})

	t.Run("org admin may not pull a record into home org", func(t *testing.T) {
		p := Principal{Role: models.RoleOrgAdmin, OrgID: orgA}
		require.False(t, CanReassign(p, orgB, orgA))
	})

	t.Run("org admin updating within home org is allowed", func(t *testing.T) {
		p := Principal{Role: models.RoleOrgAdmin, OrgID: orgA}
		require.True(t, CanReassign(p, orgA, orgA))
	})

	t.Run("dispatcher may never reassign", func(t *testing.T) {
		p := Principal{Role: models.RoleDispatcher, OrgID: orgA}
		require.False(t, CanReassign(p, orgA, orgA))
	})
}

func TestCanAssignRole(t *testing.T) {
	tests := []struct {
		name    string
		caller  models.Role
		target  models.Role
		allowed bool
	}{
		{name: "super admin may grant super admin", caller: models.RoleSuperAdmin, target: models.RoleSuperAdmin, allowed: true},
		{name: "super admin may grant dispatcher", caller: models.RoleSuperAdmin, target: models.RoleDispatcher, allowed: true},
		{name: "org admin may grant org admin", caller: models.RoleOrgAdmin, target: models.RoleOrgAdmin, allowed: true},
		{name: "org admin may grant dispatcher", caller: models.RoleOrgAdmin, target: models.RoleDispatcher, allowed: true},
		{name: "org admin may not grant super admin", caller: models.RoleOrgAdmin, target: models.RoleSuperAdmin, allowed: false},
		{name: "dispatcher may not grant org admin", caller: models.RoleDispatcher, target: models.RoleOrgAdmin, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Principal{Role: tt.caller}
			require.Equal(t, tt.allowed, CanAssignRole(p, tt.target))
		})
	}
}
