package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/medfleet/backoffice/internal/models"
)

func TestEffectiveScope(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	t.Run("super admin with no requested org sees everything", func(t *testing.T) {
		p := Principal{Role: models.RoleSuperAdmin, OrgID: orgA}
		require.Nil(t, EffectiveScope(p, nil))
	})

	t.Run("super admin may narrow to any org", func(t *testing.T) {
		p := Principal{Role: models.RoleSuperAdmin, OrgID: orgA}
		scope := EffectiveScope(p, &orgB)
		require.NotNil(t, scope)
		require.Equal(t, orgB, *scope)
	})

	t.Run("org admin is confined to home org", func(t *testing.T) {
		p := Principal{Role: models.RoleOrgAdmin, OrgID: orgA}
		scope := EffectiveScope(p, nil)
		require.NotNil(t, scope)
		require.Equal(t, orgA, *scope)
	})

	t.Run("org admin cannot redirect scope to another org", func(t *testing.T) {
		p := Principal{Role: models.RoleOrgAdmin, OrgID: orgA}
		scope := EffectiveScope(p, &orgB)
		require.NotNil(t, scope)
		require.Equal(t, orgA, *scope)
	})

	t.Run("dispatcher is confined to home org", func(t *testing.T) {
		p := Principal{Role: models.RoleDispatcher, OrgID: orgA}
		scope := EffectiveScope(p, &orgB)
		require.NotNil(t, scope)
		require.Equal(t, orgA, *scope)
	})

	t.Run("returned scope is a copy of the principal org", func(t *testing.T) {
		p := Principal{Role: models.RoleDispatcher, OrgID: orgA}
		scope := EffectiveScope(p, nil)
		*scope = orgB
		require.Equal(t, orgA, p.OrgID)
	})
}
