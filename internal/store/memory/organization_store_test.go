package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/store"
)

func newOrg(name string) *models.Organization {
	return &models.Organization{ID: uuid.New(), Name: name}
}

func TestMemoryOrganizationStore_List(t *testing.T) {
	ctx := context.Background()

	st := NewOrganizationStore()
	require.NoError(t, st.Create(ctx, newOrg("City Hospital No. 1")))
	require.NoError(t, st.Create(ctx, newOrg("City Hospital No. 2")))
	require.NoError(t, st.Create(ctx, newOrg("Regional Clinic")))

	t.Run("no filter returns all", func(t *testing.T) {
		orgs, err := st.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, orgs, 3)
	})

	t.Run("name filter is a case-insensitive substring", func(t *testing.T) {
		orgs, err := st.List(ctx, "hospital")
		require.NoError(t, err)
		require.Len(t, orgs, 2)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		orgs, err := st.List(ctx, "veterinary")
		require.NoError(t, err)
		require.Empty(t, orgs)
	})
}

func TestMemoryOrganizationStore_SoftDelete(t *testing.T) {
	ctx := context.Background()

	st := NewOrganizationStore()
	org := newOrg("Closing Clinic")
	require.NoError(t, st.Create(ctx, org))
	require.NoError(t, st.SoftDelete(ctx, org.ID))

	t.Run("invisible to get", func(t *testing.T) {
		_, err := st.Get(ctx, org.ID)
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})

	t.Run("invisible to list", func(t *testing.T) {
		orgs, err := st.List(ctx, "")
		require.NoError(t, err)
		require.Empty(t, orgs)
	})

	t.Run("update behaves as nonexistent", func(t *testing.T) {
		require.ErrorIs(t, st.Update(ctx, org), store.ErrOrganizationNotFound)
	})

	t.Run("second delete behaves as nonexistent", func(t *testing.T) {
		require.ErrorIs(t, st.SoftDelete(ctx, org.ID), store.ErrOrganizationNotFound)
	})
}

func TestMemoryOrganizationStore_Update(t *testing.T) {
	ctx := context.Background()

	st := NewOrganizationStore()
	org := newOrg("Old Name")
	require.NoError(t, st.Create(ctx, org))

	org.Name = "New Name"
	require.NoError(t, st.Update(ctx, org))

	got, err := st.Get(ctx, org.ID)
	require.NoError(t, err)
	require.Equal(t, "New Name", got.Name)
}
