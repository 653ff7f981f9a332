package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/medfleet/backoffice/internal/auth"
	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/service"
	"github.com/medfleet/backoffice/internal/store/memory"
)

type testEnv struct {
	handler http.Handler
	users   *service.Users
	orgs    *service.Organizations
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := auth.TokenConfig{Key: "test-signing-key", Issuer: "backoffice-test"}
	signer, err := auth.NewSigner(cfg)
	require.NoError(t, err)
	verifier, err := auth.NewVerifier(cfg)
	require.NoError(t, err)

	hasher := auth.NewPasswordHasher()
	userStore := memory.NewUserStore()

	users := service.NewUsers(userStore, hasher)
	orgs := service.NewOrganizations(memory.NewOrganizationStore())

	srv := NewServer(Config{
		Auth:          service.NewAuth(userStore, hasher, signer),
		Cars:          service.NewCars(memory.NewCarStore()),
		Users:         users,
		Organizations: orgs,
		Verifier:      verifier,
	})

	return &testEnv{
		handler: srv.Handler([]string{"*"}, zerolog.Nop()),
		users:   users,
		orgs:    orgs,
	}
}

// seedUser creates an account directly through the service layer so HTTP
// tests have someone to log in as.
func (e *testEnv) seedUser(t *testing.T, login, password string, role models.Role, orgID uuid.UUID) uuid.UUID {
	t.Helper()
	root := auth.Principal{UserID: uuid.New(), Role: models.RoleSuperAdmin}
	id, err := e.users.Create(context.Background(), root, login, password, role, orgID)
	require.NoError(t, err)
	return id
}

func (e *testEnv) seedOrg(t *testing.T, name string) uuid.UUID {
	t.Helper()
	root := auth.Principal{UserID: uuid.New(), Role: models.RoleSuperAdmin}
	id, err := e.orgs.Create(context.Background(), root, name)
	require.NoError(t, err)
	return id
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, login, password string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"login":    login,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	orgA := env.seedOrg(t, "Station A")
	env.seedUser(t, "admin.a", "s3cret", models.RoleOrgAdmin, orgA)

	t.Run("valid credentials return a token", func(t *testing.T) {
		env.login(t, "admin.a", "s3cret")
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"login":    "admin.a",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing credentials is 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBearerTokenRequired(t *testing.T) {
	env := newTestEnv(t)

	t.Run("no token is 401", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/cars/", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/cars/", "not-a-token", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("health is open", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCarEndpoints(t *testing.T) {
	env := newTestEnv(t)
	orgA := env.seedOrg(t, "Station A")
	orgB := env.seedOrg(t, "Station B")
	env.seedUser(t, "admin.a", "s3cret", models.RoleOrgAdmin, orgA)
	env.seedUser(t, "dispatch.a", "s3cret", models.RoleDispatcher, orgA)

	adminToken := env.login(t, "admin.a", "s3cret")
	dispatchToken := env.login(t, "dispatch.a", "s3cret")

	var carID uuid.UUID

	t.Run("create", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cars/", adminToken, map[string]any{
			"reg_num": "A 100 AA",
			"org_id":  orgA,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			ID uuid.UUID `json:"id"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		carID = resp.ID
	})

	t.Run("create in a foreign org is 403", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cars/", adminToken, map[string]any{
			"reg_num": "B 100 BB",
			"org_id":  orgB,
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("dispatcher create is 403", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cars/", dispatchToken, map[string]any{
			"reg_num": "A 200 AA",
			"org_id":  orgA,
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/cars/", dispatchToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var cars []carResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&cars))
		require.Len(t, cars, 1)
		require.Equal(t, "A 100 AA", cars[0].RegNum)
	})

	t.Run("search", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/cars/search?query=100", dispatchToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var cars []carResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&cars))
		require.Len(t, cars, 1)
	})

	t.Run("bind and unbind tracker", func(t *testing.T) {
		path := fmt.Sprintf("/api/cars/%s/bind-tracker", carID)
		rec := env.do(t, http.MethodPost, path, adminToken, map[string]string{"tracker": "TRK-1"})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/cars/"+carID.String(), adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var car carResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&car))
		require.NotNil(t, car.GPSTracker)
		require.Equal(t, "TRK-1", *car.GPSTracker)

		path = fmt.Sprintf("/api/cars/%s/unbind-tracker", carID)
		rec = env.do(t, http.MethodPost, path, adminToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/cars/"+carID.String(), adminToken, map[string]any{
			"reg_num": "A 999 AA",
			"org_id":  orgA,
		})
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delete then get is 404", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/cars/"+carID.String(), adminToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/cars/"+carID.String(), adminToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/cars/not-a-uuid", adminToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserEndpointsHidePasswordHash(t *testing.T) {
	env := newTestEnv(t)
	orgA := env.seedOrg(t, "Station A")
	env.seedUser(t, "admin.a", "s3cret", models.RoleOrgAdmin, orgA)

	token := env.login(t, "admin.a", "s3cret")

	rec := env.do(t, http.MethodPost, "/api/users/", token, map[string]any{
		"login":    "dispatch.b",
		"password": "s3cret",
		"role":     "dispatcher",
		"org_id":   orgA,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "password")
	require.NotContains(t, rec.Body.String(), "$2a$")

	var users []userResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	require.Len(t, users, 2)
}

func TestInstitutionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	orgA := env.seedOrg(t, "City Hospital")
	env.seedUser(t, "root", "s3cret", models.RoleSuperAdmin, uuid.Nil)
	env.seedUser(t, "admin.a", "s3cret", models.RoleOrgAdmin, orgA)

	rootToken := env.login(t, "root", "s3cret")
	adminToken := env.login(t, "admin.a", "s3cret")

	t.Run("name filter", func(t *testing.T) {
		env.seedOrg(t, "Regional Clinic")

		rec := env.do(t, http.MethodGet, "/api/institutions/?name=clinic", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var orgs []orgResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&orgs))
		require.Len(t, orgs, 1)
		require.Equal(t, "Regional Clinic", orgs[0].Name)
	})

	t.Run("org admin create is 403", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/institutions/", adminToken, map[string]string{"name": "Rogue"})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("super admin create and delete", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/institutions/", rootToken, map[string]string{"name": "New Clinic"})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			ID uuid.UUID `json:"id"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

		rec = env.do(t, http.MethodDelete, "/api/institutions/"+resp.ID.String(), rootToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/institutions/"+resp.ID.String(), rootToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
