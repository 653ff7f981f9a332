package commands

import (
	"context"
	"errors"

	"github.com/medfleet/backoffice/internal/auth"
	"github.com/medfleet/backoffice/internal/logger"
	"github.com/medfleet/backoffice/internal/server"
	"github.com/medfleet/backoffice/internal/service"
	"github.com/medfleet/backoffice/internal/store"
	memorystore "github.com/medfleet/backoffice/internal/store/memory"
	postgresstore "github.com/medfleet/backoffice/internal/store/postgres"
)

// devSigningKey is only ever used with --dev. Production startup fails
// without an explicit key.
const devSigningKey = "CHANGE_ME_DEV_KEY"

type ServerCmd struct {
	Listen string `help:"HTTP server listen address" default:"0.0.0.0:8080" env:"BACKOFFICE_LISTEN"`

	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"http://localhost:3000" env:"BACKOFFICE_CORS_ORIGINS"`

	JWTKey    string `help:"HMAC key for signing access tokens" default:"" env:"BACKOFFICE_JWT_KEY"`
	JWTIssuer string `help:"issuer stamped on access tokens" default:"backoffice" env:"BACKOFFICE_JWT_ISSUER"`

	StoreType     string             `help:"store type (memory or postgres)" default:"memory" env:"BACKOFFICE_STORE_TYPE" enum:"memory,postgres"`
	PostgresStore PostgresStoreFlags `embed:"" prefix:"postgres-"`
}

type PostgresStoreFlags struct {
	ConnString string `help:"PostgreSQL connection string" env:"POSTGRES_CONNECTION_STRING"`

	MaxConns        int32 `help:"maximum number of connections in pool" default:"20"`
	MinConns        int32 `help:"minimum number of connections in pool" default:"5"`
	MaxConnLifetime int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime int32 `help:"maximum connection idle time in seconds" default:"1800"`

	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"BACKOFFICE_POSTGRES_AUTO_MIGRATE"`
}

func (c *ServerCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Dev)
	ctx := log.WithContext(context.Background())

	log.Info().Str("version", globals.Version).Bool("dev", globals.Dev).Msg("Starting server")

	key := c.JWTKey
	if key == "" {
		if !globals.Dev {
			return errors.New("token signing key is required (--jwt-key or BACKOFFICE_JWT_KEY)")
		}
		key = devSigningKey
		log.Warn().Msg("Using built-in development signing key, tokens are forgeable")
	}

	tokenCfg := auth.TokenConfig{Key: key, Issuer: c.JWTIssuer}

	signer, err := auth.NewSigner(tokenCfg)
	if err != nil {
		return err
	}
	verifier, err := auth.NewVerifier(tokenCfg)
	if err != nil {
		return err
	}

	orgStore, carStore, userStore, cleanup, err := c.buildStores(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	hasher := auth.NewPasswordHasher()

	srv := server.NewServer(server.Config{
		Auth:          service.NewAuth(userStore, hasher, signer),
		Cars:          service.NewCars(carStore),
		Users:         service.NewUsers(userStore, hasher),
		Organizations: service.NewOrganizations(orgStore),
		Verifier:      verifier,
	})

	httpServer := configureHTTPServer(c.Listen, srv.Handler(c.CORSOrigins, log))

	log.Info().Str("listen", c.Listen).Str("store", c.StoreType).Msg("Listening")
	return httpServer.ListenAndServe()
}

func (c *ServerCmd) buildStores(ctx context.Context) (store.OrganizationStore, store.CarStore, store.UserStore, func(), error) {
	switch c.StoreType {
	case "postgres":
		if c.PostgresStore.ConnString == "" {
			return nil, nil, nil, nil, errors.New("PostgreSQL connection string is required (--postgres-conn-string or POSTGRES_CONNECTION_STRING)")
		}

		pool, err := postgresstore.NewPool(ctx, &postgresstore.PoolConfig{
			ConnString:      c.PostgresStore.ConnString,
			MaxConns:        c.PostgresStore.MaxConns,
			MinConns:        c.PostgresStore.MinConns,
			MaxConnLifetime: c.PostgresStore.MaxConnLifetime,
			MaxConnIdleTime: c.PostgresStore.MaxConnIdleTime,
		})
		if err != nil {
			return nil, nil, nil, nil, err
		}

		if c.PostgresStore.AutoMigrate {
			if err := postgresstore.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, nil, nil, err
			}
		}

		return postgresstore.NewOrganizationStore(pool),
			postgresstore.NewCarStore(pool),
			postgresstore.NewUserStore(pool),
			pool.Close,
			nil

	default:
		return memorystore.NewOrganizationStore(),
			memorystore.NewCarStore(),
			memorystore.NewUserStore(),
			func() {},
			nil
	}
}
