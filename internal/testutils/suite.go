package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"scrim-portal-backend/internal/config"
	"scrim-portal-backend/internal/database"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for readiness ping
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ExternalDatabaseEnv points the integration tests at an existing Postgres instead of a container
const ExternalDatabaseEnv = "TEST_DATABASE_URL"

const (
	pgUser     = "scrim"
	pgPassword = "scrim"
	pgDatabase = "scrim_test"
)

// pgContainer is the Postgres shared by every integration suite of one test binary
type pgContainer struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
	db       *gorm.DB
	config   *config.Config
}

var (
	sharedOnce sync.Once
	sharedErr  error
	shared     *pgContainer
)

// BaseTestSuite hands a migrated database to integration suites
type BaseTestSuite struct {
	suite.Suite
	DB     *gorm.DB
	Config *config.Config
}

// SetupTestSuite starts the shared database on first use and returns a suite over it
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	sharedOnce.Do(func() { shared, sharedErr = startPostgres() })
	if sharedErr != nil {
		t.Fatalf("failed to initialize shared test database: %v", sharedErr)
	}
	return &BaseTestSuite{DB: shared.db, Config: shared.config}
}

// CleanupSharedContainer closes the pool and purges the container. Call it from TestMain.
func CleanupSharedContainer() {
	if shared == nil {
		return
	}
	if shared.db != nil {
		_ = database.Close(shared.db)
	}
	if shared.pool != nil && shared.resource != nil {
		if err := shared.pool.Purge(shared.resource); err != nil {
			logrus.WithError(err).Warn("Could not purge test container")
		}
	}
	shared = nil
}

// RunIntegration runs the package's tests and purges the shared container afterwards,
// or as soon as the run is interrupted. Use it as os.Exit(testutils.RunIntegration(m)).
func RunIntegration(m *testing.M) int {
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupted)

	go func() {
		if _, ok := <-interrupted; ok {
			logrus.Warn("Integration tests interrupted, purging test container")
			CleanupSharedContainer()
			os.Exit(1)
		}
	}()

	code := m.Run()
	CleanupSharedContainer()
	return code
}

func (s *BaseTestSuite) SetupTest()    { s.CleanTestDB() }
func (s *BaseTestSuite) TearDownTest() { s.CleanTestDB() }

// TeardownTestSuite empties the tables; the container outlives the suite
func (s *BaseTestSuite) TeardownTestSuite() { s.CleanTestDB() }

// CleanTestDB empties every scrim table
func (s *BaseTestSuite) CleanTestDB() {
	if s.DB == nil {
		return
	}
	quoted := make([]string, 0, len(database.Tables()))
	for _, table := range database.Tables() {
		quoted = append(quoted, `"`+table+`"`)
	}
	if err := s.DB.Exec(`TRUNCATE TABLE ` + strings.Join(quoted, ", ") + ` CASCADE`).Error; err != nil {
		logrus.WithError(err).Warn("Could not truncate test tables")
	}
}

func startPostgres() (*pgContainer, error) {
	if dsn := os.Getenv(ExternalDatabaseEnv); dsn != "" {
		db, err := database.Initialize(dsn, nil)
		if err != nil {
			return nil, err
		}
		return &pgContainer{db: db, config: testConfig(dsn)}, nil
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_DB=" + pgDatabase,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start postgres: %w", err)
	}
	// Reaped by docker if the test binary dies before TestMain cleans up
	_ = resource.Expire(600)

	c := &pgContainer{pool: pool, resource: resource}
	dsn := fmt.Sprintf("postgres://%s:%s@127.0.0.1:%s/%s?sslmode=disable",
		pgUser, pgPassword, resource.GetPort("5432/tcp"), pgDatabase)

	// Ping with plain database/sql until the server accepts connections, then migrate once
	if err := pool.Retry(func() error {
		std, err := sql.Open("pgx", dsn)
		if err != nil {
			return err
		}
		defer std.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return std.PingContext(ctx)
	}); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("postgres never became ready: %w", err)
	}

	c.db, err = database.Initialize(dsn, nil)
	if err != nil {
		_ = pool.Purge(resource)
		return nil, err
	}
	c.config = testConfig(dsn)

	logrus.WithField("container", resource.Container.Name).Info("Test Postgres ready")
	return c, nil
}

func testConfig(dsn string) *config.Config {
	return &config.Config{
		Environment:       "test",
		Port:              "8080",
		LogLevel:          "debug",
		DatabaseURL:       dsn,
		JWTSecret:         "test-secret",
		SessionCookieName: "scrim_session",
		SessionTTLHours:   1,
		AdminEmails:       []string{"admin@example.com"},
		AuthRatePerMinute: 0,
	}
}
