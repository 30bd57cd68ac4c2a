package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	containerUser     = "jokebook"
	containerPassword = "jokebook"
	containerDatabase = "jokebook"
)

// DatabaseContainer is a throwaway database server and the configuration to reach it
type DatabaseContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Terminate stops and removes the container. t may be nil outside of tests.
func (dc *DatabaseContainer) Terminate(t testing.TB) {
	if dc == nil || dc.Container == nil {
		return
	}
	if err := dc.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate database container: %v", err)
	}
}

type containerSpec struct {
	image   string
	port    nat.Port
	env     map[string]string
	waitFor wait.Strategy
	dsn     func(host, port string) string
}

func specFor(dbType string) (containerSpec, error) {
	switch dbType {
	case "postgres":
		return containerSpec{
			image: imageFromEnv("postgres:16-alpine"),
			port:  "5432/tcp",
			env: map[string]string{
				"POSTGRES_USER":     containerUser,
				"POSTGRES_PASSWORD": containerPassword,
				"POSTGRES_DB":       containerDatabase,
			},
			// The entrypoint restarts the server once after init
			waitFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
			dsn: func(host, port string) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
					containerUser, containerPassword, host, port, containerDatabase)
			},
		}, nil

	case "mysql", "mariadb":
		return containerSpec{
			image: imageFromEnv("mariadb:11"),
			port:  "3306/tcp",
			env: map[string]string{
				"MARIADB_ROOT_PASSWORD": containerPassword,
				"MARIADB_USER":          containerUser,
				"MARIADB_PASSWORD":      containerPassword,
				"MARIADB_DATABASE":      containerDatabase,
			},
			waitFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(90 * time.Second),
			dsn: func(host, port string) string {
				return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
					containerUser, containerPassword, host, port, containerDatabase)
			},
		}, nil

	default:
		return containerSpec{}, fmt.Errorf("no test container for database type %q", dbType)
	}
}

// StartDatabaseContainer starts a database server of the given type and returns
// a configuration pointing at it. DB_IMAGE overrides the default image.
func StartDatabaseContainer(ctx context.Context, dbType string) (*DatabaseContainer, error) {
	spec, err := specFor(dbType)
	if err != nil {
		return nil, err
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        spec.image,
			ExposedPorts: []string{string(spec.port)},
			Env:          spec.env,
			WaitingFor:   spec.waitFor,
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s container: %w", dbType, err)
	}
	dc := &DatabaseContainer{Container: container}

	host, err := container.Host(ctx)
	if err != nil {
		dc.Terminate(nil)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, spec.port)
	if err != nil {
		dc.Terminate(nil)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dc.Config = &config.Config{
		Port:              "3000",
		RequestTimeout:    10 * time.Second,
		LogLevel:          "warn",
		DBType:            dbType,
		DatabaseURL:       spec.dsn(host, port.Port()),
		DBConnectionLimit: 5,
		DBConnMaxLifetime: 30 * time.Minute,
	}
	return dc, nil
}

// RequireDatabaseContainer starts a container for a test, skipping in short mode
// and terminating it on cleanup.
func RequireDatabaseContainer(t *testing.T, dbType string) *DatabaseContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}

	dc, err := StartDatabaseContainer(context.Background(), dbType)
	if err != nil {
		t.Skipf("Database container unavailable: %v", err)
	}
	t.Cleanup(func() { dc.Terminate(t) })
	return dc
}

func imageFromEnv(fallback string) string {
	if image := os.Getenv("DB_IMAGE"); image != "" {
		return image
	}
	return fallback
}

func logMessage(t testing.TB, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
