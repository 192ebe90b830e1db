// Helpers for running integration tests against a containerized database.
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DBName     = "gameshelf"
	DBUser     = "gameshelf"
	DBPassword = "gameshelf"
)

// DBContainer wraps a running database container with its mapped endpoint.
type DBContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// Terminate stops and removes the container.
func (c *DBContainer) Terminate(t *testing.T) {
	if c.Container == nil {
		return
	}
	if err := c.Container.Terminate(context.Background()); err != nil {
		t.Logf("Failed to terminate database container: %v", err)
	}
}

// StartMariaDB starts a MariaDB container and waits until it accepts
// connections for the test credentials.
func StartMariaDB(t *testing.T) *DBContainer {
	ctx := context.Background()

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mariadb:11",
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MARIADB_DATABASE":      DBName,
				"MARIADB_USER":          DBUser,
				"MARIADB_PASSWORD":      DBPassword,
				"MARIADB_ROOT_PASSWORD": "root",
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}

	db := &DBContainer{Container: container, Host: host, Port: port.Port()}
	db.waitReady(t)
	return db
}

// waitReady pings until the database answers with the test credentials.
// The listening port can be up before authentication is.
func (c *DBContainer) waitReady(t *testing.T) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", DBUser, DBPassword, c.Host, c.Port, DBName)

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := sql.Open("mysql", dsn)
		if err == nil {
			err = conn.Ping()
			_ = conn.Close()
			if err == nil {
				return
			}
		}
		time.Sleep(time.Second)
	}

	c.Terminate(t)
	t.Fatal("MariaDB did not become ready in time")
}
