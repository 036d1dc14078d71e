//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestGateWithMySQL tests the covgate CLI with a MySQL history backend.
func TestGateWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "covgate",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/covgate?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("COVGATE_HISTORY_BACKEND", "mysql")
	_ = os.Setenv("COVGATE_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("COVGATE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("COVGATE_HISTORY_DB_CONNECT") }()

	runHistoryLifecycle(t)
}

// TestGateWithPostgres tests the covgate CLI with a PostgreSQL history backend.
func TestGateWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("COVGATE_HISTORY_BACKEND", "postgresql")
	_ = os.Setenv("COVGATE_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("COVGATE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("COVGATE_HISTORY_DB_CONNECT") }()

	runHistoryLifecycle(t)
}

// runHistoryLifecycle exercises the history workflow against whichever
// backend the environment points at.
func runHistoryLifecycle(t *testing.T) {
	t.Helper()

	// Start from a clean slate
	output, code := runCovgateCommand(t, "history", "clear")
	require.Equal(t, 0, code, "Output: %s", output)

	// Record a passing run
	output, code = runCovgateCommand(t,
		"gate", "testdata/coverage_pass.json",
		"--config", "testdata/covgate.yaml")
	require.Equal(t, 0, code, "Output: %s", output)

	// Record a failing run
	output, code = runCovgateCommand(t,
		"gate", "testdata/coverage_fail.json",
		"--config", "testdata/covgate.yaml")
	require.Equal(t, 1, code, "Output: %s", output)

	// Both runs should appear in the status summary
	output, code = runCovgateCommand(t, "history", "status")
	require.Equal(t, 0, code, "Output: %s", output)
	require.Contains(t, output, "Total Runs: 2")

	// Clearing should drop everything again
	output, code = runCovgateCommand(t, "history", "clear")
	require.Equal(t, 0, code, "Output: %s", output)
}
