package admin_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for admin API end-to-end tests.
 * This includes container setup, sessions and assertions.
 */

const (
	testImageName = "realmadmin-admin-test:latest"

	bootstrapClientID     = "console"
	bootstrapClientSecret = "test-bootstrap-secret-12345"
	realm                 = "master"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Admin API Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Admin API Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/admin/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupAdminContainer starts the admin API in a container and returns the
// base URL. Rate limits are relaxed unless defaultLimits is set.
func setupAdminContainer(t *testing.T, defaultLimits bool) string {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ADMIN_DATABASE_FILE":           "/tmp/admin.db",
		"ADMIN_PEPPER_FILE":             "/tmp/pepper",
		"ADMIN_SIGNING_KEY_FILE":        "/tmp/signing.pem",
		"ADMIN_ISSUER":                  "realmadmin-e2e",
		"ADMIN_BOOTSTRAP_CLIENT_ID":     bootstrapClientID,
		"ADMIN_BOOTSTRAP_CLIENT_SECRET": bootstrapClientSecret,
		"ADMIN_DEFAULT_REALM":           realm,
		"ENV":                           "test",
		"LOG_LEVEL":                     "info",
		"LOG_FORMAT":                    "json",
	}
	if !defaultLimits {
		env["RATELIMIT_STRICT_REQUESTS"] = "1000"
		env["RATELIMIT_STRICT_BURST"] = "1000"
		env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
		env["RATELIMIT_MODERATE_BURST"] = "1000"
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// newSession authenticates as the bootstrap client.
func newSession(t *testing.T, client *adminsdk.SDKClient, scopes ...string) *adminsdk.Session {
	t.Helper()

	session, err := client.AuthenticateWithClientCredentials(t.Context(), bootstrapClientID, bootstrapClientSecret, scopes)
	require.NoError(t, err, "client credentials grant should succeed")
	require.NotEmpty(t, session.AccessToken())

	return session
}

// roleNames collects names in page order.
func roleNames(page *adminsdk.RolePage) []string {
	names := make([]string, len(page.Roles))
	for i, r := range page.Roles {
		names[i] = r.Name
	}
	return names
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *adminsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertStatus checks err is an *adminsdk.APIError with the given status.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr *adminsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, "unexpected error: %s", apiErr)
}
