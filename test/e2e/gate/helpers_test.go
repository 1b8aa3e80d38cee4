package gate_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/harborchat/gatehouse/pkg/gatesdk"
)

/*
 * Common constants and helper functions for gatehouse end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "gatehouse-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "admin@example.com"
	adminName      = "Administrator"
	adminPassword  = "Admin123!"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Gatehouse Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Gatehouse Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/gatehouse/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupGateContainer starts the service in a container configured for the
// given consumption mode and returns the base URL.
func setupGateContainer(t *testing.T, mode string, requireInvite bool) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"BOOTSTRAP_TOKEN":             bootstrapToken,
			"GATE_DATABASE_FILE":          "/tmp/gate.db",
			"GATE_PEPPER_FILE":            "/tmp/pepper",
			"GATE_CONSUMPTION_MODE":       mode,
			"GATE_INVITE_DURATION":        "24h",
			"GATE_SIGNUP_REQUIRES_INVITE": fmt.Sprintf("%t", requireInvite),
			"ENV":                         "test",
			"LOG_LEVEL":                   "info",
			"LOG_FORMAT":                  "json",
			// Tests make many rapid requests from one address; production
			// limits would trip before the assertions do.
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// bootstrapAdmin creates the first account and returns its authenticated client.
func bootstrapAdmin(t *testing.T, baseURL string) *gatesdk.SDKClient {
	t.Helper()

	client := gatesdk.NewSDKClient(baseURL)
	sess, err := client.Bootstrap(t.Context(), bootstrapToken, adminEmail, adminName, adminPassword)
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, sess.Token)
	require.NotEmpty(t, sess.UserID)

	return client
}
