// Package testhelpers provides a containerized demo stack for integration
// testing.
//
// This approach uses testcontainers-go to build the demo image from the
// repository Dockerfile and run all three mock services in one container,
// giving a portable test environment that only needs a Docker daemon.
package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Service ports inside the demo container.
const (
	CustomerPort    nat.Port = "8001/tcp"
	AppointmentPort nat.Port = "8002/tcp"
	TechnicianPort  nat.Port = "8003/tcp"
)

// DemoStack is a running containerized instance of the demo services.
//
// Example usage:
//
//	func TestAgainstContainer(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("skipping container-based test in short mode")
//	    }
//	    stack := testhelpers.SetupDemoStack(t, "..")
//	    resp, err := http.Get(stack.BaseURL(t, testhelpers.CustomerPort) + "/health")
//	    // ... test code ...
//	}
type DemoStack struct {
	// Container is the running demo container.
	Container testcontainers.Container
}

// SetupDemoStack builds the demo image from the Dockerfile at contextDir and
// starts a container running all three services. The container is terminated
// via t.Cleanup when the test completes.
//
// Requirements: a Docker daemon reachable through the usual environment.
func SetupDemoStack(t *testing.T, contextDir string) *DemoStack {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		FromDockerfile: testcontainers.FromDockerfile{
			Context:    contextDir,
			Dockerfile: "Dockerfile",
		},
		ExposedPorts: []string{string(CustomerPort), string(AppointmentPort), string(TechnicianPort)},
		WaitingFor: wait.ForHTTP("/health").
			WithPort(CustomerPort).
			WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start demo container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate demo container: %v", err)
		}
	})

	return &DemoStack{Container: container}
}

// BaseURL returns the host-reachable base URL for one of the service ports.
func (s *DemoStack) BaseURL(t *testing.T, port nat.Port) string {
	t.Helper()

	ctx := context.Background()

	host, err := s.Container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	mapped, err := s.Container.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("Failed to get mapped port for %s: %v", port, err)
	}

	return fmt.Sprintf("http://%s:%s", host, mapped.Port())
}
