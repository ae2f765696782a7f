// Package runtime abstracts the container engine behind a narrow interface.
// The engine core only ever talks to an Adapter, so tests run against a fake
// and production runs against Docker.
package runtime

import (
	"context"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
)

// CreateOptions describes the container to provision.
type CreateOptions struct {
	Name     string
	Image    string
	Spec     models.ResourceSpec
	HostPort int // host port published to container port 80
}

// ExecResult carries the outcome of a command run inside a container.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Ok reports whether the command exited cleanly.
func (r ExecResult) Ok() bool {
	return r.ExitCode == 0
}

// Adapter is the container engine surface the rest of the engine depends on.
type Adapter interface {
	// Create provisions and starts a container, returning its runtime ID.
	Create(ctx context.Context, opts CreateOptions) (string, error)

	// Start starts a stopped container.
	Start(ctx context.Context, id string) error

	// Stop stops a running container.
	Stop(ctx context.Context, id string) error

	// Restart restarts a container.
	Restart(ctx context.Context, id string) error

	// Destroy force-removes a container. Destroying a missing container
	// is not an error.
	Destroy(ctx context.Context, id string) error

	// Exec runs a command inside a running container, bounded by timeout.
	Exec(ctx context.Context, id string, cmd []string, timeout time.Duration) (ExecResult, error)

	// Exists reports whether the container is known to the engine.
	Exists(ctx context.Context, id string) (bool, error)

	// Running reports whether the container is currently running.
	Running(ctx context.Context, id string) (bool, error)
}
