package runtime

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	dockertypes "github.com/docker/docker/api/types"
	dockercontainer "github.com/docker/docker/api/types/container"
	dockerclient "github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	dockernat "github.com/docker/go-connections/nat"
	dockerunits "github.com/docker/go-units"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
)

// sshPort is the container port published to the host for each VPS.
const sshPort = "80/tcp"

// DockerAdapter implements Adapter against the local Docker daemon.
type DockerAdapter struct {
	client dockerclient.CommonAPIClient
}

// NewDockerAdapter connects to the local Docker daemon.
func NewDockerAdapter() (*DockerAdapter, error) {
	client, err := dockerclient.NewClientWithOpts(dockerclient.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("conectando con Docker: %w", err)
	}
	return &DockerAdapter{client: client}, nil
}

// NewDockerAdapterWithClient wraps an existing Docker client. Tests use this
// to substitute a mock client.
func NewDockerAdapterWithClient(client dockerclient.CommonAPIClient) *DockerAdapter {
	return &DockerAdapter{client: client}
}

// Create provisions and starts a systemd-capable container with the plan's
// memory and CPU limits, publishing container port 80 on opts.HostPort.
func (d *DockerAdapter) Create(ctx context.Context, opts CreateOptions) (string, error) {
	config := dockercontainer.Config{
		Image: opts.Image,
		Tty:   true,
		ExposedPorts: dockernat.PortSet{
			sshPort: struct{}{},
		},
	}
	hostConfig := buildHostConfig(opts)

	body, err := d.client.ContainerCreate(ctx, &config, &hostConfig, nil, nil, opts.Name)
	if err != nil {
		return "", fmt.Errorf("creando contenedor: %w", err)
	}

	if err := d.client.ContainerStart(ctx, body.ID, dockertypes.ContainerStartOptions{}); err != nil {
		// Creation succeeded but the container is unusable. Clean it up so
		// no orphan is left behind.
		_ = d.client.ContainerRemove(ctx, body.ID, dockertypes.ContainerRemoveOptions{Force: true})
		return "", fmt.Errorf("arrancando contenedor: %w", err)
	}

	logger.Success(fmt.Sprintf("Contenedor %s creado (puerto %d)", body.ID[:12], opts.HostPort), "Docker")
	return body.ID, nil
}

// buildHostConfig translates the plan into the container host config. The
// image runs systemd as PID 1, which needs the host cgroup namespace, the
// cgroup tree mounted read-only and the tmpfs mounts below.
func buildHostConfig(opts CreateOptions) dockercontainer.HostConfig {
	return dockercontainer.HostConfig{
		Privileged:   true,
		CgroupnsMode: dockercontainer.CgroupnsMode("host"),
		Tmpfs: map[string]string{
			"/run":      "",
			"/run/lock": "",
		},
		Binds: []string{"/sys/fs/cgroup:/sys/fs/cgroup:ro"},
		PortBindings: dockernat.PortMap{
			sshPort: []dockernat.PortBinding{
				{HostIP: "0.0.0.0", HostPort: strconv.Itoa(opts.HostPort)},
			},
		},
		Resources: dockercontainer.Resources{
			Memory:   int64(opts.Spec.RAMGB) * dockerunits.GiB,
			NanoCPUs: int64(opts.Spec.CPU) * 1e9,
		},
	}
}

// Start starts a stopped container.
func (d *DockerAdapter) Start(ctx context.Context, id string) error {
	if err := d.client.ContainerStart(ctx, id, dockertypes.ContainerStartOptions{}); err != nil {
		return fmt.Errorf("arrancando contenedor %s: %w", shortID(id), err)
	}
	return nil
}

// Stop stops a running container with a 30 second grace period.
func (d *DockerAdapter) Stop(ctx context.Context, id string) error {
	timeout := 30 * time.Second
	if err := d.client.ContainerStop(ctx, id, &timeout); err != nil {
		return fmt.Errorf("deteniendo contenedor %s: %w", shortID(id), err)
	}
	return nil
}

// Restart restarts a container with a 30 second grace period.
func (d *DockerAdapter) Restart(ctx context.Context, id string) error {
	timeout := 30 * time.Second
	if err := d.client.ContainerRestart(ctx, id, &timeout); err != nil {
		return fmt.Errorf("reiniciando contenedor %s: %w", shortID(id), err)
	}
	return nil
}

// Destroy force-removes a container. A missing container is not an error.
func (d *DockerAdapter) Destroy(ctx context.Context, id string) error {
	err := d.client.ContainerRemove(ctx, id, dockertypes.ContainerRemoveOptions{Force: true})
	if err != nil {
		if dockerclient.IsErrNotFound(err) {
			return nil
		}
		return fmt.Errorf("eliminando contenedor %s: %w", shortID(id), err)
	}
	return nil
}

// Exec runs cmd inside the container and collects its output, bounded by
// timeout. The exit code is reported in the result, not as an error.
func (d *DockerAdapter) Exec(ctx context.Context, id string, cmd []string, timeout time.Duration) (ExecResult, error) {
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	created, err := d.client.ContainerExecCreate(execCtx, id, dockertypes.ExecConfig{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return ExecResult{}, fmt.Errorf("creando exec en %s: %w", shortID(id), err)
	}

	attach, err := d.client.ContainerExecAttach(execCtx, created.ID, dockertypes.ExecStartCheck{})
	if err != nil {
		return ExecResult{}, fmt.Errorf("adjuntando exec en %s: %w", shortID(id), err)
	}
	defer attach.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, attach.Reader); err != nil {
		return ExecResult{}, fmt.Errorf("leyendo salida de exec en %s: %w", shortID(id), err)
	}

	inspect, err := d.client.ContainerExecInspect(execCtx, created.ID)
	if err != nil {
		return ExecResult{}, fmt.Errorf("inspeccionando exec en %s: %w", shortID(id), err)
	}

	return ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: inspect.ExitCode,
	}, nil
}

// Exists reports whether the container is known to Docker.
func (d *DockerAdapter) Exists(ctx context.Context, id string) (bool, error) {
	_, err := d.client.ContainerInspect(ctx, id)
	if err != nil {
		if dockerclient.IsErrNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("inspeccionando contenedor %s: %w", shortID(id), err)
	}
	return true, nil
}

// Running reports whether the container is currently running.
func (d *DockerAdapter) Running(ctx context.Context, id string) (bool, error) {
	info, err := d.client.ContainerInspect(ctx, id)
	if err != nil {
		if dockerclient.IsErrNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("inspeccionando contenedor %s: %w", shortID(id), err)
	}
	return info.State != nil && info.State.Running, nil
}

// shortID trims a container ID for log output.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
