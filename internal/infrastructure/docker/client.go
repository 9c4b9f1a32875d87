// Package docker checks that the required ecosystem containers are running and healthy.
package docker

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// API is the subset of the Docker Engine client the check uses.
type API interface {
	Ping(ctx context.Context) (types.Ping, error)
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	Close() error
}

// Connector opens a fresh client handle.
type Connector func() (API, error)

// NewEnvConnector connects using DOCKER_HOST and friends, negotiating the API version.
func NewEnvConnector() Connector {
	return func() (API, error) {
		return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	}
}

// Probe reports whether a client can be constructed from the environment.
// It does not contact the daemon.
func Probe(connect Connector) (bool, error) {
	cli, err := connect()
	if err != nil {
		return false, err
	}
	return true, cli.Close()
}

var _ API = (*client.Client)(nil)
