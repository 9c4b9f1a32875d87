package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

const (
	shortIDLength = 12
	healthyStatus = "healthy"
	unknownValue  = "unknown"
)

// ContainerCheck verifies the daemon and each required service container.
type ContainerCheck struct {
	Available bool
	Connect   Connector
	Services  []string
	Timeout   time.Duration
	Logger    ports.Logger
}

// NewContainerCheck builds the check. available comes from the startup capability probe.
func NewContainerCheck(cfg domain.Config, available bool, connect Connector, log ports.Logger) *ContainerCheck {
	return &ContainerCheck{
		Available: available,
		Connect:   connect,
		Services:  cfg.Services(),
		Timeout:   cfg.DockerTimeoutDuration(),
		Logger:    log,
	}
}

func (c *ContainerCheck) Name() string { return string(domain.GroupDocker) }

// Run implements ports.Check. The client handle is closed before results are returned.
func (c *ContainerCheck) Run(ctx context.Context) []domain.CheckResult {
	if !c.Available || c.Connect == nil {
		return []domain.CheckResult{domain.Skip("docker_services", "Docker not available")}
	}

	cli, err := c.Connect()
	if err != nil {
		return []domain.CheckResult{domain.Fail("docker_daemon", fmt.Sprintf("Docker daemon not accessible: %v", err))}
	}
	defer func() {
		if err := cli.Close(); err != nil {
			c.Logger.Warn("docker client close failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	start := time.Now()
	pingCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	ping, err := cli.Ping(pingCtx)
	cancel()
	if err != nil {
		return []domain.CheckResult{
			domain.Fail("docker_daemon", fmt.Sprintf("Docker daemon not accessible: %v", err)).
				WithDuration(time.Since(start)),
		}
	}
	c.Logger.Debug("docker daemon reachable", map[string]interface{}{
		"api_version": ping.APIVersion,
		"os_type":     ping.OSType,
	})

	results := make([]domain.CheckResult, 0, len(c.Services))
	for _, service := range c.Services {
		results = append(results, c.checkService(ctx, cli, service))
	}
	return results
}

func (c *ContainerCheck) checkService(ctx context.Context, cli API, service string) domain.CheckResult {
	name := "docker_" + service
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	containers, err := cli.ContainerList(callCtx, container.ListOptions{
		Filters: filters.NewArgs(
			filters.Arg("name", service),
			filters.Arg("status", "running"),
		),
	})
	if err != nil {
		return domain.Fail(name, fmt.Sprintf("Error checking %s: %v", service, err)).WithDuration(time.Since(start))
	}
	if len(containers) == 0 {
		return domain.Fail(name, fmt.Sprintf("%s container not found or not running", service)).WithDuration(time.Since(start))
	}

	summary := containers[0]
	inspect, err := cli.ContainerInspect(callCtx, summary.ID)
	if err != nil {
		return domain.Fail(name, fmt.Sprintf("Error checking %s: %v", service, err)).WithDuration(time.Since(start))
	}

	health := HealthStatus(inspect)
	details := domain.NewDetails().
		With("container_id", domain.Text(shortID(summary.ID))).
		With("image", domain.Text(imageName(summary))).
		With("status", domain.Text(string(summary.State))).
		With("health", domain.Text(health)).
		With("ports", domain.Strings(portKeys(summary)))

	var result domain.CheckResult
	if IsHealthy(health) {
		result = domain.Pass(name, fmt.Sprintf("%s container is running and healthy", service))
	} else {
		result = domain.Warn(name, fmt.Sprintf("%s container running but health: %s", service, health))
	}
	return result.WithDetails(details).WithDuration(time.Since(start))
}

// HealthStatus reads the HEALTHCHECK state, or NoHealthCheckStatus when none is configured.
func HealthStatus(inspect container.InspectResponse) string {
	if inspect.ContainerJSONBase == nil || inspect.State == nil {
		return unknownValue
	}
	if inspect.State.Health == nil {
		return domain.NoHealthCheckStatus
	}
	return string(inspect.State.Health.Status)
}

// IsHealthy treats a container without a HEALTHCHECK as healthy.
// This only proves the process is running, not that the service answers.
func IsHealthy(health string) bool {
	return health == healthyStatus || health == domain.NoHealthCheckStatus
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func imageName(summary container.Summary) string {
	if summary.Image == "" {
		return unknownValue
	}
	return summary.Image
}

// portKeys renders exposed ports as "5678/tcp", once per port/protocol.
func portKeys(summary container.Summary) []string {
	seen := make(map[string]struct{}, len(summary.Ports))
	keys := make([]string, 0, len(summary.Ports))
	for _, p := range summary.Ports {
		key := fmt.Sprintf("%d/%s", p.PrivatePort, p.Type)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

var _ ports.Check = (*ContainerCheck)(nil)
