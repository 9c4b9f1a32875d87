package domain

import "time"

// Config holds the checker tunables. It is built once at startup and treated as read-only.
type Config struct {
	EnvFile          string   `yaml:"env_file" json:"env_file"`
	HTTPTimeout      int      `yaml:"http_timeout" json:"http_timeout"`
	DBTimeout        int      `yaml:"db_timeout" json:"db_timeout"`
	DockerTimeout    int      `yaml:"docker_timeout" json:"docker_timeout"`
	N8NBaseURL       string   `yaml:"n8n_base_url" json:"n8n_base_url"`
	N8NWebhookPath   string   `yaml:"n8n_webhook_path" json:"n8n_webhook_path"`
	RequiredServices []string `yaml:"required_services" json:"required_services"`
	RequiredTables   []string `yaml:"db_required_tables" json:"db_required_tables"`
	TestEndpoints    []string `yaml:"test_endpoints" json:"test_endpoints"`
}

// HTTPTimeoutDuration converts the HTTP timeout to a duration.
func (c Config) HTTPTimeoutDuration() time.Duration {
	return seconds(c.HTTPTimeout)
}

// DBTimeoutDuration converts the database timeout to a duration.
func (c Config) DBTimeoutDuration() time.Duration {
	return seconds(c.DBTimeout)
}

// DockerTimeoutDuration converts the Docker timeout to a duration.
func (c Config) DockerTimeoutDuration() time.Duration {
	return seconds(c.DockerTimeout)
}

// Services returns a copy of the required container names.
func (c Config) Services() []string { return cloneStrings(c.RequiredServices) }

// Tables returns a copy of the required table names.
func (c Config) Tables() []string { return cloneStrings(c.RequiredTables) }

// Endpoints returns a copy of the endpoint paths to probe.
func (c Config) Endpoints() []string { return cloneStrings(c.TestEndpoints) }

// Clone returns a deep copy.
func (c Config) Clone() Config {
	c.RequiredServices = cloneStrings(c.RequiredServices)
	c.RequiredTables = cloneStrings(c.RequiredTables)
	c.TestEndpoints = cloneStrings(c.TestEndpoints)
	return c
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
