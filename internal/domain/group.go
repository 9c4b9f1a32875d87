package domain

import "fmt"

// CheckGroup names one check module.
type CheckGroup string

const (
	GroupDocker     CheckGroup = "docker"
	GroupDatabase   CheckGroup = "database"
	GroupN8N        CheckGroup = "n8n"
	GroupAPIs       CheckGroup = "apis"
	GroupPGListener CheckGroup = "pg_listener"
	GroupResources  CheckGroup = "resources"
)

// GroupOrder is the fixed execution order.
var GroupOrder = []CheckGroup{
	GroupDocker,
	GroupDatabase,
	GroupN8N,
	GroupAPIs,
	GroupPGListener,
	GroupResources,
}

// Preset is a named selection of groups.
type Preset string

const (
	PresetFull       Preset = "full"
	PresetQuick      Preset = "quick"
	PresetDockerOnly Preset = "docker-only"
	PresetAPIOnly    Preset = "api-only"
)

// Groups expands the preset into groups in execution order.
func (p Preset) Groups() ([]CheckGroup, error) {
	switch p {
	case PresetFull, "":
		return append([]CheckGroup(nil), GroupOrder...), nil
	case PresetQuick:
		return []CheckGroup{GroupDocker, GroupDatabase, GroupN8N}, nil
	case PresetDockerOnly:
		return []CheckGroup{GroupDocker}, nil
	case PresetAPIOnly:
		return []CheckGroup{GroupN8N, GroupAPIs}, nil
	default:
		return nil, fmt.Errorf("unknown check preset %q", string(p))
	}
}

// Label is the progress marker printed before a group runs.
func (g CheckGroup) Label() string {
	switch g {
	case GroupDocker:
		return "🐳 Checking Docker services..."
	case GroupDatabase:
		return "🗄️  Checking database connectivity..."
	case GroupN8N:
		return "⚡ Checking n8n API and webhooks..."
	case GroupAPIs:
		return "🌐 Checking external APIs..."
	case GroupPGListener:
		return "📡 Checking pg-listener integration..."
	case GroupResources:
		return "💻 Checking system resources..."
	default:
		return fmt.Sprintf("Checking %s...", string(g))
	}
}
