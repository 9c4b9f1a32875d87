package assets

import (
	_ "embed"
)

// DefaultSettingsYAML contains the embedded default checker settings.
//
//go:embed defaults/settings.yaml
var DefaultSettingsYAML []byte
