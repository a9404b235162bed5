package vfs

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-workspace explorer config, kept at the
// workspace root alongside the files it describes.
const ConfigFileName = ".xp.yml"

// fileConfig mirrors the .xp.yml schema.
type fileConfig struct {
	ShowHidden *bool    `yaml:"show_hidden"`
	Ignore     []string `yaml:"ignore"`
}

// LoadConfig returns base overlaid with the workspace's .xp.yml, if one
// exists. A missing or unreadable file leaves base untouched; per-workspace
// ignore patterns are appended rather than replacing the base set.
func LoadConfig(root string, base Config) Config {
	data, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if err != nil {
		return base
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base
	}

	if fc.ShowHidden != nil {
		base.ShowHidden = *fc.ShowHidden
	}
	base.Ignore = append(base.Ignore, fc.Ignore...)
	return base
}
