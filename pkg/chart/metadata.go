package chart

import (
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the chart metadata lives relative to the repo root
const DefaultPath = "chart/Chart.yaml"

// Metadata is the subset of Chart.yaml this tool reads and writes
type Metadata struct {
	APIVersion  string `yaml:"apiVersion"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Version     string `yaml:"version"`
	AppVersion  string `yaml:"appVersion,omitempty"`
}

// Load reads chart metadata from a Chart.yaml file
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "reading chart metadata", goerr.V("path", path))
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, goerr.Wrap(err, "parsing chart metadata", goerr.V("path", path))
	}
	return &meta, nil
}

// Save writes chart metadata back to a Chart.yaml file
func (m *Metadata) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return goerr.Wrap(err, "marshaling chart metadata")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "writing chart metadata", goerr.V("path", path))
	}
	return nil
}

// SetVersion updates the chart version after validating it parses as semver.
// Prerelease identifiers (the channel suffix semantic-release appends) are
// accepted.
func (m *Metadata) SetVersion(version string) error {
	if _, err := semver.StrictNewVersion(version); err != nil {
		return goerr.Wrap(err, "invalid chart version", goerr.V("version", version))
	}
	m.Version = version
	return nil
}
