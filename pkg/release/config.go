package release

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Component selects which sub-project a config is generated for
type Component string

const (
	// ComponentApp releases the application itself
	ComponentApp Component = "app"
	// ComponentChart releases the Helm chart
	ComponentChart Component = "chart"
)

// OutputPath returns the default .releaserc location for the component
func (c Component) OutputPath() string {
	return filepath.Join(string(c), ".releaserc")
}

// Branch is one entry of the semantic-release branches list
type Branch struct {
	Name       string `yaml:"name"`
	Prerelease string `yaml:"prerelease,omitempty"`
}

// Config is the semantic-release configuration document
type Config struct {
	Extends   string   `yaml:"extends,omitempty"`
	TagFormat string   `yaml:"tagFormat,omitempty"`
	Plugins   []any    `yaml:"plugins"`
	Branches  []Branch `yaml:"branches"`
}

// NewConfig builds the .releaserc document for a component and branch. On
// main only stable releases are configured; on any other branch the branch is
// added as a prerelease channel named after its derived channel identifier.
func NewConfig(component Component, branch, extends string) *Config {
	cfg := &Config{
		Extends:   extends,
		TagFormat: tagFormat(component),
		Plugins:   plugins(component),
		Branches: []Branch{
			{Name: MainBranch},
		},
	}

	if branch != MainBranch {
		cfg.Branches = append(cfg.Branches, Branch{
			Name:       branch,
			Prerelease: DeriveChannel(branch),
		})
	}

	return cfg
}

// tagFormat keeps app and chart tags in separate namespaces
func tagFormat(component Component) string {
	if component == ComponentChart {
		return "chart-v${version}"
	}
	return "v${version}"
}

// plugins returns the plugin pipeline for the component. The chart pipeline
// additionally rewrites Chart.yaml to the next version and commits it back.
func plugins(component Component) []any {
	base := []any{
		"@semantic-release/commit-analyzer",
		"@semantic-release/release-notes-generator",
	}

	if component != ComponentChart {
		return base
	}

	return append(base,
		[]any{
			"@semantic-release/exec",
			map[string]string{
				"prepareCmd": "linker chart set-version ${nextRelease.version}",
			},
		},
		[]any{
			"@semantic-release/git",
			map[string]any{
				"assets":  []string{"chart/Chart.yaml"},
				"message": "chore(release): chart ${nextRelease.version} [skip ci]",
			},
		},
	)
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, goerr.Wrap(err, "marshaling release config")
	}
	return data, nil
}

// Write renders the config and writes it to path, creating parent directories
// as needed
func (c *Config) Write(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return goerr.Wrap(err, "creating output directory", goerr.V("dir", dir))
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "writing release config", goerr.V("path", path))
	}
	return nil
}
