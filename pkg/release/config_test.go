package release_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mekorot/linker/pkg/release"
	"gopkg.in/yaml.v3"
)

func TestNewConfig_MainBranch(t *testing.T) {
	cfg := release.NewConfig(release.ComponentApp, "main", "")

	gt.Equal(t, cfg.TagFormat, "v${version}")
	gt.Equal(t, len(cfg.Branches), 1)
	gt.Equal(t, cfg.Branches[0].Name, "main")
	gt.Equal(t, cfg.Branches[0].Prerelease, "")
}

func TestNewConfig_FeatureBranch(t *testing.T) {
	cfg := release.NewConfig(release.ComponentApp, "feature/foo-Bar/baz", "")

	gt.Equal(t, len(cfg.Branches), 2)
	gt.Equal(t, cfg.Branches[0].Name, "main")
	gt.Equal(t, cfg.Branches[1].Name, "feature/foo-Bar/baz")
	gt.Equal(t, cfg.Branches[1].Prerelease, "foo-bar")
}

func TestNewConfig_ChartPlugins(t *testing.T) {
	cfg := release.NewConfig(release.ComponentChart, "main", "")

	gt.Equal(t, cfg.TagFormat, "chart-v${version}")
	// analyzers plus exec and git steps
	gt.Equal(t, len(cfg.Plugins), 4)
	gt.Equal(t, cfg.Plugins[0], "@semantic-release/commit-analyzer")
	gt.Equal(t, cfg.Plugins[1], "@semantic-release/release-notes-generator")

	execStep := gt.Cast[[]any](t, cfg.Plugins[2])
	gt.Equal(t, execStep[0], "@semantic-release/exec")

	gitStep := gt.Cast[[]any](t, cfg.Plugins[3])
	gt.Equal(t, gitStep[0], "@semantic-release/git")
}

func TestNewConfig_AppPluginsHaveNoChartSteps(t *testing.T) {
	cfg := release.NewConfig(release.ComponentApp, "main", "")
	gt.Equal(t, len(cfg.Plugins), 2)
}

func TestNewConfig_Extends(t *testing.T) {
	cfg := release.NewConfig(release.ComponentApp, "main", "shared-config")
	gt.Equal(t, cfg.Extends, "shared-config")

	data, err := cfg.Marshal()
	gt.NoError(t, err)

	var doc map[string]any
	gt.NoError(t, yaml.Unmarshal(data, &doc))
	gt.Equal(t, doc["extends"], "shared-config")
}

func TestConfig_MarshalShape(t *testing.T) {
	cfg := release.NewConfig(release.ComponentApp, "feat/My_Branch!/x", "")

	data, err := cfg.Marshal()
	gt.NoError(t, err)

	var doc struct {
		Branches []map[string]string `yaml:"branches"`
	}
	gt.NoError(t, yaml.Unmarshal(data, &doc))
	gt.Equal(t, len(doc.Branches), 2)
	gt.Equal(t, doc.Branches[1]["prerelease"], "mybranch")

	// extends is omitted when empty
	var raw map[string]any
	gt.NoError(t, yaml.Unmarshal(data, &raw))
	_, hasExtends := raw["extends"]
	gt.Equal(t, hasExtends, false)
}

func TestConfig_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app", ".releaserc")

	cfg := release.NewConfig(release.ComponentApp, "main", "")
	gt.NoError(t, cfg.Write(path))

	data, err := os.ReadFile(path)
	gt.NoError(t, err)

	var doc map[string]any
	gt.NoError(t, yaml.Unmarshal(data, &doc))
	gt.Value(t, doc["branches"]).NotNil()
}

func TestComponent_OutputPath(t *testing.T) {
	gt.Equal(t, release.ComponentApp.OutputPath(), filepath.Join("app", ".releaserc"))
	gt.Equal(t, release.ComponentChart.OutputPath(), filepath.Join("chart", ".releaserc"))
}
