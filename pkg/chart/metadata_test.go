package chart_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mekorot/linker/pkg/chart"
)

const testChartYAML = `apiVersion: v2
name: linker
description: Citation entity recognition service
type: application
version: 0.1.0
appVersion: 0.1.0
`

func writeTestChart(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Chart.yaml")
	gt.NoError(t, os.WriteFile(path, []byte(testChartYAML), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestChart(t)

	meta, err := chart.Load(path)
	gt.NoError(t, err)
	gt.Equal(t, meta.Name, "linker")
	gt.Equal(t, meta.Version, "0.1.0")
	gt.Equal(t, meta.AppVersion, "0.1.0")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := chart.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	gt.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	path := writeTestChart(t)

	meta, err := chart.Load(path)
	gt.NoError(t, err)

	gt.NoError(t, meta.SetVersion("0.2.0-foo-bar.3"))
	gt.NoError(t, meta.Save(path))

	reloaded, err := chart.Load(path)
	gt.NoError(t, err)
	gt.Equal(t, reloaded.Version, "0.2.0-foo-bar.3")
	gt.Equal(t, reloaded.Name, "linker")
}

func TestSetVersion_Invalid(t *testing.T) {
	meta := &chart.Metadata{Name: "linker", Version: "0.1.0"}

	tests := []string{"", "not-a-version", "1.2", "v1.2.3.4"}
	for _, version := range tests {
		t.Run(version, func(t *testing.T) {
			gt.Error(t, meta.SetVersion(version))
			gt.Equal(t, meta.Version, "0.1.0")
		})
	}
}
