// Package chart computes the Kubernetes name and label strings a Helm chart
// derives from its metadata, and edits Chart.yaml for prerelease publishing.
// The helpers mirror the chart's _helpers.tpl so release tooling and
// templates agree on naming.
package chart

import (
	"strings"
)

// maxNameLength is the Kubernetes name length limit (DNS label limit)
const maxNameLength = 63

// truncName caps a name at the Kubernetes limit and trims the trailing
// dash a hard cut can leave behind
func truncName(name string) string {
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return strings.TrimRight(name, "-")
}

// Label builds the helm.sh/chart label value: name and version joined with a
// dash, with "+" replaced by "_" since label values cannot contain it
func Label(name, version string) string {
	return truncName(name + "-" + strings.ReplaceAll(version, "+", "_"))
}

// Name returns the chart name, preferring the values-level override
func Name(chartName, nameOverride string) string {
	if nameOverride != "" {
		return truncName(nameOverride)
	}
	return truncName(chartName)
}

// Fullname derives the canonical resource name for a release following the
// usual Helm convention: an explicit override wins, a release name already
// containing the chart name is used as-is, and otherwise the two are joined.
func Fullname(releaseName, chartName, nameOverride, fullnameOverride string) string {
	if fullnameOverride != "" {
		return truncName(fullnameOverride)
	}

	name := chartName
	if nameOverride != "" {
		name = nameOverride
	}

	if strings.Contains(releaseName, name) {
		return truncName(releaseName)
	}
	return truncName(releaseName + "-" + name)
}

// Labels returns the common label set stamped on every chart resource
func Labels(chartName, chartVersion, appVersion, releaseName string) map[string]string {
	labels := map[string]string{
		"helm.sh/chart":                Label(chartName, chartVersion),
		"app.kubernetes.io/managed-by": "Helm",
	}
	for k, v := range SelectorLabels(chartName, releaseName) {
		labels[k] = v
	}
	if appVersion != "" {
		labels["app.kubernetes.io/version"] = appVersion
	}
	return labels
}

// SelectorLabels returns the immutable subset of labels used for selectors
func SelectorLabels(chartName, releaseName string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":     chartName,
		"app.kubernetes.io/instance": releaseName,
	}
}

// ServiceAccountName returns the service account a release should use: the
// values-level name when set, the release fullname otherwise
func ServiceAccountName(override, fullname string) string {
	if override != "" {
		return override
	}
	return fullname
}

// ConfigMapName returns the name of the release's configuration ConfigMap
func ConfigMapName(fullname string) string {
	return truncName(fullname + "-config")
}
