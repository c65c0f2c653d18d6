package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mekorot/linker/pkg/chart"
	"github.com/urfave/cli/v3"
)

func cmdChart() *cli.Command {
	var chartPath string

	pathFlag := &cli.StringFlag{
		Name:        "chart",
		Usage:       "Path to Chart.yaml",
		Value:       chart.DefaultPath,
		Destination: &chartPath,
		Sources:     cli.EnvVars("LINKER_CHART_PATH"),
	}

	return &cli.Command{
		Name:  "chart",
		Usage: "Helm chart metadata operations",
		Commands: []*cli.Command{
			{
				Name:      "set-version",
				Usage:     "Set the chart version in Chart.yaml",
				ArgsUsage: "<version>",
				Flags:     []cli.Flag{pathFlag},
				Action: func(ctx context.Context, c *cli.Command) error {
					logger := ctxlog.From(ctx)

					version := c.Args().First()
					if version == "" {
						return goerr.New("version argument is required")
					}

					meta, err := chart.Load(chartPath)
					if err != nil {
						return err
					}

					previous := meta.Version
					if err := meta.SetVersion(version); err != nil {
						return err
					}
					if err := meta.Save(chartPath); err != nil {
						return err
					}

					logger.Info("Updated chart version",
						slog.String("chart", meta.Name),
						slog.String("from", previous),
						slog.String("to", version),
					)
					return nil
				},
			},
			{
				Name:  "labels",
				Usage: "Print the labels the chart derives from its metadata",
				Flags: []cli.Flag{
					pathFlag,
					&cli.StringFlag{
						Name:  "release-name",
						Usage: "Release name to compute instance labels for",
						Value: "linker",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					meta, err := chart.Load(chartPath)
					if err != nil {
						return err
					}

					labels := chart.Labels(meta.Name, meta.Version, meta.AppVersion, c.String("release-name"))

					keys := make([]string, 0, len(labels))
					for k := range labels {
						keys = append(keys, k)
					}
					sort.Strings(keys)

					key := color.New(color.FgCyan)
					for _, k := range keys {
						fmt.Printf("%s: %s\n", key.Sprint(k), labels[k])
					}
					return nil
				},
			},
		},
	}
}
