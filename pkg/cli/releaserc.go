package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mekorot/linker/pkg/release"
	"github.com/urfave/cli/v3"
)

func cmdReleaserc() *cli.Command {
	return &cli.Command{
		Name:  "releaserc",
		Usage: "Generate semantic-release configuration for a sub-project",
		Commands: []*cli.Command{
			cmdReleasercComponent(release.ComponentApp, "Generate app/.releaserc"),
			cmdReleasercComponent(release.ComponentChart, "Generate chart/.releaserc"),
		},
	}
}

func cmdReleasercComponent(component release.Component, usage string) *cli.Command {
	var (
		branch  string
		extends string
		output  string
		stdout  bool
	)

	return &cli.Command{
		Name:  string(component),
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "branch",
				Usage:       "Branch to generate for (default: current git branch)",
				Destination: &branch,
				Sources:     cli.EnvVars("LINKER_RELEASE_BRANCH"),
			},
			&cli.StringFlag{
				Name:        "extends",
				Usage:       "Shareable configuration to extend",
				Destination: &extends,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output path (default: <component>/.releaserc)",
				Destination: &output,
			},
			&cli.BoolFlag{
				Name:        "stdout",
				Usage:       "Print the configuration instead of writing a file",
				Destination: &stdout,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if branch == "" {
				var err error
				branch, err = release.CurrentBranch()
				if err != nil {
					return err
				}
			}
			if branch == "" {
				return goerr.New("no branch given and no branch checked out")
			}

			cfg := release.NewConfig(component, branch, extends)

			if stdout {
				data, err := cfg.Marshal()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(os.Stdout, string(data))
				return err
			}

			path := output
			if path == "" {
				path = component.OutputPath()
			}

			if err := cfg.Write(path); err != nil {
				return err
			}

			logger.Info("Wrote release configuration",
				slog.String("component", string(component)),
				slog.String("branch", branch),
				slog.String("channel", release.DeriveChannel(branch)),
				slog.String("path", path),
			)
			return nil
		},
	}
}
