package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"letterbox/internal/config"
	"letterbox/internal/deps"
	"letterbox/internal/preflight"
	"letterbox/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Report tool availability and output directory readiness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var dir string
			if len(args) == 1 {
				dir, err = config.ExpandPath(args[0])
				if err != nil {
					return services.Wrap(services.ErrUsage, "check", "", "resolve directory", err)
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			report := preflight.RunAll(cfg, dir)
			lines := renderSectionHeader("Tools", colorize)
			lines = append(lines, dependencyLines(report.Tools, colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Directories", colorize)...)
			for _, result := range report.Checks {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if report.Failed() {
				return services.Wrap(services.ErrValidation, "check", "", "one or more checks failed", nil)
			}
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	for _, status := range statuses {
		switch {
		case status.Available:
			lines = append(lines, renderStatusLine(status.Name, statusOK, fmt.Sprintf("Ready (%s)", status.Path), colorize))
		case status.Optional:
			lines = append(lines, renderStatusLine(status.Name, statusWarn, status.Detail, colorize))
		default:
			lines = append(lines, renderStatusLine(status.Name, statusError, status.Detail, colorize))
		}
	}
	if missing := deps.Missing(statuses); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, status := range missing {
			names = append(names, status.Name)
		}
		lines = append(lines, fmt.Sprintf("%sMissing dependencies: %s", statusIndent, strings.Join(names, ", ")))
	}
	return lines
}
