package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"letterbox/internal/aspect"
	"letterbox/internal/letterbox"
	"letterbox/internal/services"
)

var probeColumns = []tableColumn{
	{Header: "Path"},
	{Header: "Resolution", Align: text.AlignRight},
	{Header: "16:9"},
	{Header: "Target", Align: text.AlignRight},
	{Header: "Output"},
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <video>...",
		Short: "Classify videos without transcoding",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return services.Wrap(services.ErrUsage, "probe", "", "at least one video path is required", nil)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()
			inspector := aspect.NewInspector(cfg.FFprobeBinary(), aspect.WithLogger(logger))

			rows := make([][]string, 0, len(args))
			var firstErr error
			failed := 0
			for _, path := range args {
				classification, err := inspector.Inspect(cmd.Context(), path)
				if err != nil {
					failed++
					if firstErr == nil {
						firstErr = err
					}
					rows = append(rows, []string{path, "error", "-", "-", err.Error()})
					continue
				}
				rows = append(rows, probeRow(path, classification))
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(probeColumns, rows))
			if failed > 0 {
				return fmt.Errorf("probe failed for %d of %d files: %w", failed, len(args), firstErr)
			}
			return nil
		},
	}
}

func probeRow(path string, classification aspect.Classification) []string {
	res := classification.Resolution
	if !classification.NeedsLetterbox() {
		return []string{path, res.String(), yesNo(true), "-", "-"}
	}
	return []string{
		path,
		res.String(),
		yesNo(false),
		letterbox.SelectTarget(res).String(),
		letterbox.OutputPath(path),
	}
}
