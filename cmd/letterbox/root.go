package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"letterbox/internal/services"
	"letterbox/internal/workflow"
)

func newRootCommand() *cobra.Command {
	var flags rootFlags

	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:   "letterbox [flags] <video>",
		Short: "Letterbox a video into a 16:9 frame",
		Long: "Letterbox probes the first video stream of a file with ffprobe. Frames that are\n" +
			"already 16:9 are left alone; anything else is scaled and padded with ffmpeg to\n" +
			"1280x720 (sources up to 1280 wide) or 1920x1080, and written next to the input\n" +
			"as LETTERBOXED_<name>.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          videoArg,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLetterbox(cmd, ctx, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format override (console, json)")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the ffmpeg command instead of running it")
	rootCmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Replace an existing output file")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Stream ffmpeg progress to stderr")

	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// videoArg requires exactly one video path. The usage text is printed here
// because the root command silences cobra's own usage output.
func videoArg(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	if len(args) == 0 {
		return services.Wrap(services.ErrUsage, "letterbox", "", "a video path is required", nil)
	}
	return services.Wrap(services.ErrUsage, "letterbox", "", fmt.Sprintf("expected one video path, got %d", len(args)), nil)
}

func runLetterbox(cmd *cobra.Command, ctx *commandContext, path string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	stage := workflow.StageOptions{}
	if ctx.flags.verbose {
		stage.Progress = cmd.ErrOrStderr()
	}
	runner := workflow.NewFromConfig(cfg, logger, stage, workflow.WithDryRun(ctx.flags.dryRun))

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	outcome, err := runner.Run(signalCtx, path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	switch {
	case outcome.Plan == nil:
		fmt.Fprintln(out, renderResult(statusInfo, "Already 16:9, doing nothing.", colorize))
	case outcome.DryRun:
		fmt.Fprintln(out, renderResult(statusInfo, fmt.Sprintf("Would letterbox %s -> %s (%s)", outcome.Input, outcome.OutputPath, outcome.Plan.Target), colorize))
		fmt.Fprintln(out, outcome.Plan.CommandLine())
	default:
		fmt.Fprintln(out, renderResult(statusOK, fmt.Sprintf("Letterboxed %s -> %s (%s)", outcome.Input, outcome.OutputPath, outcome.Plan.Target), colorize))
	}
	return nil
}
