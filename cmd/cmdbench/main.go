// Package main provides the CLI entry point for cmdbench, a harness
// that times repeated runs of shell commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/weiihann/cmdbench/config"
	"github.com/weiihann/cmdbench/harness"
	"github.com/weiihann/cmdbench/report"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cmdbench",
		Short: "Benchmark shell commands by timing repeated runs",
		Long: `Cmdbench runs each of a set of named shell commands a configurable
number of times, measures the wall-clock time of every run, and reports
per-command timings and statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())

	return root
}

type runOptions struct {
	iterations   int
	pretty       bool
	outputJSON   bool
	commandsFile string
	shell        string
	noShell      bool
	noColor      bool
	progress     bool
	argFormat    string
	verbose      bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [flags] [NAME=COMMAND ...]",
		Short: "Run and time a set of commands",
		Long: `Run each command the configured number of times, appending the
iteration index (or a custom argument) to every invocation. Commands
come from NAME=COMMAND arguments, a TOML file, or both. Command lines
are interpreted by the shell, so pipes and redirection work; child
output is discarded. A command's exit status does not affect timings.`,
		Example: `  cmdbench run -n 10 'ls=ls -l /tmp' 'find=find /tmp -name x'
  cmdbench run --commands bench.toml --pretty
  cmdbench run --json 'sleep=sleep 0.1' > results.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd.Context(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.iterations, "iterations", "n", 0,
		"Number of times to run each command (default 5)")
	flags.BoolVar(&opts.pretty, "pretty", false,
		"Print the per-iteration timing table after the run")
	flags.BoolVar(&opts.outputJSON, "json", false,
		"Output the raw result table as JSON instead of a summary")
	flags.StringVar(&opts.commandsFile, "commands", "",
		"Path to a TOML benchmark file")
	flags.StringVar(&opts.shell, "shell", "",
		"Shell used to interpret command lines (default /bin/sh)")
	flags.BoolVar(&opts.noShell, "no-shell", false,
		"Execute commands directly without an intermediate shell")
	flags.BoolVar(&opts.noColor, "no-color", false,
		"Disable colored output")
	flags.BoolVar(&opts.progress, "progress", false,
		"Show a progress bar while running")
	flags.StringVar(&opts.argFormat, "arg-format", "%d",
		"Format for the appended argument; %d is the iteration index, empty for none")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Log every command execution")

	return cmd
}

func runBenchmark(ctx context.Context, opts runOptions, args []string) error {
	color.NoColor = color.NoColor || opts.noColor

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	var file *config.File

	if opts.commandsFile != "" {
		var err error

		file, err = config.Load(opts.commandsFile)
		if err != nil {
			return err
		}
	}

	fromArgs, err := config.ParseArgs(args)
	if err != nil {
		return err
	}

	set := config.Merge(file, fromArgs)
	if len(set) == 0 {
		return fmt.Errorf(
			"no commands given: pass NAME=COMMAND arguments or --commands",
		)
	}

	iterations := 5
	if file != nil && file.Iterations > 0 {
		iterations = file.Iterations
	}

	if opts.iterations != 0 {
		iterations = opts.iterations
	}

	harnessOpts := []harness.Option{
		harness.WithIterations(iterations),
		harness.WithPrettyPrint(opts.pretty),
		harness.WithArgGen(argGenerator(opts.argFormat)),
		harness.WithLogger(logger),
	}

	if opts.shell != "" {
		harnessOpts = append(harnessOpts, harness.WithShell(opts.shell))
	}

	if opts.noShell {
		harnessOpts = append(harnessOpts, harness.WithoutShell())
	}

	if opts.progress && iterations > 0 {
		bar := progressbar.NewOptions(iterations*len(set),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("benchmarking"),
			progressbar.OptionClearOnFinish(),
		)

		harnessOpts = append(harnessOpts,
			harness.WithObserver(func(harness.Execution) {
				_ = bar.Add(1)
			}),
		)
	}

	h := harness.New(harnessOpts...)

	table, err := h.Run(ctx, set)
	if err != nil {
		return err
	}

	if opts.outputJSON {
		if err := report.GenerateJSON(os.Stdout, table); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}

		return nil
	}

	stats := report.Compute(table)
	if len(stats) == 0 {
		return nil
	}

	if err := report.Generate(os.Stdout, stats); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	return nil
}

// argGenerator builds the per-iteration argument function from the
// --arg-format flag. An empty format appends nothing; a format without
// a verb is appended verbatim every iteration.
func argGenerator(format string) func(int) string {
	switch {
	case format == "":
		return func(int) string { return "" }
	case !strings.Contains(format, "%"):
		return func(int) string { return format }
	default:
		return func(i int) string { return fmt.Sprintf(format, i) }
	}
}
