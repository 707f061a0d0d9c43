package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/google/shlex"
)

// config holds the effective settings for a Harness or a single Run.
type config struct {
	iterations  int
	prettyPrint bool
	argGen      func(int) string
	shell       string
	noShell     bool
	out         io.Writer
	logger      *slog.Logger
	observer    func(Execution)
}

// Option adjusts harness configuration. Options passed to New set the
// instance defaults; options passed to Run override them for that run
// only.
type Option func(*config)

// WithIterations sets how many times each command is executed. Values
// below one are honored as-is: such a run executes nothing.
func WithIterations(n int) Option {
	return func(c *config) { c.iterations = n }
}

// WithPrettyPrint enables printing the result table after each run.
func WithPrettyPrint(enabled bool) Option {
	return func(c *config) { c.prettyPrint = enabled }
}

// WithArgGen sets the argument generator. It is called once per
// (command, iteration) pair with the 1-based iteration index, and its
// return value is appended to the command template. The default
// generator returns the index in decimal.
func WithArgGen(fn func(iteration int) string) Option {
	return func(c *config) { c.argGen = fn }
}

// WithShell sets the shell binary used to interpret command lines.
// The platform default is /bin/sh (cmd.exe on Windows).
func WithShell(shell string) Option {
	return func(c *config) { c.shell = shell }
}

// WithoutShell disables shell interpretation. Final command lines are
// split into argv with shlex and executed directly, which skips shell
// startup cost but loses pipes and redirection.
func WithoutShell() Option {
	return func(c *config) { c.noShell = true }
}

// WithOutput sets the writer pretty-printed reports go to. Defaults to
// standard output. Child process output never goes here; it is always
// discarded.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithLogger sets the logger for run progress. Logging is off by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithObserver registers a callback invoked after every completed
// execution, in execution order. Useful for progress reporting.
func WithObserver(fn func(Execution)) Option {
	return func(c *config) { c.observer = fn }
}

// Harness executes command sets and accumulates their timings. Results
// from successive Run calls extend the same table. A Harness is not
// safe for concurrent use; create one per goroutine instead.
type Harness struct {
	cfg     config
	results ResultTable
}

// New creates a Harness. Defaults: 5 iterations, pretty-printing off,
// decimal iteration index as the generated argument, platform shell,
// reports to standard output. No validation is performed on the
// resulting configuration; see Run for how out-of-range values behave.
func New(opts ...Option) *Harness {
	cfg := config{
		iterations: 5,
		argGen:     func(i int) string { return strconv.Itoa(i) },
		shell:      defaultShell(),
		out:        os.Stdout,
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Harness{cfg: cfg, results: make(ResultTable)}
}

// Results returns the table accumulated so far. The caller shares the
// underlying maps with the harness.
func (h *Harness) Results() ResultTable {
	return h.results
}

// SpawnError reports that a command could not be started at all. It is
// distinct from a command that starts and exits nonzero, which is not
// an error. In shell mode a missing program surfaces as a nonzero shell
// exit, so a SpawnError there means the shell itself failed to start.
type SpawnError struct {
	Name      string
	Cmd       string
	Iteration int
	Err       error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q (iteration %d, command %q): %v",
		e.Name, e.Iteration, e.Cmd, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Run executes every command in set once per iteration, ascending from
// 1, timing each child process and recording the elapsed seconds in the
// harness table. Commands run strictly sequentially with stdout and
// stderr discarded. Iteration counts below one execute nothing. A
// command's exit status is ignored; only a spawn failure aborts the
// run, returning the table accumulated up to that point together with a
// *SpawnError. When pretty-printing is enabled the full table is
// printed after all measurements finish.
func (h *Harness) Run(ctx context.Context, set CommandSet, opts ...Option) (ResultTable, error) {
	cfg := h.cfg
	for _, opt := range opts {
		opt(&cfg)
	}

	names := set.Names()

	cfg.logger.Info("starting run",
		slog.Int("iterations", cfg.iterations),
		slog.Int("commands", len(names)),
	)

	for i := 1; i <= cfg.iterations; i++ {
		for _, name := range names {
			final := set[name] + " " + cfg.argGen(i)

			elapsed, err := timeCommand(ctx, &cfg, final)
			if err != nil {
				return h.results, &SpawnError{
					Name:      name,
					Cmd:       final,
					Iteration: i,
					Err:       err,
				}
			}

			entry := h.results[name]
			if entry == nil {
				entry = &CommandResult{
					Run:    set[name],
					Result: make(map[int]float64),
				}
				h.results[name] = entry
			}

			entry.Result[i] = elapsed

			cfg.logger.Debug("command finished",
				slog.String("name", name),
				slog.Int("iteration", i),
				slog.Float64("elapsed_s", elapsed),
			)

			if cfg.observer != nil {
				cfg.observer(Execution{
					Name:      name,
					Cmd:       final,
					Iteration: i,
					Elapsed:   elapsed,
				})
			}
		}
	}

	cfg.logger.Info("run complete", slog.Int("commands", len(names)))

	if cfg.prettyPrint {
		PrettyPrint(cfg.out, h.results, cfg.iterations)
	}

	return h.results, nil
}

// TimeThis executes commandLine through the platform shell with output
// discarded, blocks until the child exits, and returns the elapsed
// wall-clock seconds. The exit status is ignored. This is the timing
// primitive the harness is built around, exposed for standalone use.
func TimeThis(ctx context.Context, commandLine string) (float64, error) {
	cfg := config{shell: defaultShell()}

	return timeCommand(ctx, &cfg, commandLine)
}

// timeCommand spawns commandLine per cfg and measures wall-clock time
// around the child with the monotonic clock. A nonzero exit status is
// swallowed after timing; any other failure is returned.
func timeCommand(ctx context.Context, cfg *config, commandLine string) (float64, error) {
	var cmd *exec.Cmd

	if cfg.noShell {
		argv, err := shlex.Split(commandLine)
		if err != nil {
			return 0, fmt.Errorf("split command line: %w", err)
		}

		if len(argv) == 0 {
			return 0, errors.New("empty command line")
		}

		cmd = exec.CommandContext(ctx, argv[0], argv[1:]...)
	} else {
		cmd = exec.CommandContext(ctx, cfg.shell, shellFlag(), commandLine)
	}

	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Seconds()

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return 0, err
		}
	}

	return elapsed, nil
}

func defaultShell() string {
	if runtime.GOOS == "windows" {
		return "cmd.exe"
	}

	return "/bin/sh"
}

func shellFlag() string {
	if runtime.GOOS == "windows" {
		return "/C"
	}

	return "-c"
}
