// Package harness runs named shell commands repeatedly and records
// wall-clock timings per command and iteration.
package harness

import "sort"

// CommandSet maps a unique command name to the command-line template
// executed for it. Templates are handed to a shell verbatim, so pipes,
// redirection and other metacharacters work; commands are trusted
// operator input.
type CommandSet map[string]string

// Names returns the command names in sorted order. Run iterates
// commands in this order so output and logs are deterministic.
func (s CommandSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// CommandResult holds the timings recorded for one command.
type CommandResult struct {
	// Run is the command-line template the timings were taken for.
	Run string `json:"run"`
	// Result maps iteration index (1-based) to elapsed wall-clock
	// seconds for that execution.
	Result map[int]float64 `json:"result"`
}

// ResultTable maps command name to its recorded timings. A Harness
// extends the same table across Run calls; there is no clear operation.
type ResultTable map[string]*CommandResult

// Execution describes one completed command execution. It is handed to
// the observer registered with WithObserver.
type Execution struct {
	Name      string
	Cmd       string
	Iteration int
	Elapsed   float64
}
