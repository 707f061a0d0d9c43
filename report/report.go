// Package report summarizes recorded command timings into comparison
// output for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/fatih/color"

	"github.com/weiihann/cmdbench/harness"
)

// Stats holds aggregate timings for one command, in seconds.
type Stats struct {
	Name  string  `json:"name"`
	Cmd   string  `json:"cmd"`
	Runs  int     `json:"runs"`
	Mean  float64 `json:"mean_s"`
	Stdev float64 `json:"stdev_s"`
	Min   float64 `json:"min_s"`
	Max   float64 `json:"max_s"`
}

// Compute aggregates a result table into per-command statistics sorted
// fastest mean first. Commands without timings are dropped. The sample
// standard deviation is zero for a single run.
func Compute(table harness.ResultTable) []Stats {
	stats := make([]Stats, 0, len(table))

	for name, entry := range table {
		if len(entry.Result) == 0 {
			continue
		}

		s := Stats{
			Name: name,
			Cmd:  entry.Run,
			Runs: len(entry.Result),
			Min:  math.Inf(1),
			Max:  math.Inf(-1),
		}

		var total float64

		for _, elapsed := range entry.Result {
			total += elapsed

			if elapsed < s.Min {
				s.Min = elapsed
			}
			if elapsed > s.Max {
				s.Max = elapsed
			}
		}

		s.Mean = total / float64(s.Runs)

		if s.Runs > 1 {
			var sumSquares float64
			for _, elapsed := range entry.Result {
				delta := elapsed - s.Mean
				sumSquares += delta * delta
			}

			s.Stdev = math.Sqrt(sumSquares / float64(s.Runs-1))
		}

		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Mean != stats[j].Mean {
			return stats[i].Mean < stats[j].Mean
		}

		return stats[i].Name < stats[j].Name
	})

	return stats
}

// Generate writes a human-readable summary of stats to w: one block
// per command with mean, spread and range, then a relative ranking
// against the fastest command when more than one was benchmarked.
func Generate(w io.Writer, stats []Stats) error {
	if len(stats) == 0 {
		return fmt.Errorf("no results to report")
	}

	for _, s := range stats {
		fmt.Fprintf(w, "%s: %s\n", color.CyanString(s.Name), s.Cmd)
		fmt.Fprintf(w, "  Time (%s ± %s):\t%s ± %s\n",
			color.GreenString("mean"),
			color.GreenString("σ"),
			color.GreenString("%.4f s", s.Mean),
			color.GreenString("%.4f s", s.Stdev),
		)
		fmt.Fprintf(w, "  Range (%s … %s):\t%s … %s\t%s\n",
			color.CyanString("min"),
			color.RedString("max"),
			color.CyanString("%.4f s", s.Min),
			color.RedString("%.4f s", s.Max),
			color.HiBlackString("%d runs", s.Runs),
		)
		fmt.Fprintln(w)
	}

	if len(stats) > 1 {
		fmt.Fprintln(w, "Summary")

		fastest := stats[0]
		fmt.Fprintf(w, "  %s ran\n", color.CyanString(fastest.Name))

		for _, s := range stats[1:] {
			multiplier := 1.0
			if fastest.Mean > 0 {
				multiplier = s.Mean / fastest.Mean
			}

			fmt.Fprintf(w, "    %s times faster than %s\n",
				color.GreenString("%.2f", multiplier),
				color.RedString(s.Name),
			)
		}
	}

	return nil
}

// GenerateJSON writes the raw result table as indented JSON to w.
func GenerateJSON(w io.Writer, table harness.ResultTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(table)
}
