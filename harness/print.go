package harness

import (
	"fmt"
	"io"
	"sort"
)

// PrettyPrint writes the harness's accumulated table to its configured
// output, covering the instance's configured iteration count.
func (h *Harness) PrettyPrint() {
	PrettyPrint(h.cfg.out, h.results, h.cfg.iterations)
}

// PrettyPrint writes the recorded timings to w, one block per iteration
// from 1 to iterations. Each block starts with an ordinal header such
// as "3rd iteration:" followed by one line per command: the name
// right-justified to 8 characters, " => ", and the elapsed seconds with
// 4 decimal places. Commands missing a timing for an iteration are
// skipped.
func PrettyPrint(w io.Writer, table ResultTable, iterations int) {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}

	sort.Strings(names)

	for i := 1; i <= iterations; i++ {
		fmt.Fprintf(w, "%s iteration:\n", ordinal(i))

		for _, name := range names {
			elapsed, ok := table[name].Result[i]
			if !ok {
				continue
			}

			fmt.Fprintf(w, "%8s => %.4f s\n", name, elapsed)
		}
	}
}

// ordinal returns n with its English ordinal suffix, handling the
// 11/12/13 exceptions (11th, 112th, ...).
func ordinal(n int) string {
	suffix := "th"

	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return fmt.Sprintf("%d%s", n, suffix)
}
