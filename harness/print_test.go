package harness

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrettyPrintFormat(t *testing.T) {
	table := ResultTable{
		"cmd1": {
			Run:    "echo hello",
			Result: map[int]float64{1: 0.1234, 2: 0.5678},
		},
	}

	var buf bytes.Buffer
	PrettyPrint(&buf, table, 2)

	want := "1st iteration:\n" +
		"    cmd1 => 0.1234 s\n" +
		"2nd iteration:\n" +
		"    cmd1 => 0.5678 s\n"

	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrettyPrintSortsCommands(t *testing.T) {
	table := ResultTable{
		"zeta":  {Result: map[int]float64{1: 1}},
		"alpha": {Result: map[int]float64{1: 1}},
	}

	var buf bytes.Buffer
	PrettyPrint(&buf, table, 1)

	out := buf.String()
	if strings.Index(out, "alpha") > strings.Index(out, "zeta") {
		t.Errorf("commands not sorted: %q", out)
	}
}

func TestPrettyPrintSkipsMissingIterations(t *testing.T) {
	table := ResultTable{
		"partial": {Result: map[int]float64{2: 0.5}},
	}

	var buf bytes.Buffer
	PrettyPrint(&buf, table, 2)

	want := "1st iteration:\n" +
		"2nd iteration:\n" +
		" partial => 0.5000 s\n"

	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestOrdinal(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{10, "10th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{21, "21st"},
		{22, "22nd"},
		{23, "23rd"},
		{100, "100th"},
		{101, "101st"},
		{111, "111th"},
		{112, "112th"},
		{113, "113th"},
		{121, "121st"},
	}

	for _, tt := range tests {
		if got := ordinal(tt.n); got != tt.want {
			t.Errorf("ordinal(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
