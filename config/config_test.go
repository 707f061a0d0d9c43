package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/weiihann/cmdbench/harness"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")

	content := `iterations = 10

[commands]
startup = "myapp --help"
sort = "sort /usr/share/dict/words"
`

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	file, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if file.Iterations != 10 {
		t.Errorf("iterations = %d, want 10", file.Iterations)
	}
	if len(file.Commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(file.Commands))
	}
	if file.Commands["startup"] != "myapp --help" {
		t.Errorf("startup = %q", file.Commands["startup"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseArgs(t *testing.T) {
	set, err := ParseArgs([]string{
		"ls=ls -l /tmp",
		"env=FOO=bar printenv FOO",
	})
	if err != nil {
		t.Fatalf("ParseArgs failed: %v", err)
	}

	if set["ls"] != "ls -l /tmp" {
		t.Errorf("ls = %q", set["ls"])
	}
	if set["env"] != "FOO=bar printenv FOO" {
		t.Errorf("command with '=' mangled: %q", set["env"])
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no separator", []string{"just-a-command"}},
		{"empty name", []string{"=ls"}},
		{"empty command", []string{"ls="}},
		{"duplicate", []string{"a=true", "a=false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArgs(tt.args); err == nil {
				t.Errorf("ParseArgs(%v): expected error", tt.args)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	file := &File{Commands: map[string]string{
		"a": "from-file",
		"b": "from-file",
	}}

	set := Merge(file, harness.CommandSet{
		"b": "from-args",
		"c": "from-args",
	})

	if len(set) != 3 {
		t.Fatalf("got %d commands, want 3", len(set))
	}
	if set["a"] != "from-file" {
		t.Errorf("a = %q", set["a"])
	}
	if set["b"] != "from-args" {
		t.Errorf("args should win collisions, b = %q", set["b"])
	}
}

func TestMergeNilFile(t *testing.T) {
	set := Merge(nil, harness.CommandSet{"a": "true"})

	if len(set) != 1 || set["a"] != "true" {
		t.Errorf("unexpected set: %v", set)
	}
}
