// Package config loads benchmark definitions from TOML files and from
// NAME=COMMAND command-line arguments.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/weiihann/cmdbench/harness"
)

// File is the on-disk benchmark definition.
//
//	iterations = 10          # optional, overridden by flags
//
//	[commands]
//	startup = "myapp --help"
//	sort    = "sort /usr/share/dict/words"
type File struct {
	Iterations int               `toml:"iterations"`
	Commands   map[string]string `toml:"commands"`
}

// Load reads a benchmark file from path.
func Load(path string) (*File, error) {
	var file File

	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("load benchmark file %s: %w", path, err)
	}

	return &file, nil
}

// ParseArgs converts NAME=COMMAND arguments into a CommandSet.
// Everything after the first '=' is the command line, so commands may
// themselves contain '='. Duplicate names are an error.
func ParseArgs(args []string) (harness.CommandSet, error) {
	set := make(harness.CommandSet, len(args))

	for _, arg := range args {
		name, cmdline, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid command %q: want NAME=COMMAND", arg)
		}

		if cmdline == "" {
			return nil, fmt.Errorf("command %q has an empty command line", name)
		}

		if _, exists := set[name]; exists {
			return nil, fmt.Errorf("duplicate command name %q", name)
		}

		set[name] = cmdline
	}

	return set, nil
}

// Merge combines the command set from a file (may be nil) with the
// ones given on the command line. Command-line entries win on name
// collisions.
func Merge(file *File, args harness.CommandSet) harness.CommandSet {
	set := make(harness.CommandSet)

	if file != nil {
		for name, cmdline := range file.Commands {
			set[name] = cmdline
		}
	}

	for name, cmdline := range args {
		set[name] = cmdline
	}

	return set
}
