package hostcmd

import (
	"context"
	"fmt"
	"strings"
)

// Fake is an in-memory Runner for tests. Commands are keyed by their full
// command line ("name arg1 arg2 ...").
type Fake struct {
	// Outputs maps command lines to the stdout Output returns for them.
	Outputs map[string]string

	// Errors maps command lines to forced failures for Run and Output.
	Errors map[string]error

	// Symlinks is the set of paths IsSymlink reports true for.
	Symlinks map[string]bool

	// Commands records every Run and Output invocation in order.
	Commands []string

	// Created records every MkdirAll target in order.
	Created []string
}

// NewFake returns an empty Fake ready for configuration.
func NewFake() *Fake {
	return &Fake{
		Outputs:  make(map[string]string),
		Errors:   make(map[string]error),
		Symlinks: make(map[string]bool),
	}
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (f *Fake) Run(ctx context.Context, name string, args ...string) error {
	line := commandLine(name, args)
	f.Commands = append(f.Commands, line)
	return f.Errors[line]
}

func (f *Fake) Output(ctx context.Context, name string, args ...string) (string, error) {
	line := commandLine(name, args)
	f.Commands = append(f.Commands, line)
	if err := f.Errors[line]; err != nil {
		return "", err
	}
	out, ok := f.Outputs[line]
	if !ok {
		return "", fmt.Errorf("fake: no output configured for %q", line)
	}
	return out, nil
}

func (f *Fake) IsSymlink(path string) (bool, error) {
	return f.Symlinks[path], nil
}

func (f *Fake) MkdirAll(path string) error {
	f.Created = append(f.Created, path)
	return nil
}

// Ran reports whether a command line was executed.
func (f *Fake) Ran(line string) bool {
	for _, cmd := range f.Commands {
		if cmd == line {
			return true
		}
	}
	return false
}
