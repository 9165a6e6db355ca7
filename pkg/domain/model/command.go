package model

import "strings"

// Command is a subprocess invocation
type Command struct {
	Dir    string   // working directory; empty means the current directory
	Name   string   // executable
	Args   []string // arguments, without the executable
	Stream bool     // mirror output to the console while capturing it
}

// String returns the command line for logging
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CommandResult is the outcome of a subprocess that was started
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Combined string // stdout and stderr interleaved in arrival order
}

// Succeeded reports a zero exit status
func (r *CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}

// BuildResult is the outcome of a registry install invocation
type BuildResult struct {
	ExitCode int
	Output   string // combined stdout and stderr
}

// Succeeded reports a zero exit status
func (r *BuildResult) Succeeded() bool {
	return r.ExitCode == 0
}
