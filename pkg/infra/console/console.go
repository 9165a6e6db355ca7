package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console prints operator-facing status lines and diagnostics
type Console struct {
	w       io.Writer
	success *color.Color
	failure *color.Color
}

// Option configures Console
type Option func(*Console)

// WithWriter sets the output
func WithWriter(w io.Writer) Option {
	return func(c *Console) {
		c.w = w
	}
}

// WithoutColor disables ANSI colors
func WithoutColor() Option {
	return func(c *Console) {
		c.success.DisableColor()
		c.failure.DisableColor()
	}
}

// New creates a Console writing to stdout
func New(opts ...Option) *Console {
	c := &Console{
		w:       os.Stdout,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Success prints a green line
func (c *Console) Success(format string, args ...any) {
	_, _ = c.success.Fprintln(c.w, fmt.Sprintf(format, args...))
}

// Failure prints a red line
func (c *Console) Failure(format string, args ...any) {
	_, _ = c.failure.Fprintln(c.w, fmt.Sprintf(format, args...))
}

// BuildLog prints a build log verbatim under a red header
func (c *Console) BuildLog(header string, log []byte) {
	c.Failure("%s", header)
	_, _ = c.w.Write(log)
	if len(log) > 0 && log[len(log)-1] != '\n' {
		_, _ = io.WriteString(c.w, "\n")
	}
}
