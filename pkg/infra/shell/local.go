package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

// Local runs commands as the current user
type Local struct {
	stdout io.Writer
	stderr io.Writer
}

// LocalOption configures Local
type LocalOption func(*Local)

// WithConsole sets where streamed command output is mirrored
func WithConsole(stdout, stderr io.Writer) LocalOption {
	return func(l *Local) {
		l.stdout = stdout
		l.stderr = stderr
	}
}

// NewLocal creates a Local executor
func NewLocal(opts ...LocalOption) *Local {
	l := &Local{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run runs cmd and captures its output. Output is also mirrored to the
// console when cmd.Stream is set.
func (l *Local) Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = os.Environ()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	combined := &syncBuffer{}

	outWriters := []io.Writer{stdout, combined}
	errWriters := []io.Writer{stderr, combined}
	if cmd.Stream {
		outWriters = append(outWriters, l.stdout)
		errWriters = append(errWriters, l.stderr)
	}
	c.Stdout = io.MultiWriter(outWriters...)
	c.Stderr = io.MultiWriter(errWriters...)

	err := c.Run()
	result := &model.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Combined: combined.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, goerr.Wrap(err, "failed to run command",
			goerr.T(types.ErrTagCommand),
			goerr.V("command", cmd.Name),
			goerr.V("dir", cmd.Dir),
		)
	}

	return result, nil
}

// syncBuffer is a bytes.Buffer shared by the stdout and stderr copiers
type syncBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.Write(p)
}

func (sb *syncBuffer) String() string {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.String()
}
