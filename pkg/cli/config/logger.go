package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

// Logger holds logger configuration
type Logger struct {
	Level string
	JSON  bool

	writer io.Writer
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("VCPKG_RELEASE_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("VCPKG_RELEASE_LOG_JSON"),
		},
	}
}

// SetWriter sets the log destination; nil means stderr
func (c *Logger) SetWriter(w io.Writer) {
	c.writer = w
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Configure configures and returns a logger. Credentials are masked in every
// record.
func (c *Logger) Configure() (*slog.Logger, error) {
	level, ok := logLevels[strings.ToLower(c.Level)]
	if !ok {
		return nil, goerr.New("invalid log level",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("level", c.Level),
		)
	}

	w := c.writer
	if w == nil {
		w = os.Stderr
	}

	filter := masq.New(
		masq.WithFieldName("Token"),
		masq.WithFieldName("AccessToken"),
		masq.WithTag("secret"),
	)

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter,
		})
	} else {
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithColor(true),
			clog.WithReplaceAttr(filter),
		)
	}

	return slog.New(handler), nil
}
