package cli

import (
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"
)

func NewCommand(w io.Writer) *cli.Command {
	var logger *slog.Logger
	return newCommand(w, &logger)
}
