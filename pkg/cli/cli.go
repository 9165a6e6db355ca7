package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vcpkg-release/pkg/cli/config"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var logger *slog.Logger
	app := newCommand(os.Stdout, &logger)

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

func newCommand(w io.Writer, logger **slog.Logger) *cli.Command {
	var (
		loggerCfg   config.Logger
		portCfg     config.Port
		registryCfg config.Registry
		notifyCfg   config.Notify
		runID       string
	)

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, portCfg.Flags()...)
	flags = append(flags, registryCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:      "vcpkg-release",
		Usage:     "Build, validate and publish the vcpkg port of the latest release",
		ArgsUsage: "<account> <token>",
		Version:   types.Version,
		Writer:    w,
		ErrWriter: os.Stderr,
		Flags:     flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			loggerCfg.SetWriter(c.Root().ErrWriter)
			l, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			runID = uuid.NewString()
			l = l.With(slog.String("run_id", runID))
			*logger = l

			slog.SetDefault(l)
			return logging.With(ctx, l), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runRelease(ctx, c, releaseConfig{
				port:     &portCfg,
				registry: &registryCfg,
				notify:   &notifyCfg,
				runID:    runID,
			})
		},
		Commands: []*cli.Command{
			cmdRender(&portCfg),
			cmdChecksum(),
		},
	}
}
