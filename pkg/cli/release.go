package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vcpkg-release/pkg/cli/config"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
	"github.com/m-mizutani/vcpkg-release/pkg/infra/console"
	"github.com/m-mizutani/vcpkg-release/pkg/infra/git"
	"github.com/m-mizutani/vcpkg-release/pkg/infra/shell"
	"github.com/m-mizutani/vcpkg-release/pkg/infra/vcpkg"
	"github.com/m-mizutani/vcpkg-release/pkg/usecase"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

type releaseConfig struct {
	port     *config.Port
	registry *config.Registry
	notify   *config.Notify
	runID    string
}

func runRelease(ctx context.Context, c *cli.Command, cfg releaseConfig) error {
	logger := logging.From(ctx)

	if c.NArg() != 2 {
		return goerr.New("account and token are required, usage: vcpkg-release [flags] <account> <token>",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("args", c.NArg()),
		)
	}
	creds := model.Credentials{
		Account: c.Args().Get(0),
		Token:   c.Args().Get(1),
	}

	port, err := cfg.port.Load()
	if err != nil {
		return err
	}
	workDir, err := cfg.port.ResolveWorkDir()
	if err != nil {
		return err
	}
	elevate, err := cfg.registry.ElevationCommand()
	if err != nil {
		return err
	}
	notifier, err := cfg.notify.Configure()
	if err != nil {
		return err
	}

	out := console.New(console.WithWriter(c.Root().Writer))
	local := shell.NewLocal(shell.WithConsole(c.Root().Writer, c.Root().ErrWriter))
	privileged := shell.NewPrivileged(elevate, local)

	opts := []usecase.Option{
		usecase.WithWorkDir(workDir),
		usecase.WithRegistryRoot(cfg.registry.Root),
		usecase.WithTriplet(cfg.registry.Triplet),
		usecase.WithBranch(cfg.port.Branch),
		usecase.WithRunID(cfg.runID),
	}
	if cfg.port.StagingDir != "" {
		opts = append(opts, usecase.WithPortfileStagingDir(cfg.port.StagingDir))
	}

	uc := usecase.NewRelease(port, creds, usecase.ReleaseDeps{
		Git:         git.NewClient(local),
		RegistryGit: git.NewClient(privileged),
		Executor:    privileged,
		Registry:    vcpkg.NewClient(privileged, model.WorkingContext{RegistryRoot: cfg.registry.Root}),
		Console:     out,
	}, opts...)

	report, err := uc.Release(ctx, cfg.port.SourceDir, cfg.port.Ref)

	if nerr := notifier.Notify(ctx, report); nerr != nil {
		logger.Warn("Failed to notify release result", "error", nerr)
	}

	if err != nil {
		out.Failure("Release of %s failed in state %s", report.Package, report.State)
		return err
	}

	logger.Info("Release completed",
		"port", report.Package,
		"version", report.Version,
		"sha512", report.Checksum,
		"duration", report.Duration,
	)
	return nil
}
