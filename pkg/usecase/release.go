package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

// config holds internal release configuration
type config struct {
	workDir      string
	registryRoot string
	triplet      string
	branch       string
	stagingDir   string
	runID        string
}

// Option is a functional option for the release use case
type Option func(*config)

// WithWorkDir sets the directory the source repository is cloned into
func WithWorkDir(dir string) Option {
	return func(c *config) {
		c.workDir = dir
	}
}

// WithRegistryRoot sets the vcpkg installation directory
func WithRegistryRoot(root string) Option {
	return func(c *config) {
		c.registryRoot = root
	}
}

// WithTriplet sets the vcpkg target triplet
func WithTriplet(triplet string) Option {
	return func(c *config) {
		c.triplet = triplet
	}
}

// WithBranch sets the branch the version metadata is pushed to. By default
// it is the ref checked out in the clone.
func WithBranch(branch string) Option {
	return func(c *config) {
		c.branch = branch
	}
}

// WithPortfileStagingDir sets the directory used to stage the first-build portfile
func WithPortfileStagingDir(dir string) Option {
	return func(c *config) {
		c.stagingDir = dir
	}
}

// WithRunID sets the identifier reported for this run
func WithRunID(id string) Option {
	return func(c *config) {
		c.runID = id
	}
}

// ReleaseDeps are the external collaborators of a release
type ReleaseDeps struct {
	Git         interfaces.GitClient // runs as the current user
	RegistryGit interfaces.GitClient // runs with registry privileges
	Executor    interfaces.PrivilegedExecutor
	Registry    interfaces.Registry
	Console     interfaces.Console
}

type releaseUseCase struct {
	port  model.PortSpec
	creds model.Credentials
	deps  ReleaseDeps
	cfg   *config
}

// NewRelease creates the end-to-end release use case
func NewRelease(port model.PortSpec, creds model.Credentials, deps ReleaseDeps, opts ...Option) interfaces.ReleaseUseCase {
	cfg := &config{
		registryRoot: "/usr/local/share/vcpkg",
		triplet:      "x64-linux",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &releaseUseCase{
		port:  port,
		creds: creds,
		deps:  deps,
		cfg:   cfg,
	}
}

// Release runs locate, checkout, both builds and publication. The report is
// returned even when the run fails.
func (uc *releaseUseCase) Release(ctx context.Context, sourceDir, ref string) (*model.ReleaseReport, error) {
	start := time.Now()
	report := &model.ReleaseReport{
		RunID:   uc.cfg.runID,
		Package: uc.port.Name,
		State:   model.BuildStateInit,
	}

	finish := func(err error) (*model.ReleaseReport, error) {
		report.Duration = time.Since(start)
		report.Err = err
		if err != nil && !report.State.IsTerminal() {
			report.State = model.BuildStateFailed
		}
		return report, err
	}

	locator, err := NewLocator(uc.creds, uc.deps.Git)
	if err != nil {
		return finish(err)
	}

	logging.From(ctx).Info("Starting vcpkg updater", "port", uc.port.Name, "run_id", uc.cfg.runID)

	release, err := locator.Locate(ctx, sourceDir)
	if err != nil {
		return finish(err)
	}
	report.Tag = release.Tag
	report.Version = release.Version

	agent := NewCheckoutAgent(uc.deps.Git, uc.port, uc.creds, uc.cfg.workDir, uc.cfg.registryRoot)
	wc, err := agent.Checkout(ctx, ref)
	if err != nil {
		return finish(err)
	}

	generator := NewPortfileGenerator(uc.port)
	recipe, _, err := generator.Generate(ctx, wc, release, model.UnknownChecksum())
	if err != nil {
		return finish(err)
	}

	var orchestratorOpts []OrchestratorOption
	if uc.cfg.stagingDir != "" {
		orchestratorOpts = append(orchestratorOpts, WithStagingDir(uc.cfg.stagingDir))
	}
	orchestrator := NewOrchestrator(wc, uc.port.Name, uc.cfg.triplet, BuildDeps{
		Executor:    uc.deps.Executor,
		Registry:    uc.deps.Registry,
		RegistryGit: uc.deps.RegistryGit,
		Publisher:   NewPublisher(uc.deps.Git, uc.pushBranch(wc)),
		Console:     uc.deps.Console,
	}, orchestratorOpts...)

	checksum, err := orchestrator.FirstBuild(ctx, recipe)
	report.State = orchestrator.State()
	if err != nil {
		return finish(err)
	}
	report.Checksum = checksum.Digest()

	recipe, _, err = generator.Generate(ctx, wc, release, checksum)
	if err != nil {
		return finish(err)
	}

	err = orchestrator.SecondBuild(ctx, recipe)
	report.State = orchestrator.State()
	return finish(err)
}

// pushBranch returns the configured branch, or the ref the clone is on
func (uc *releaseUseCase) pushBranch(wc model.WorkingContext) string {
	if uc.cfg.branch != "" {
		return uc.cfg.branch
	}
	return wc.Ref
}
