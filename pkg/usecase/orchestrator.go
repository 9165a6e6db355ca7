package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/otiai10/copy"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

// RegistryCommitMessage is used for the commit in the registry checkout,
// which x-add-version requires and which is never pushed
const RegistryCommitMessage = "VCPKG info update"

// BuildDeps are the collaborators of an Orchestrator
type BuildDeps struct {
	Executor    interfaces.PrivilegedExecutor // writes into the registry installation
	Registry    interfaces.Registry
	RegistryGit interfaces.GitClient // commits inside the registry checkout
	Publisher   *Publisher
	Console     interfaces.Console
}

// Orchestrator runs the two vcpkg builds of a release. The first build uses a
// placeholder checksum so that vcpkg reports the real one; the second build
// validates the port with it.
type Orchestrator struct {
	deps       BuildDeps
	wc         model.WorkingContext
	port       string
	triplet    string
	stagingDir string

	state    model.BuildState
	checksum model.Checksum
}

// OrchestratorOption configures an Orchestrator
type OrchestratorOption func(*Orchestrator)

// WithStagingDir sets where the first-build portfile is staged before it is
// copied into the registry
func WithStagingDir(dir string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.stagingDir = dir
	}
}

// NewOrchestrator creates an Orchestrator in the Init state
func NewOrchestrator(wc model.WorkingContext, port, triplet string, deps BuildDeps, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		deps:       deps,
		wc:         wc,
		port:       port,
		triplet:    triplet,
		stagingDir: os.TempDir(),
		state:      model.BuildStateInit,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current build state
func (o *Orchestrator) State() model.BuildState {
	return o.state
}

// Checksum returns the checksum found by the first build
func (o *Orchestrator) Checksum() model.Checksum {
	return o.checksum
}

// FirstBuild installs the manifest and the placeholder recipe into the
// registry, builds, and returns the checksum scraped from the build output
func (o *Orchestrator) FirstBuild(ctx context.Context, recipe model.BuildRecipe) (model.Checksum, error) {
	logger := logging.From(ctx)

	if o.state != model.BuildStateInit {
		return model.Checksum{}, goerr.New("first build already ran",
			goerr.T(types.ErrTagPrecondition),
			goerr.V("state", o.state.String()),
		)
	}
	o.state = model.BuildStateFirstBuildRun
	logger.Info("Starting first build", "port", o.port, "triplet", o.triplet)

	if err := o.stageFirstBuild(ctx, recipe); err != nil {
		return model.Checksum{}, o.fail(err)
	}

	result, err := o.deps.Registry.Install(ctx, o.port, o.triplet)
	if err != nil {
		return model.Checksum{}, o.fail(err)
	}

	digest, ok := ExtractChecksum(result.Output)
	if !ok {
		o.deps.Console.Failure("No SHA512 found during first build")
		return model.Checksum{}, o.fail(goerr.New("no SHA512 found in first build output",
			goerr.T(types.ErrTagChecksumExtraction),
			goerr.V("exit_code", result.ExitCode),
		))
	}

	checksum, err := model.VerifiedChecksum(digest)
	if err != nil {
		return model.Checksum{}, o.fail(goerr.Wrap(err, "invalid checksum in first build output",
			goerr.T(types.ErrTagChecksumExtraction),
		))
	}

	o.checksum = checksum
	o.state = model.BuildStateChecksumKnown
	logger.Info("Obtained SHA512 from first build", "sha512", checksum.Digest())

	return checksum, nil
}

func (o *Orchestrator) stageFirstBuild(ctx context.Context, recipe model.BuildRecipe) error {
	portDir := o.wc.RegistryPortDir(o.port)
	if err := o.deps.Executor.MakeDir(ctx, portDir); err != nil {
		return goerr.Wrap(err, "failed to create registry port directory", goerr.V("path", portDir))
	}

	if err := o.deps.Executor.Copy(ctx, o.wc.ManifestPath(o.port), o.wc.RegistryManifestPath(o.port)); err != nil {
		return goerr.Wrap(err, "failed to install manifest into registry")
	}

	data, err := recipe.Render()
	if err != nil {
		return err
	}

	staged := filepath.Join(o.stagingDir, "portfile-"+uuid.NewString()+".cmake")
	if err := os.WriteFile(staged, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to stage portfile", goerr.V("path", staged))
	}
	defer func() {
		if err := os.Remove(staged); err != nil {
			logging.From(ctx).Warn("Failed to remove staged portfile", "path", staged, "error", err)
		}
	}()

	if err := o.deps.Executor.Copy(ctx, staged, o.wc.RegistryRecipePath(o.port)); err != nil {
		return goerr.Wrap(err, "failed to install portfile into registry")
	}
	return nil
}

// SecondBuild persists the verified recipe, records the version in the
// registry, publishes the port files and builds again. It refuses to run
// unless the first build produced a checksum.
func (o *Orchestrator) SecondBuild(ctx context.Context, recipe model.BuildRecipe) error {
	logger := logging.From(ctx)

	if o.state != model.BuildStateChecksumKnown || !recipe.Checksum.IsVerified() {
		return goerr.New("no SHA512 sum is available, first build has not completed",
			goerr.T(types.ErrTagPrecondition),
			goerr.V("state", o.state.String()),
		)
	}
	if recipe.Checksum != o.checksum {
		return goerr.New("recipe checksum differs from the one found by the first build",
			goerr.T(types.ErrTagPrecondition),
			goerr.V("recipe", recipe.Checksum.Digest()),
			goerr.V("found", o.checksum.Digest()),
		)
	}
	o.state = model.BuildStateSecondBuildRun
	logger.Info("Executing second build", "port", o.port, "triplet", o.triplet)

	if err := o.updateRegistry(ctx, recipe); err != nil {
		return o.fail(err)
	}

	if _, err := o.deps.Publisher.Publish(ctx, o.wc); err != nil {
		return o.fail(err)
	}

	logger.Info("vcpkg install", "port", o.port, "triplet", o.triplet)
	result, err := o.deps.Registry.Install(ctx, o.port, o.triplet)
	if err != nil {
		return o.fail(err)
	}

	if !result.Succeeded() {
		o.dumpBuildLog(ctx)
		return o.fail(goerr.New("second build failed",
			goerr.T(types.ErrTagBuild),
			goerr.V("exit_code", result.ExitCode),
			goerr.V("log", o.wc.BuildLogPath(o.port, o.triplet)),
		))
	}

	o.state = model.BuildStateValidated
	o.deps.Console.Success("Port %s validated with SHA512 %s", o.port, o.checksum.Digest())
	return nil
}

// updateRegistry copies the port files into the registry, runs
// format-manifest and x-add-version there and copies the results back
func (o *Orchestrator) updateRegistry(ctx context.Context, recipe model.BuildRecipe) error {
	logger := logging.From(ctx)

	data, err := recipe.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.wc.RecipePath(o.port), data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write portfile", goerr.V("path", o.wc.RecipePath(o.port)))
	}

	logger.Info("Copy local port files to registry", "registry", o.wc.RegistryRoot)
	copies := [][2]string{
		{o.wc.ManifestPath(o.port), o.wc.RegistryManifestPath(o.port)},
		{o.wc.RecipePath(o.port), o.wc.RegistryRecipePath(o.port)},
	}
	entries, err := os.ReadDir(o.wc.PortsDir())
	if err != nil {
		return goerr.Wrap(err, "failed to list ports", goerr.V("path", o.wc.PortsDir()))
	}
	for _, entry := range entries {
		if entry.IsDir() {
			copies = append(copies, [2]string{filepath.Join(o.wc.PortsDir(), entry.Name()), o.wc.RegistryPortsDir()})
		}
	}
	for _, c := range copies {
		if err := o.deps.Executor.Copy(ctx, c[0], c[1]); err != nil {
			return goerr.Wrap(err, "failed to copy port files into registry")
		}
	}

	logger.Info("vcpkg x-add-version", "port", o.port)
	if err := o.deps.Registry.FormatManifest(ctx, o.wc.RegistryManifestPath(o.port)); err != nil {
		return err
	}

	if err := o.commitRegistry(ctx); err != nil {
		return err
	}

	if err := o.deps.Registry.AddVersion(ctx, o.port); err != nil {
		return err
	}

	logger.Info("Copy back port files from registry")
	copyBack := [][2]string{
		{o.wc.RegistryManifestPath(o.port), o.wc.ManifestPath(o.port)},
		{o.wc.RegistryVersionFilePath(o.port), o.wc.VersionFilePath(o.port)},
	}
	for _, c := range copyBack {
		if err := copy.Copy(c[0], c[1]); err != nil {
			return goerr.Wrap(err, "failed to copy back from registry", goerr.V("src", c[0]), goerr.V("dst", c[1]))
		}
	}
	return nil
}

// commitRegistry commits the port in the registry checkout; x-add-version
// reads the port's git tree. The commit stays local.
func (o *Orchestrator) commitRegistry(ctx context.Context) error {
	root := o.wc.RegistryRoot
	if err := o.deps.RegistryGit.AddAll(ctx, root); err != nil {
		return goerr.Wrap(err, "failed to stage registry changes")
	}

	changed, err := o.deps.RegistryGit.HasStagedChanges(ctx, root)
	if err != nil {
		return goerr.Wrap(err, "failed to inspect registry changes")
	}
	if !changed {
		return nil
	}

	if err := o.deps.RegistryGit.Commit(ctx, root, RegistryCommitMessage); err != nil {
		return goerr.Wrap(err, "failed to commit registry changes")
	}
	return nil
}

func (o *Orchestrator) dumpBuildLog(ctx context.Context) {
	path := o.wc.BuildLogPath(o.port, o.triplet)
	log, err := os.ReadFile(path)
	if err != nil {
		logging.From(ctx).Warn("Failed to read build log", "path", path, "error", err)
		o.deps.Console.Failure("There were build errors! Build log %s is not readable", path)
		return
	}
	o.deps.Console.BuildLog("There were build errors!\n\nBuild log:", log)
}

func (o *Orchestrator) fail(err error) error {
	o.state = model.BuildStateFailed
	return err
}
