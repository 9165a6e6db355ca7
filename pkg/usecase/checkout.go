package usecase

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

// CheckoutAgent produces a fresh clone of the package source repository
type CheckoutAgent struct {
	git          interfaces.GitClient
	port         model.PortSpec
	creds        model.Credentials
	workDir      string
	registryRoot string
}

// NewCheckoutAgent creates a CheckoutAgent cloning into workDir/<repo>
func NewCheckoutAgent(git interfaces.GitClient, port model.PortSpec, creds model.Credentials, workDir, registryRoot string) *CheckoutAgent {
	return &CheckoutAgent{
		git:          git,
		port:         port,
		creds:        creds,
		workDir:      workDir,
		registryRoot: registryRoot,
	}
}

// Checkout removes any previous clone, clones the repository and checks out
// ref. An empty ref selects the default branch.
func (a *CheckoutAgent) Checkout(ctx context.Context, ref string) (model.WorkingContext, error) {
	logger := logging.From(ctx)

	if ref == "" {
		branch, err := a.git.DefaultBranch(ctx)
		if err != nil {
			return model.WorkingContext{}, goerr.Wrap(err, "failed to resolve default branch")
		}
		ref = branch
	}

	wc := model.WorkingContext{
		CloneDir:     filepath.Join(a.workDir, a.port.Repo),
		RegistryRoot: a.registryRoot,
		Ref:          ref,
	}
	remote := a.port.RemoteURL(a.creds)

	logger.Info("Check out repository",
		"repository", remote.Redacted(),
		"user", a.creds.Account,
		"ref", ref,
		"clone_dir", wc.CloneDir,
	)

	if err := os.RemoveAll(wc.CloneDir); err != nil {
		return model.WorkingContext{}, goerr.Wrap(err, "failed to remove previous clone",
			goerr.T(types.ErrTagCheckout),
			goerr.V("clone_dir", wc.CloneDir),
		)
	}

	if err := a.git.Clone(ctx, remote.String(), wc.CloneDir, 1); err != nil {
		return model.WorkingContext{}, goerr.Wrap(err, "failed to clone repository",
			goerr.T(types.ErrTagCheckout),
			goerr.V("repository", remote.Redacted()),
		)
	}

	for _, kv := range [][2]string{
		{"user.email", a.port.Author.Email},
		{"user.name", a.port.Author.Name},
		{"pull.rebase", "false"},
	} {
		if err := a.git.SetConfig(ctx, wc.CloneDir, kv[0], kv[1]); err != nil {
			return model.WorkingContext{}, goerr.Wrap(err, "failed to configure clone", goerr.V("key", kv[0]))
		}
	}

	// fetching tags into a shallow clone is noisy and partly fails on some hosts
	if err := a.git.FetchTags(ctx, wc.CloneDir); err != nil {
		logger.Debug("Fetching tags failed", "error", err)
	}

	if err := a.git.Checkout(ctx, wc.CloneDir, ref); err != nil {
		return model.WorkingContext{}, goerr.Wrap(err, "failed to check out ref",
			goerr.T(types.ErrTagCheckout),
			goerr.V("ref", ref),
		)
	}

	if err := a.verifyOrigin(ctx, wc.CloneDir); err != nil {
		return model.WorkingContext{}, err
	}

	return wc, nil
}

// verifyOrigin checks that the clone's origin is the intended repository
func (a *CheckoutAgent) verifyOrigin(ctx context.Context, dir string) error {
	origin, err := a.git.RemoteURL(ctx, dir, "origin")
	if err != nil {
		return goerr.Wrap(err, "failed to read origin of clone", goerr.T(types.ErrTagCheckout))
	}

	u, err := url.Parse(origin)
	if err != nil {
		return goerr.Wrap(err, "origin of clone is not a URL", goerr.T(types.ErrTagCheckout))
	}

	want := a.port.RemoteURL(a.creds)
	if !strings.EqualFold(u.Host, want.Host) || !strings.EqualFold(normalizeRepoPath(u.Path), normalizeRepoPath(want.Path)) {
		return goerr.New("clone does not point at the intended repository",
			goerr.T(types.ErrTagCheckout),
			goerr.V("origin", u.Redacted()),
			goerr.V("want", want.Redacted()),
		)
	}
	return nil
}

func normalizeRepoPath(p string) string {
	return strings.TrimSuffix(strings.Trim(p, "/"), ".git")
}
