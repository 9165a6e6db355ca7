package usecase

import (
	"context"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

// Locator finds the release to package in a local checkout
type Locator struct {
	git interfaces.GitClient
}

// NewLocator fails when credentials are missing, so that nothing touches the
// network without them
func NewLocator(creds model.Credentials, git interfaces.GitClient) (*Locator, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &Locator{git: git}, nil
}

// Locate returns the latest tag of the repository in dir and its version
func (l *Locator) Locate(ctx context.Context, dir string) (model.Release, error) {
	logger := logging.From(ctx)

	tag, err := l.git.LatestTag(ctx, dir)
	if err != nil {
		return model.Release{}, goerr.Wrap(err, "failed to find latest tag", goerr.V("dir", dir))
	}

	release, err := model.NewRelease(tag)
	if err != nil {
		return model.Release{}, err
	}

	if _, err := semver.StrictNewVersion(release.Version); err != nil {
		logger.Warn("Latest tag is not a semantic version",
			"tag", release.Tag,
			"version", release.Version,
			"error", err,
		)
	}

	logger.Info("Located release",
		"tag", release.Tag,
		"version", release.Version,
	)

	return release, nil
}
