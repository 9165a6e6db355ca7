package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

// PublishCommitMessage is used for the version metadata commit. "[skip ci]"
// keeps the push from triggering the release workflow again.
const PublishCommitMessage = "VCPKG info update [skip ci]"

// Publisher commits the generated port files to the source repository and
// pushes them upstream
type Publisher struct {
	git    interfaces.GitClient
	remote string
	branch string
}

// NewPublisher creates a Publisher pushing to origin/branch
func NewPublisher(git interfaces.GitClient, branch string) *Publisher {
	return &Publisher{
		git:    git,
		remote: "origin",
		branch: branch,
	}
}

// Publish commits and pushes all changes in the clone. It returns false when
// there was nothing to commit.
func (p *Publisher) Publish(ctx context.Context, wc model.WorkingContext) (bool, error) {
	logger := logging.From(ctx)
	dir := wc.CloneDir

	if err := p.git.AddAll(ctx, dir); err != nil {
		return false, goerr.Wrap(err, "failed to stage port files")
	}

	changed, err := p.git.HasStagedChanges(ctx, dir)
	if err != nil {
		return false, goerr.Wrap(err, "failed to inspect staged changes")
	}
	if !changed {
		logger.Info("Port files unchanged, nothing to publish")
		return false, nil
	}

	logger.Info("Commit and push changes", "remote", p.remote, "branch", p.branch)

	if err := p.git.Commit(ctx, dir, PublishCommitMessage); err != nil {
		return false, goerr.Wrap(err, "failed to commit port files")
	}

	if err := p.pullAndPush(ctx, dir); err != nil {
		logger.Warn("Push rejected, merging upstream changes once more", "error", err)

		if err := p.pullAndPush(ctx, dir); err != nil {
			return false, goerr.Wrap(err, "failed to publish port files",
				goerr.T(types.ErrTagPublication),
				goerr.V("remote", p.remote),
				goerr.V("branch", p.branch),
			)
		}
	}

	return true, nil
}

func (p *Publisher) pullAndPush(ctx context.Context, dir string) error {
	if err := p.git.Pull(ctx, dir); err != nil {
		return err
	}
	return p.git.Push(ctx, dir, p.remote, p.branch)
}
