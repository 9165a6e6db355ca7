package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
	"github.com/m-mizutani/vcpkg-release/pkg/usecase"
)

func TestPublisher_Publish(t *testing.T) {
	wc := model.WorkingContext{CloneDir: "/home/bot/jsonifier"}

	t.Run("commits and pushes changes", func(t *testing.T) {
		git := newFakeGit("")
		published, err := usecase.NewPublisher(git, "main").Publish(context.Background(), wc)
		gt.NoError(t, err)
		gt.True(t, published)
		gt.Value(t, git.calls).Equal([]string{
			"add /home/bot/jsonifier",
			"has-changes",
			"commit VCPKG info update [skip ci]",
			"pull",
			"push origin main",
		})
	})

	t.Run("skips when nothing changed", func(t *testing.T) {
		git := newFakeGit("")
		git.hasChanges = false
		published, err := usecase.NewPublisher(git, "main").Publish(context.Background(), wc)
		gt.NoError(t, err)
		gt.False(t, published)
		gt.Value(t, git.count("commit")).Equal(0)
		gt.Value(t, git.count("push")).Equal(0)
	})

	t.Run("rejected push is retried once", func(t *testing.T) {
		git := newFakeGit("")
		git.pushErrs = []error{errors.New("rejected: fetch first")}
		published, err := usecase.NewPublisher(git, "release").Publish(context.Background(), wc)
		gt.NoError(t, err)
		gt.True(t, published)
		gt.Value(t, git.count("pull")).Equal(2)
		gt.Value(t, git.count("push origin release")).Equal(2)
		gt.Value(t, git.count("commit")).Equal(1)
	})

	t.Run("second rejection is a publication failure", func(t *testing.T) {
		git := newFakeGit("")
		git.pushErrs = []error{errors.New("rejected"), errors.New("rejected again")}
		_, err := usecase.NewPublisher(git, "main").Publish(context.Background(), wc)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagPublication))
		gt.Value(t, git.count("push")).Equal(2)
	})

	t.Run("commit failure stops before push", func(t *testing.T) {
		git := newFakeGit("")
		git.errs["commit"] = errors.New("author identity unknown")
		_, err := usecase.NewPublisher(git, "main").Publish(context.Background(), wc)
		gt.Error(t, err)
		gt.Value(t, git.count("push")).Equal(0)
	})
}
