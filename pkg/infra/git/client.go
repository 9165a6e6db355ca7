package git

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

// DefaultBranchFallback is used when init.defaultBranch is not configured
const DefaultBranchFallback = "main"

type client struct {
	exec    interfaces.CommandExecutor
	gitPath string
}

// Option configures the git client
type Option func(*client)

// WithGitPath sets the git executable
func WithGitPath(path string) Option {
	return func(c *client) {
		c.gitPath = path
	}
}

// NewClient creates a git client running commands through exec. Passing a
// privileged executor yields a client for the registry checkout.
func NewClient(exec interfaces.CommandExecutor, opts ...Option) interfaces.GitClient {
	c := &client{
		exec:    exec,
		gitPath: "git",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestTag returns the tag of the most recently tagged commit in dir.
// Tagged commits are ordered by commit date, not by tag creation or version.
func (c *client) LatestTag(ctx context.Context, dir string) (string, error) {
	rr, err := c.run(ctx, dir, "rev-list", "--tags", "--max-count=1")
	if err != nil {
		return "", err
	}
	sha := strings.TrimSpace(rr.Stdout)
	if sha == "" {
		return "", goerr.New("no tags found in repository", goerr.V("dir", dir))
	}

	rr, err = c.run(ctx, dir, "describe", "--tags", sha)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rr.Stdout), nil
}

// DefaultBranch returns the configured init.defaultBranch
func (c *client) DefaultBranch(ctx context.Context) (string, error) {
	result, err := c.exec.Run(ctx, c.command("", "config", "--get", "init.defaultBranch"))
	if err != nil {
		return "", err
	}
	// exit status 1 means the key is not set
	if result.ExitCode == 1 {
		return DefaultBranchFallback, nil
	}
	if !result.Succeeded() {
		return "", c.execError(result, []string{"config", "--get", "init.defaultBranch"})
	}

	branch := strings.TrimSpace(result.Stdout)
	if branch == "" {
		return DefaultBranchFallback, nil
	}
	return branch, nil
}

// Clone clones remoteURL into dest. depth <= 0 makes a full clone.
func (c *client) Clone(ctx context.Context, remoteURL, dest string, depth int) error {
	args := []string{"clone", remoteURL, dest}
	if depth > 0 {
		args = append(args, "--depth="+strconv.Itoa(depth))
	}
	_, err := c.run(ctx, "", args...)
	return err
}

// FetchTags fetches all tags
func (c *client) FetchTags(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "fetch", "--append", "--tags")
	return err
}

// Checkout checks out ref
func (c *client) Checkout(ctx context.Context, dir, ref string) error {
	_, err := c.run(ctx, dir, "checkout", ref)
	return err
}

// RemoteURL returns the URL of remote
func (c *client) RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	rr, err := c.run(ctx, dir, "remote", "get-url", remote)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rr.Stdout), nil
}

// SetConfig sets a local config value
func (c *client) SetConfig(ctx context.Context, dir, key, value string) error {
	_, err := c.run(ctx, dir, "config", key, value)
	return err
}

// AddAll stages all changes
func (c *client) AddAll(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "add", ".")
	return err
}

// HasStagedChanges runs "git diff --cached --quiet", which exits 1 when the
// index differs from HEAD
func (c *client) HasStagedChanges(ctx context.Context, dir string) (bool, error) {
	args := []string{"diff", "--cached", "--quiet"}
	result, err := c.exec.Run(ctx, c.command(dir, args...))
	if err != nil {
		return false, err
	}
	switch result.ExitCode {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, c.execError(result, args)
	}
}

// Commit commits the index
func (c *client) Commit(ctx context.Context, dir, message string) error {
	_, err := c.run(ctx, dir, "commit", "-m", message)
	return err
}

// Pull merges upstream changes without rebasing
func (c *client) Pull(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "pull", "--no-rebase")
	return err
}

// Push pushes branch to remote
func (c *client) Push(ctx context.Context, dir, remote, branch string) error {
	_, err := c.run(ctx, dir, "push", remote, branch)
	return err
}

func (c *client) command(dir string, args ...string) model.Command {
	return model.Command{
		Dir:  dir,
		Name: c.gitPath,
		Args: args,
	}
}

// run runs a git command and fails on a non-zero exit status.
// Omit the 'git' part of the command.
func (c *client) run(ctx context.Context, dir string, args ...string) (*model.CommandResult, error) {
	result, err := c.exec.Run(ctx, c.command(dir, args...))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run git", goerr.V("args", redactArgs(args)))
	}
	if !result.Succeeded() {
		return nil, c.execError(result, args)
	}
	return result, nil
}

func (c *client) execError(result *model.CommandResult, args []string) error {
	return goerr.New("git command failed",
		goerr.T(types.ErrTagCommand),
		goerr.V("args", redactArgs(args)),
		goerr.V("exit_code", result.ExitCode),
		goerr.V("stderr", redactText(result.Stderr)),
	)
}

// redactArgs hides passwords embedded in URL arguments
func redactArgs(args []string) []string {
	redacted := make([]string, len(args))
	for i, arg := range args {
		redacted[i] = redactText(arg)
	}
	return redacted
}

func redactText(s string) string {
	fields := strings.Fields(s)
	for _, f := range fields {
		u, err := url.Parse(strings.Trim(f, "'\"`"))
		if err != nil || u.User == nil {
			continue
		}
		if _, hasPassword := u.User.Password(); hasPassword {
			s = strings.ReplaceAll(s, strings.Trim(f, "'\"`"), u.Redacted())
		}
	}
	return s
}
