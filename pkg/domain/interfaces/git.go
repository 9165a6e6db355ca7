package interfaces

import "context"

// GitClient runs git operations. Every repository operation names the
// directory it applies to.
type GitClient interface {
	// LatestTag returns the most recent tag reachable in dir
	LatestTag(ctx context.Context, dir string) (string, error)

	// DefaultBranch returns init.defaultBranch, or "main" when unset
	DefaultBranch(ctx context.Context) (string, error)

	// Clone makes a shallow clone of url into dest
	Clone(ctx context.Context, url, dest string, depth int) error

	// FetchTags fetches tags from all remotes
	FetchTags(ctx context.Context, dir string) error

	// Checkout switches dir to ref
	Checkout(ctx context.Context, dir, ref string) error

	// RemoteURL returns the URL configured for remote
	RemoteURL(ctx context.Context, dir, remote string) (string, error)

	// SetConfig sets a repository-local config value
	SetConfig(ctx context.Context, dir, key, value string) error

	// AddAll stages every change in dir
	AddAll(ctx context.Context, dir string) error

	// HasStagedChanges reports whether the index differs from HEAD
	HasStagedChanges(ctx context.Context, dir string) (bool, error)

	// Commit records the index with message
	Commit(ctx context.Context, dir, message string) error

	// Pull merges the upstream branch into the current branch
	Pull(ctx context.Context, dir string) error

	// Push pushes branch to remote
	Push(ctx context.Context, dir, remote, branch string) error
}
