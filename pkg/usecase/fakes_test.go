package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/infra/shell"
)

// fakeGit records git operations and simulates a clone on disk
type fakeGit struct {
	calls []string

	latestTag     string
	defaultBranch string
	originURL     string // overrides the URL recorded by Clone
	hasChanges    bool
	errs          map[string]error // per operation
	pushErrs      []error          // consumed by successive pushes

	clonedURL string
}

func newFakeGit(tag string) *fakeGit {
	return &fakeGit{
		latestTag:     tag,
		defaultBranch: "main",
		hasChanges:    true,
		errs:          map[string]error{},
	}
}

func (g *fakeGit) record(op string, args ...string) error {
	g.calls = append(g.calls, strings.TrimSpace(op+" "+strings.Join(args, " ")))
	return g.errs[op]
}

func (g *fakeGit) count(op string) int {
	n := 0
	for _, c := range g.calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

func (g *fakeGit) LatestTag(ctx context.Context, dir string) (string, error) {
	if err := g.record("latest-tag", dir); err != nil {
		return "", err
	}
	return g.latestTag, nil
}

func (g *fakeGit) DefaultBranch(ctx context.Context) (string, error) {
	if err := g.record("default-branch"); err != nil {
		return "", err
	}
	return g.defaultBranch, nil
}

func (g *fakeGit) Clone(ctx context.Context, url, dest string, depth int) error {
	if err := g.record("clone", dest); err != nil {
		return err
	}
	g.clonedURL = url

	// repository content the release relies on
	for _, port := range []string{"jsonifier", "other-port"} {
		dir := filepath.Join(dest, "Vcpkg", "ports", port)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filepath.Join(dest, "Vcpkg", "ports", "other-port", "vcpkg.json"), []byte(`{"name":"other-port"}`), 0644)
}

func (g *fakeGit) FetchTags(ctx context.Context, dir string) error {
	return g.record("fetch-tags")
}

func (g *fakeGit) Checkout(ctx context.Context, dir, ref string) error {
	return g.record("checkout", ref)
}

func (g *fakeGit) RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	if err := g.record("remote-url", remote); err != nil {
		return "", err
	}
	if g.originURL != "" {
		return g.originURL, nil
	}
	return g.clonedURL, nil
}

func (g *fakeGit) SetConfig(ctx context.Context, dir, key, value string) error {
	return g.record("config", key, value)
}

func (g *fakeGit) AddAll(ctx context.Context, dir string) error {
	return g.record("add", dir)
}

func (g *fakeGit) HasStagedChanges(ctx context.Context, dir string) (bool, error) {
	if err := g.record("has-changes"); err != nil {
		return false, err
	}
	return g.hasChanges, nil
}

func (g *fakeGit) Commit(ctx context.Context, dir, message string) error {
	return g.record("commit", message)
}

func (g *fakeGit) Pull(ctx context.Context, dir string) error {
	return g.record("pull")
}

func (g *fakeGit) Push(ctx context.Context, dir, remote, branch string) error {
	if err := g.record("push", remote, branch); err != nil {
		return err
	}
	if len(g.pushErrs) > 0 {
		err := g.pushErrs[0]
		g.pushErrs = g.pushErrs[1:]
		return err
	}
	return nil
}

// fakeExecutor performs file operations for real and records them
type fakeExecutor struct {
	*shell.Direct
	ops []string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{Direct: &shell.Direct{Local: shell.NewLocal()}}
}

func (e *fakeExecutor) MakeDir(ctx context.Context, path string) error {
	e.ops = append(e.ops, "mkdir "+path)
	return e.Direct.MakeDir(ctx, path)
}

func (e *fakeExecutor) Copy(ctx context.Context, src, dst string) error {
	e.ops = append(e.ops, "copy "+src+" "+dst)
	return e.Direct.Copy(ctx, src, dst)
}

// fakeRegistry returns canned build results and writes the version file
// x-add-version would produce
type fakeRegistry struct {
	wc       model.WorkingContext
	results  []*model.BuildResult
	installs int
	formats  []string
	versions []string
	buildLog string // written on a failed install
}

func (r *fakeRegistry) Install(ctx context.Context, port, triplet string) (*model.BuildResult, error) {
	r.installs++
	if len(r.results) == 0 {
		return nil, errors.New("unexpected install")
	}
	result := r.results[0]
	r.results = r.results[1:]

	if !result.Succeeded() && r.buildLog != "" {
		path := r.wc.BuildLogPath(port, triplet)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(r.buildLog), 0644); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *fakeRegistry) FormatManifest(ctx context.Context, path string) error {
	r.formats = append(r.formats, path)
	return nil
}

func (r *fakeRegistry) AddVersion(ctx context.Context, port string) error {
	r.versions = append(r.versions, port)
	path := r.wc.RegistryVersionFilePath(port)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(`{"versions":[]}`), 0644)
}

// fakeConsole records printed lines
type fakeConsole struct {
	successes []string
	failures  []string
	logs      []string
}

func (c *fakeConsole) Success(format string, args ...any) {
	c.successes = append(c.successes, fmt.Sprintf(format, args...))
}

func (c *fakeConsole) Failure(format string, args ...any) {
	c.failures = append(c.failures, fmt.Sprintf(format, args...))
}

func (c *fakeConsole) BuildLog(header string, log []byte) {
	c.logs = append(c.logs, header+"\n"+string(log))
}

// hashOutput is a first-build output fragment as printed by vcpkg
func hashOutput(digest string) string {
	return "error: Failed to download from mirror set\n" +
		"File does not have the expected hash:\n" +
		"Expected hash: 0\n" +
		"Actual hash: " + digest + "\n"
}
