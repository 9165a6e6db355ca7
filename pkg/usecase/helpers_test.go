package usecase_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/usecase"
)

var testDigest = strings.Repeat("deadbeef", 16)

func testCreds() model.Credentials {
	return model.Credentials{Account: "release-bot", Token: "s3cr3t"}
}

// buildFixture is a clone with a generated manifest plus a registry directory
type buildFixture struct {
	port        model.PortSpec
	wc          model.WorkingContext
	release     model.Release
	exec        *fakeExecutor
	registry    *fakeRegistry
	registryGit *fakeGit
	git         *fakeGit
	console     *fakeConsole
	staging     string
}

func newBuildFixture(t *testing.T, results ...*model.BuildResult) *buildFixture {
	t.Helper()

	port := model.DefaultPortSpec()
	wc := model.WorkingContext{
		CloneDir:     filepath.Join(t.TempDir(), port.Repo),
		RegistryRoot: t.TempDir(),
	}
	for _, name := range []string{port.Name, "other-port"} {
		gt.NoError(t, os.MkdirAll(filepath.Join(wc.PortsDir(), name), 0755))
	}
	gt.NoError(t, os.WriteFile(wc.ManifestPath("other-port"), []byte(`{"name":"other-port"}`), 0644))

	release, err := model.NewRelease("v2.4.1")
	gt.NoError(t, err)

	git := newFakeGit("v2.4.1")
	return &buildFixture{
		port:        port,
		wc:          wc,
		release:     release,
		exec:        newFakeExecutor(),
		registry:    &fakeRegistry{wc: wc, results: results},
		registryGit: newFakeGit(""),
		git:         git,
		console:     &fakeConsole{},
		staging:     t.TempDir(),
	}
}

func (f *buildFixture) orchestrator() *usecase.Orchestrator {
	return usecase.NewOrchestrator(f.wc, f.port.Name, "x64-linux", usecase.BuildDeps{
		Executor:    f.exec,
		Registry:    f.registry,
		RegistryGit: f.registryGit,
		Publisher:   usecase.NewPublisher(f.git, "main"),
		Console:     f.console,
	}, usecase.WithStagingDir(f.staging))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
