package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vcpkg-release/pkg/cli/config"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

func writePortFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "port.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPort_Load_Default(t *testing.T) {
	cfg := &config.Port{}
	spec, err := cfg.Load()
	gt.NoError(t, err)
	gt.Value(t, spec).Equal(model.DefaultPortSpec())
}

func TestPort_Load_File(t *testing.T) {
	path := writePortFile(t, `
name = "fast-json"
owner = "example"
repo = "fast-json"
license_file = "LICENSE"

[[dependencies]]
name = "vcpkg-cmake"
host = true

[author]
name = "Release Bot"
email = "bot@example.com"
`)

	spec, err := (&config.Port{File: path}).Load()
	gt.NoError(t, err)
	gt.Value(t, spec.Name).Equal("fast-json")
	gt.Value(t, spec.Owner).Equal("example")
	gt.Value(t, spec.LicenseFile).Equal("LICENSE")
	gt.Value(t, spec.Dependencies).Equal([]model.Dependency{{Name: "vcpkg-cmake", Host: true}})
	gt.Value(t, spec.Author.Email).Equal("bot@example.com")

	// keys absent from the file keep their defaults
	gt.Value(t, spec.Host).Equal("github.com")
	gt.Value(t, spec.HeadRef).Equal("main")
}

func TestPort_Load_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.toml") },
		},
		{
			name: "malformed toml",
			path: func(t *testing.T) string { return writePortFile(t, `name = `) },
		},
		{
			name: "invalid port name",
			path: func(t *testing.T) string { return writePortFile(t, `name = "Fast_JSON"`) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&config.Port{File: tt.path(t)}).Load()
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
		})
	}
}

func TestPort_ResolveWorkDir(t *testing.T) {
	dir, err := (&config.Port{WorkDir: "/work"}).ResolveWorkDir()
	gt.NoError(t, err)
	gt.Value(t, dir).Equal("/work")

	t.Setenv("HOME", "/home/release-bot")
	dir, err = (&config.Port{}).ResolveWorkDir()
	gt.NoError(t, err)
	gt.Value(t, dir).Equal("/home/release-bot")
}

func TestRegistry_ElevationCommand(t *testing.T) {
	tests := []struct {
		name    string
		elevate string
		want    []string
		wantErr bool
	}{
		{name: "sudo", elevate: "sudo", want: []string{"sudo"}},
		{name: "with options", elevate: `sudo -n -u "build user"`, want: []string{"sudo", "-n", "-u", "build user"}},
		{name: "disabled", elevate: "", want: nil},
		{name: "unterminated quote", elevate: `sudo "-u`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := (&config.Registry{Elevate: tt.elevate}).ElevationCommand()
			if tt.wantErr {
				gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
				return
			}
			gt.NoError(t, err)
			gt.A(t, argv).Length(len(tt.want))
			for i := range tt.want {
				gt.Value(t, argv[i]).Equal(tt.want[i])
			}
		})
	}
}

func TestNotify_Configure(t *testing.T) {
	n, err := (&config.Notify{}).Configure()
	gt.NoError(t, err)
	gt.Value(t, n).NotNil()

	n, err = (&config.Notify{SlackWebhookURL: "https://hooks.slack.com/services/T/B/X"}).Configure()
	gt.NoError(t, err)
	gt.Value(t, n).NotNil()

	_, err = (&config.Notify{SentryDSN: "not a dsn"}).Configure()
	gt.Error(t, err)
}
