package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

// Port holds the package definition and where the release is prepared
type Port struct {
	File       string
	WorkDir    string
	Branch     string
	Ref        string
	SourceDir  string
	StagingDir string
}

// Flags returns CLI flags for port configuration
func (c *Port) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "port-file",
			Usage:       "TOML file overriding the built-in jsonifier port definition",
			Destination: &c.File,
			Sources:     cli.EnvVars("VCPKG_RELEASE_PORT_FILE"),
		},
		&cli.StringFlag{
			Name:        "workdir",
			Usage:       "Directory the source repository is cloned into (default: $HOME)",
			Destination: &c.WorkDir,
			Sources:     cli.EnvVars("VCPKG_RELEASE_WORKDIR"),
		},
		&cli.StringFlag{
			Name:        "branch",
			Usage:       "Branch the version metadata is pushed to (default: the checked out ref)",
			Destination: &c.Branch,
			Sources:     cli.EnvVars("VCPKG_RELEASE_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "ref",
			Usage:       "Ref checked out in the clone (default: git's init.defaultBranch, then main)",
			Destination: &c.Ref,
			Sources:     cli.EnvVars("VCPKG_RELEASE_REF"),
		},
		&cli.StringFlag{
			Name:        "source-dir",
			Usage:       "Checkout whose latest tag is released",
			Value:       ".",
			Destination: &c.SourceDir,
			Sources:     cli.EnvVars("VCPKG_RELEASE_SOURCE_DIR"),
		},
		&cli.StringFlag{
			Name:        "staging-dir",
			Usage:       "Directory the first-build portfile is staged in (default: system temp dir)",
			Destination: &c.StagingDir,
			Sources:     cli.EnvVars("VCPKG_RELEASE_STAGING_DIR"),
		},
	}
}

// Load returns the port definition. Keys present in the port file replace
// the built-in defaults.
func (c *Port) Load() (model.PortSpec, error) {
	spec := model.DefaultPortSpec()

	if c.File != "" {
		raw, err := os.ReadFile(c.File)
		if err != nil {
			return model.PortSpec{}, goerr.Wrap(err, "failed to read port file",
				goerr.T(types.ErrTagConfiguration),
				goerr.V("path", c.File),
			)
		}
		var override model.PortSpec
		if err := toml.Unmarshal(raw, &override); err != nil {
			return model.PortSpec{}, goerr.Wrap(err, "failed to parse port file",
				goerr.T(types.ErrTagConfiguration),
				goerr.V("path", c.File),
			)
		}
		spec = mergePortSpec(spec, override)
	}

	if err := spec.Validate(); err != nil {
		return model.PortSpec{}, err
	}
	return spec, nil
}

// ResolveWorkDir returns the clone parent directory, falling back to the
// home directory
func (c *Port) ResolveWorkDir() (string, error) {
	if c.WorkDir != "" {
		return c.WorkDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "HOME is not set and --workdir is not given", goerr.T(types.ErrTagConfiguration))
	}
	return home, nil
}

// mergePortSpec overlays the non-empty fields of override onto base.
// go-toml appends array tables to a non-empty slice, so the file is decoded
// into a zero value first.
func mergePortSpec(base, override model.PortSpec) model.PortSpec {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&base.Name, override.Name},
		{&base.Description, override.Description},
		{&base.Homepage, override.Homepage},
		{&base.License, override.License},
		{&base.Supports, override.Supports},
		{&base.Host, override.Host},
		{&base.Owner, override.Owner},
		{&base.Repo, override.Repo},
		{&base.HeadRef, override.HeadRef},
		{&base.LicenseFile, override.LicenseFile},
		{&base.Author.Name, override.Author.Name},
		{&base.Author.Email, override.Author.Email},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	if override.Dependencies != nil {
		base.Dependencies = override.Dependencies
	}
	return base
}
