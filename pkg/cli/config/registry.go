package config

import (
	"github.com/google/shlex"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

// Registry holds the vcpkg installation settings
type Registry struct {
	Root    string
	Triplet string
	Elevate string
}

// Flags returns CLI flags for registry configuration
func (c *Registry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vcpkg-root",
			Usage:       "vcpkg installation directory",
			Value:       "/usr/local/share/vcpkg",
			Destination: &c.Root,
			Sources:     cli.EnvVars("VCPKG_RELEASE_VCPKG_ROOT"),
		},
		&cli.StringFlag{
			Name:        "triplet",
			Usage:       "vcpkg target triplet",
			Value:       "x64-linux",
			Destination: &c.Triplet,
			Sources:     cli.EnvVars("VCPKG_RELEASE_TRIPLET"),
		},
		&cli.StringFlag{
			Name:        "elevate",
			Usage:       "Command prefix for writes into the vcpkg installation; empty runs them directly",
			Value:       "sudo",
			Destination: &c.Elevate,
			Sources:     cli.EnvVars("VCPKG_RELEASE_ELEVATE"),
		},
	}
}

// ElevationCommand splits the elevation prefix into argv form
func (c *Registry) ElevationCommand() ([]string, error) {
	argv, err := shlex.Split(c.Elevate)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid elevation command",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("elevate", c.Elevate),
		)
	}
	return argv, nil
}
