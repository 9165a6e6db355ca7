package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vcpkg-release/pkg/cli/config"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
)

func cmdRender(portCfg *config.Port) *cli.Command {
	var (
		tag    string
		sha512 string
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Print the manifest and portfile of a release without touching any repository",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "tag",
				Usage:       "Release tag, e.g. v2.4.1",
				Required:    true,
				Destination: &tag,
			},
			&cli.StringFlag{
				Name:        "sha512",
				Usage:       "Source archive digest; the placeholder is used when omitted",
				Destination: &sha512,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			port, err := portCfg.Load()
			if err != nil {
				return err
			}
			release, err := model.NewRelease(tag)
			if err != nil {
				return err
			}

			recipe := model.NewBuildRecipe(port, release, model.UnknownChecksum())
			if sha512 != "" {
				checksum, err := model.VerifiedChecksum(sha512)
				if err != nil {
					return err
				}
				recipe = recipe.WithChecksum(checksum)
			}

			manifest, err := model.NewManifest(port, release).Marshal()
			if err != nil {
				return err
			}
			rendered, err := recipe.Render()
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "# %s\n%s\n# %s\n%s", "vcpkg.json", manifest, "portfile.cmake", rendered)
			return nil
		},
	}
}
