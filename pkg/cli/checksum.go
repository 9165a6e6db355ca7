package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
	"github.com/m-mizutani/vcpkg-release/pkg/usecase"
)

func cmdChecksum() *cli.Command {
	return &cli.Command{
		Name:      "checksum",
		Usage:     "Print the SHA512 reported in a saved first-build log",
		ArgsUsage: "<log-file>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 1 {
				return goerr.New("log file is required", goerr.T(types.ErrTagConfiguration))
			}
			path := c.Args().First()

			raw, err := os.ReadFile(path)
			if err != nil {
				return goerr.Wrap(err, "failed to read build log", goerr.V("path", path))
			}

			digest, ok := usecase.ExtractChecksum(string(raw))
			if !ok {
				return goerr.New("no SHA512 found in build log",
					goerr.T(types.ErrTagChecksumExtraction),
					goerr.V("path", path),
				)
			}

			fmt.Fprintln(c.Root().Writer, digest)
			return nil
		},
	}
}
