package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/logging"
)

// PortfileGenerator renders the port files of a release
type PortfileGenerator struct {
	port model.PortSpec
}

// NewPortfileGenerator creates a generator for port
func NewPortfileGenerator(port model.PortSpec) *PortfileGenerator {
	return &PortfileGenerator{port: port}
}

// Generate writes the manifest into the clone and returns it together with
// the recipe. The recipe is not written: the first build only stages it in
// the registry, the second build persists it.
func (g *PortfileGenerator) Generate(ctx context.Context, wc model.WorkingContext, release model.Release, checksum model.Checksum) (model.BuildRecipe, model.Manifest, error) {
	logging.From(ctx).Info("Construct portfile",
		"version", release.Version,
		"sha512", checksum.String(),
	)

	recipe := model.NewBuildRecipe(g.port, release, checksum)
	manifest := model.NewManifest(g.port, release)

	data, err := manifest.Marshal()
	if err != nil {
		return model.BuildRecipe{}, model.Manifest{}, err
	}

	path := wc.ManifestPath(g.port.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return model.BuildRecipe{}, model.Manifest{}, goerr.Wrap(err, "failed to create port directory", goerr.V("path", path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return model.BuildRecipe{}, model.Manifest{}, goerr.Wrap(err, "failed to write manifest", goerr.V("path", path))
	}

	return recipe, manifest, nil
}
