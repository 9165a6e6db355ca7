package model

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed templates/portfile.cmake.tmpl
var portfileTemplate string

var recipeTemplate = template.Must(template.New("portfile").Parse(portfileTemplate))

// BuildRecipe is the port's portfile.cmake
type BuildRecipe struct {
	Repo        string   // "<owner>/<repo>"
	RefPrefix   string   // text before ${VERSION} in the REF argument
	Checksum    Checksum // SHA512 of the source archive
	HeadRef     string
	LicenseFile string
}

// NewBuildRecipe builds the recipe of port for a release
func NewBuildRecipe(port PortSpec, release Release, checksum Checksum) BuildRecipe {
	return BuildRecipe{
		Repo:        port.Slug(),
		RefPrefix:   release.RefPrefix(),
		Checksum:    checksum,
		HeadRef:     port.HeadRef,
		LicenseFile: port.LicenseFile,
	}
}

// WithChecksum returns a copy of the recipe carrying checksum
func (r BuildRecipe) WithChecksum(checksum Checksum) BuildRecipe {
	r.Checksum = checksum
	return r
}

// Render serializes the recipe as portfile.cmake content
func (r BuildRecipe) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := recipeTemplate.Execute(&buf, r); err != nil {
		return nil, goerr.Wrap(err, "failed to render portfile", goerr.V("repo", r.Repo))
	}
	return buf.Bytes(), nil
}
