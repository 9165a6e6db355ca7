package model

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// Manifest is the port's vcpkg.json. Field order follows the file layout
// that format-manifest produces.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Description  string       `json:"description"`
	Homepage     string       `json:"homepage"`
	License      string       `json:"license"`
	Supports     string       `json:"supports"`
	Dependencies []Dependency `json:"dependencies"`
}

// NewManifest builds the manifest of port for a release
func NewManifest(port PortSpec, release Release) Manifest {
	deps := make([]Dependency, len(port.Dependencies))
	copy(deps, port.Dependencies)

	return Manifest{
		Name:         port.Name,
		Version:      release.Version,
		Description:  port.Description,
		Homepage:     port.Homepage,
		License:      port.License,
		Supports:     port.Supports,
		Dependencies: deps,
	}
}

// Marshal serializes the manifest with two-space indentation. HTML escaping
// is disabled so that "&" in the supports expression stays readable.
func (m Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, goerr.Wrap(err, "failed to encode manifest", goerr.V("name", m.Name))
	}
	return buf.Bytes(), nil
}
