package model

import (
	"net/url"
	"path"
	"regexp"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

var portNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Dependency is an entry of the manifest's "dependencies" array
type Dependency struct {
	Name string `json:"name" toml:"name"`
	Host bool   `json:"host,omitempty" toml:"host"`
}

// Author is the commit identity configured on the clone
type Author struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// PortSpec describes the package being released and where its sources live
type PortSpec struct {
	Name         string       `toml:"name"`
	Description  string       `toml:"description"`
	Homepage     string       `toml:"homepage"`
	License      string       `toml:"license"`
	Supports     string       `toml:"supports"`
	Dependencies []Dependency `toml:"dependencies"`

	Host        string `toml:"host"`         // e.g. github.com
	Owner       string `toml:"owner"`        // repository owner
	Repo        string `toml:"repo"`         // repository name, also the clone directory name
	HeadRef     string `toml:"head_ref"`     // branch used by vcpkg --head builds
	LicenseFile string `toml:"license_file"` // installed as the copyright record
	Author      Author `toml:"author"`
}

// DefaultPortSpec returns the jsonifier port definition
func DefaultPortSpec() PortSpec {
	return PortSpec{
		Name:        "jsonifier",
		Description: "A few classes for parsing and serializing json - very rapidly.",
		Homepage:    "https://github.com/realtimechris/jsonifier",
		License:     "MIT",
		Supports:    "(windows & x64 & !xbox) | (linux & x64) | (osx & x64)",
		Dependencies: []Dependency{
			{Name: "vcpkg-cmake", Host: true},
			{Name: "vcpkg-cmake-config", Host: true},
		},
		Host:        "github.com",
		Owner:       "realtimechris",
		Repo:        "jsonifier",
		HeadRef:     "main",
		LicenseFile: "License.md",
		Author: Author{
			Name:  "RealTimeChris",
			Email: "40668522+RealTimeChris@users.noreply.github.com",
		},
	}
}

// Validate checks the fields every generated file depends on
func (p PortSpec) Validate() error {
	if !portNamePattern.MatchString(p.Name) {
		return goerr.New("invalid port name", goerr.T(types.ErrTagConfiguration), goerr.V("name", p.Name))
	}
	if p.Host == "" || p.Owner == "" || p.Repo == "" {
		return goerr.New("source repository is not fully specified",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("host", p.Host),
			goerr.V("owner", p.Owner),
			goerr.V("repo", p.Repo),
		)
	}
	if p.HeadRef == "" || p.LicenseFile == "" {
		return goerr.New("head ref and license file are required",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("head_ref", p.HeadRef),
			goerr.V("license_file", p.LicenseFile),
		)
	}
	if p.Author.Name == "" || p.Author.Email == "" {
		return goerr.New("commit author is required", goerr.T(types.ErrTagConfiguration))
	}
	return nil
}

// Slug returns "<owner>/<repo>" as used by vcpkg_from_github
func (p PortSpec) Slug() string {
	return p.Owner + "/" + p.Repo
}

// RemoteURL returns the HTTPS clone URL with the credentials embedded
func (p PortSpec) RemoteURL(creds Credentials) *url.URL {
	return &url.URL{
		Scheme: "https",
		User:   url.UserPassword(creds.Account, creds.Token),
		Host:   p.Host,
		Path:   "/" + path.Join(p.Owner, p.Repo),
	}
}
