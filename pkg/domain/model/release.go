package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Release identifies the tagged release that is being packaged
type Release struct {
	Tag     string // Git tag as found in the repository history, e.g. "v1.2.3"
	Version string // Tag with the leading "v" stripped, e.g. "1.2.3"
}

// NewRelease derives a Release from a git tag
func NewRelease(tag string) (Release, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Release{}, goerr.New("release tag is empty")
	}

	version := strings.TrimPrefix(tag, "v")
	if version == "" {
		return Release{}, goerr.New("release tag has no version", goerr.V("tag", tag))
	}

	return Release{Tag: tag, Version: version}, nil
}

// RefPrefix returns the text that precedes the version in the tag name, so
// the recipe can reference the tag as "<prefix>${VERSION}"
func (r Release) RefPrefix() string {
	return strings.TrimSuffix(r.Tag, r.Version)
}
