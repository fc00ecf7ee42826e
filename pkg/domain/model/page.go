package model

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// ContributingDocument is the logical document name of the contributing guide
	ContributingDocument = "developers/contributing"

	// DevContributingURL is the contributing guide of the hosted development docs
	DevContributingURL = "https://scikit-learn.org/dev/developers/contributing.html"

	// NewTabAttrs opens a link in a new tab without opener or referrer
	NewTabAttrs = `target="_blank" rel="noopener noreferrer"`
)

var (
	ErrInvalidReleaseFlag = goerr.New("invalid release flag")
	ErrInvalidPageContext = goerr.New("invalid page context")
)

// ReleaseMode tells whether the docs are built from a development or a stable release
type ReleaseMode int

const (
	ReleaseModeStable ReleaseMode = iota
	ReleaseModeDevelopment
)

func (m ReleaseMode) String() string {
	switch m {
	case ReleaseModeDevelopment:
		return "development"
	default:
		return "stable"
	}
}

// PageContext holds the values supplied to a single render of the landing page
type PageContext struct {
	IsDevRelease             bool   `toml:"is_devrelease"`
	ReleaseHighlights        string `toml:"release_highlights"`
	ReleaseHighlightsVersion string `toml:"release_highlights_version"`
}

// Mode returns the release mode selected by IsDevRelease
func (x *PageContext) Mode() ReleaseMode {
	if x.IsDevRelease {
		return ReleaseModeDevelopment
	}
	return ReleaseModeStable
}

// Validate checks that the release highlights fields are present
func (x *PageContext) Validate() error {
	if x.ReleaseHighlights == "" {
		return goerr.Wrap(ErrInvalidPageContext, "release_highlights is required")
	}
	if x.ReleaseHighlightsVersion == "" {
		return goerr.Wrap(ErrInvalidPageContext, "release_highlights_version is required")
	}
	return nil
}

// ContributingLink is the target and extra anchor attributes of the contributing guide link
type ContributingLink struct {
	Href  string
	Attrs string
}

// ParseReleaseFlag parses a textual release flag as a strict boolean. Unlike
// truthiness coercion, "false" and "0" are false and unknown words are rejected.
func ParseReleaseFlag(s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, goerr.Wrap(ErrInvalidReleaseFlag, "release flag must be a boolean", goerr.V("value", s))
	}
	return v, nil
}
