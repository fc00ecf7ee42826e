package config

import (
	"bytes"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/docfront/pkg/domain/interfaces"
	"github.com/m-mizutani/docfront/pkg/domain/model"
	"github.com/m-mizutani/docfront/pkg/infra/fragment"
	"github.com/m-mizutani/docfront/pkg/infra/pathto"
)

// siteFile is the layout of the TOML site file
type siteFile struct {
	Page  model.PageContext `toml:"page"`
	Links struct {
		BaseURL string  `toml:"base_url"`
		Suffix  *string `toml:"suffix"`
		DocsDir string  `toml:"docs_dir"`
	} `toml:"links"`
	Fragment struct {
		Scripts []string `toml:"scripts"`
		File    string   `toml:"file"`
	} `toml:"fragment"`
}

// Site holds the landing page context and the collaborators used to render it.
// Flags set explicitly on the command line override values of the site file.
type Site struct {
	ConfigFile               string
	DevRelease               bool
	ReleaseHighlights        string
	ReleaseHighlightsVersion string
	BaseURL                  string
	LinkSuffix               string
	DocsDir                  string
	Scripts                  []string
	FragmentFile             string
}

// Flags returns CLI flags for site configuration
func (c *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "site-config",
			Aliases:     []string{"c"},
			Usage:       "Site configuration file (TOML)",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("DOCFRONT_SITE_CONFIG"),
		},
		&cli.BoolFlag{
			Name:        "dev-release",
			Usage:       "Render the page for a development release",
			Destination: &c.DevRelease,
			Sources:     cli.EnvVars("DOCFRONT_DEV_RELEASE"),
		},
		&cli.StringFlag{
			Name:        "release-highlights",
			Usage:       "Document path of the current release highlights",
			Destination: &c.ReleaseHighlights,
			Sources:     cli.EnvVars("DOCFRONT_RELEASE_HIGHLIGHTS"),
		},
		&cli.StringFlag{
			Name:        "release-highlights-version",
			Usage:       "Version label of the current release highlights",
			Destination: &c.ReleaseHighlightsVersion,
			Sources:     cli.EnvVars("DOCFRONT_RELEASE_HIGHLIGHTS_VERSION"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Absolute base URL of the docs. Links are relative if empty",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("DOCFRONT_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "link-suffix",
			Usage:       "Suffix appended to document names",
			Value:       pathto.DefaultSuffix,
			Destination: &c.LinkSuffix,
			Sources:     cli.EnvVars("DOCFRONT_LINK_SUFFIX"),
		},
		&cli.StringFlag{
			Name:        "docs-dir",
			Usage:       "Built documentation tree used to validate links",
			Destination: &c.DocsDir,
			Sources:     cli.EnvVars("DOCFRONT_DOCS_DIR"),
		},
		&cli.StringSliceFlag{
			Name:        "script",
			Usage:       "Script source appended at the end of the page (repeatable)",
			Destination: &c.Scripts,
			Sources:     cli.EnvVars("DOCFRONT_SCRIPTS"),
		},
		&cli.StringFlag{
			Name:        "fragment-file",
			Usage:       "HTML fragment file appended at the end of the page",
			Destination: &c.FragmentFile,
			Sources:     cli.EnvVars("DOCFRONT_FRAGMENT_FILE"),
		},
	}
}

// Load merges the site file into c. isSet reports whether a flag was given
// explicitly; such flags keep their value.
func (c *Site) Load(isSet func(name string) bool) error {
	if c.ConfigFile == "" {
		return nil
	}

	raw, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read site config", goerr.V("path", c.ConfigFile))
	}

	var file siteFile
	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return goerr.Wrap(err, "failed to decode site config", goerr.V("path", c.ConfigFile))
	}

	if !isSet("dev-release") {
		c.DevRelease = file.Page.IsDevRelease
	}
	if !isSet("release-highlights") {
		c.ReleaseHighlights = file.Page.ReleaseHighlights
	}
	if !isSet("release-highlights-version") {
		c.ReleaseHighlightsVersion = file.Page.ReleaseHighlightsVersion
	}
	if !isSet("base-url") {
		c.BaseURL = file.Links.BaseURL
	}
	if !isSet("link-suffix") && file.Links.Suffix != nil {
		c.LinkSuffix = *file.Links.Suffix
	}
	if !isSet("docs-dir") {
		c.DocsDir = file.Links.DocsDir
	}
	if !isSet("script") {
		c.Scripts = file.Fragment.Scripts
	}
	if !isSet("fragment-file") {
		c.FragmentFile = file.Fragment.File
	}

	return nil
}

// PageContext returns the validated render context
func (c *Site) PageContext() (*model.PageContext, error) {
	page := &model.PageContext{
		IsDevRelease:             c.DevRelease,
		ReleaseHighlights:        c.ReleaseHighlights,
		ReleaseHighlightsVersion: c.ReleaseHighlightsVersion,
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// Resolver builds the path resolver
func (c *Site) Resolver() (interfaces.PathResolver, error) {
	opts := []pathto.Option{
		pathto.WithSuffix(c.LinkSuffix),
	}
	if c.BaseURL != "" {
		opts = append(opts, pathto.WithBaseURL(c.BaseURL))
	}
	if c.DocsDir != "" {
		opts = append(opts, pathto.WithDocsDir(c.DocsDir))
	}

	resolver, err := pathto.New(opts...)
	if err != nil {
		return nil, err
	}
	return resolver, nil
}

// Injector builds the fragment injector. A fragment file takes precedence over scripts.
func (c *Site) Injector() (interfaces.FragmentInjector, error) {
	if c.FragmentFile != "" {
		injector, err := fragment.LoadFile(c.FragmentFile)
		if err != nil {
			return nil, err
		}
		return injector, nil
	}

	injector, err := fragment.NewScripts(c.Scripts...)
	if err != nil {
		return nil, err
	}
	return injector, nil
}
