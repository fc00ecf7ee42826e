package pathto

import (
	"io/fs"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultSuffix is appended to document names by the HTML builder
const DefaultSuffix = ".html"

var (
	ErrInvalidPath     = goerr.New("invalid document path")
	ErrUnknownDocument = goerr.New("unknown document")
)

type config struct {
	baseURL   string
	suffix    string
	docsDir   string
	documents []string
}

// Option is a functional option for Resolver
type Option func(*config)

// WithBaseURL makes Resolve return absolute URLs under baseURL
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithSuffix replaces the link suffix appended to document names
func WithSuffix(suffix string) Option {
	return func(c *config) {
		c.suffix = suffix
	}
}

// WithDocuments restricts resolvable documents to names
func WithDocuments(names ...string) Option {
	return func(c *config) {
		c.documents = append(c.documents, names...)
	}
}

// WithDocsDir restricts resolvable documents to pages found in a built documentation tree
func WithDocsDir(dir string) Option {
	return func(c *config) {
		c.docsDir = dir
	}
}

// Resolver resolves logical document names relative to the landing page at the docs root
type Resolver struct {
	baseURL   *url.URL
	suffix    string
	documents map[string]struct{}
}

// New creates a Resolver
func New(opts ...Option) (*Resolver, error) {
	cfg := &config{
		suffix: DefaultSuffix,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Resolver{
		suffix: cfg.suffix,
	}

	if cfg.baseURL != "" {
		u, err := url.Parse(cfg.baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse base URL", goerr.V("base_url", cfg.baseURL))
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, goerr.New("base URL must be absolute", goerr.V("base_url", cfg.baseURL))
		}
		r.baseURL = u
	}

	if len(cfg.documents) > 0 || cfg.docsDir != "" {
		r.documents = make(map[string]struct{})
		for _, name := range cfg.documents {
			r.documents[name] = struct{}{}
		}
	}

	if cfg.docsDir != "" {
		names, err := scanDocuments(cfg.docsDir, cfg.suffix)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			r.documents[name] = struct{}{}
		}
	}

	return r, nil
}

// Resolve returns the URL of the document. An optional "#anchor" is kept.
func (r *Resolver) Resolve(docPath string) (string, error) {
	doc, anchor, _ := strings.Cut(docPath, "#")
	if err := validateDocument(doc); err != nil {
		return "", goerr.Wrap(err, "failed to resolve document", goerr.V("path", docPath))
	}

	if r.documents != nil {
		if _, ok := r.documents[doc]; !ok {
			return "", goerr.Wrap(ErrUnknownDocument, "document is not in the docs tree", goerr.V("path", docPath))
		}
	}

	target := doc + r.suffix
	if r.baseURL != nil {
		u := r.baseURL.JoinPath(target)
		u.Fragment = anchor
		return u.String(), nil
	}

	if anchor != "" {
		target += "#" + anchor
	}
	return target, nil
}

func validateDocument(doc string) error {
	switch {
	case doc == "":
		return goerr.Wrap(ErrInvalidPath, "empty document name")
	case path.IsAbs(doc):
		return goerr.Wrap(ErrInvalidPath, "document name must be relative")
	case path.Clean(doc) != doc, doc == "..", strings.HasPrefix(doc, "../"):
		return goerr.Wrap(ErrInvalidPath, "document name must be clean and stay under the docs root")
	}
	return nil
}

func scanDocuments(dir, suffix string) ([]string, error) {
	if suffix == "" {
		return nil, goerr.New("docs tree scan requires a link suffix", goerr.V("docs_dir", dir))
	}

	var names []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		names = append(names, strings.TrimSuffix(filepath.ToSlash(rel), suffix))
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan docs tree", goerr.V("docs_dir", dir))
	}

	return names, nil
}
