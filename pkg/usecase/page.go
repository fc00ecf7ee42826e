package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"text/template"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/docfront/pkg/domain/interfaces"
	"github.com/m-mizutani/docfront/pkg/domain/model"
	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

//go:embed templates/index.html
var indexTemplate string

// pageData is the data passed to the landing page template. Values are
// written into the document verbatim: resolver and injector output is trusted
// markup and is neither escaped nor URL-normalized.
type pageData struct {
	ContributingHref         string
	ContributingAttrs        string
	ReleaseHighlightsHref    string
	ReleaseHighlightsVersion string
	Fragment                 string
}

type pageUseCase struct {
	resolver interfaces.PathResolver
	injector interfaces.FragmentInjector
	tmpl     *template.Template
}

// NewPage creates a new instance of PageUseCase
func NewPage(resolver interfaces.PathResolver, injector interfaces.FragmentInjector) (interfaces.PageUseCase, error) {
	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse landing page template")
	}

	return &pageUseCase{
		resolver: resolver,
		injector: injector,
		tmpl:     tmpl,
	}, nil
}

// Render produces the landing page HTML document. Resolver errors abort the
// render and are returned as is, wrapped with the failing path.
func (uc *pageUseCase) Render(ctx context.Context, page *model.PageContext) ([]byte, error) {
	logger := logging.From(ctx).With("render_id", uuid.NewString())

	link, err := uc.contributingLink(page.Mode())
	if err != nil {
		return nil, err
	}

	highlightsHref, err := uc.resolver.Resolve(page.ReleaseHighlights)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve release highlights",
			goerr.V("path", page.ReleaseHighlights),
		)
	}

	data := &pageData{
		ContributingHref:         link.Href,
		ContributingAttrs:        link.Attrs,
		ReleaseHighlightsHref:    highlightsHref,
		ReleaseHighlightsVersion: page.ReleaseHighlightsVersion,
		Fragment:                 uc.injector.Inject(),
	}

	var buf bytes.Buffer
	if err := uc.tmpl.Execute(&buf, data); err != nil {
		return nil, goerr.Wrap(err, "failed to execute landing page template")
	}

	logger.Debug("Rendered landing page",
		"mode", page.Mode().String(),
		"contributing_href", link.Href,
		"release_highlights", page.ReleaseHighlights,
		"size_bytes", buf.Len(),
	)

	return buf.Bytes(), nil
}

// contributingLink selects the contributing guide link. Development builds link
// inside the same docs tree; stable builds open the hosted dev docs in a new tab.
func (uc *pageUseCase) contributingLink(mode model.ReleaseMode) (*model.ContributingLink, error) {
	switch mode {
	case model.ReleaseModeDevelopment:
		href, err := uc.resolver.Resolve(model.ContributingDocument)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve contributing guide",
				goerr.V("path", model.ContributingDocument),
			)
		}
		return &model.ContributingLink{Href: href}, nil

	default:
		return &model.ContributingLink{
			Href:  model.DevContributingURL,
			Attrs: model.NewTabAttrs,
		}, nil
	}
}
