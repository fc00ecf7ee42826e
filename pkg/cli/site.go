package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/docfront/pkg/cli/config"
	"github.com/m-mizutani/docfront/pkg/domain/interfaces"
	"github.com/m-mizutani/docfront/pkg/domain/model"
	"github.com/m-mizutani/docfront/pkg/usecase"
	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

// setupPage loads the site configuration and builds the page use case
func setupPage(ctx context.Context, c *cli.Command, siteCfg *config.Site) (interfaces.PageUseCase, *model.PageContext, error) {
	if err := siteCfg.Load(c.IsSet); err != nil {
		return nil, nil, err
	}

	page, err := siteCfg.PageContext()
	if err != nil {
		return nil, nil, err
	}

	resolver, err := siteCfg.Resolver()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create path resolver")
	}

	injector, err := siteCfg.Injector()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create fragment injector")
	}

	pageUC, err := usecase.NewPage(resolver, injector)
	if err != nil {
		return nil, nil, err
	}

	logging.From(ctx).Debug("Site configured",
		"mode", page.Mode().String(),
		"release_highlights", page.ReleaseHighlights,
		"release_highlights_version", page.ReleaseHighlightsVersion,
		"base_url", siteCfg.BaseURL,
		"docs_dir", siteCfg.DocsDir,
	)

	return pageUC, page, nil
}
