package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/docfront/pkg/cli/config"
	"github.com/m-mizutani/docfront/pkg/infra/gcs"
	"github.com/m-mizutani/docfront/pkg/usecase"
	"github.com/m-mizutani/docfront/pkg/utils/errs"
	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

func cmdPublish() *cli.Command {
	var (
		siteCfg   config.Site
		gcsCfg    config.GCS
		sentryCfg config.Sentry
	)

	flags := append(siteCfg.Flags(), gcsCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Render the landing page and upload it to Google Cloud Storage",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			pageUC, page, err := setupPage(ctx, c, &siteCfg)
			if err != nil {
				return err
			}

			var opts []gcs.Option
			if gcsCfg.Endpoint != "" {
				opts = append(opts, gcs.WithEndpoint(gcsCfg.Endpoint))
			}
			storage, err := gcs.NewClient(ctx, opts...)
			if err != nil {
				return err
			}
			defer func() {
				if err := storage.Close(); err != nil {
					logging.From(ctx).Warn("Failed to close GCS client", "error", err)
				}
			}()

			result, err := usecase.NewPublish(pageUC, storage).Publish(ctx, page, gcsCfg.Target())
			if err != nil {
				errs.Handle(ctx, "Failed to publish landing page", err)
				return err
			}

			color.New(color.FgGreen).Fprintf(c.Root().ErrWriter, "published gs://%s/%s (generation %d, %d bytes)\n",
				result.Bucket, result.Object, result.Generation, result.Size)
			return nil
		},
	}
}
