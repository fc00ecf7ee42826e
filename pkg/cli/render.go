package cli

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/docfront/pkg/cli/config"
)

func cmdRender() *cli.Command {
	var (
		siteCfg config.Site
		output  string
	)

	flags := append(siteCfg.Flags(),
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file, '-' for stdout",
			Value:       "-",
			Destination: &output,
			Sources:     cli.EnvVars("DOCFRONT_OUTPUT"),
		},
	)

	return &cli.Command{
		Name:    "render",
		Aliases: []string{"r"},
		Usage:   "Render the landing page to a file or stdout",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			pageUC, page, err := setupPage(ctx, c, &siteCfg)
			if err != nil {
				return err
			}

			body, err := pageUC.Render(ctx, page)
			if err != nil {
				return goerr.Wrap(err, "failed to render landing page")
			}

			if err := writeOutput(output, body, c.Root().Writer); err != nil {
				return err
			}

			if output != "-" {
				summary := color.New(color.FgGreen)
				summary.Fprintf(c.Root().ErrWriter, "rendered %s release page: %s (%d bytes)\n",
					page.Mode().String(), output, len(body))
			}
			return nil
		},
	}
}

func writeOutput(output string, body []byte, stdout io.Writer) error {
	if output == "-" {
		if stdout == nil {
			stdout = os.Stdout
		}
		if _, err := stdout.Write(body); err != nil {
			return goerr.Wrap(err, "failed to write page to stdout")
		}
		return nil
	}

	if err := os.WriteFile(output, body, 0644); err != nil {
		return goerr.Wrap(err, "failed to write page", goerr.V("path", output))
	}
	return nil
}
