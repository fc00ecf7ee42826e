package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/docfront/pkg/domain/model"
)

// GCS holds Google Cloud Storage configuration for publishing
type GCS struct {
	Bucket       string
	Object       string
	Endpoint     string
	CacheControl string
}

// Flags returns CLI flags for GCS configuration
func (c *GCS) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Destination bucket of the landing page",
			Required:    true,
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("DOCFRONT_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-object",
			Usage:       "Destination object name",
			Value:       "index.html",
			Destination: &c.Object,
			Sources:     cli.EnvVars("DOCFRONT_GCS_OBJECT"),
		},
		&cli.StringFlag{
			Name:        "gcs-endpoint",
			Usage:       "Custom storage endpoint, e.g. an emulator",
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("DOCFRONT_GCS_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "gcs-cache-control",
			Usage:       "Cache-Control metadata of the uploaded object",
			Value:       "public, max-age=300",
			Destination: &c.CacheControl,
			Sources:     cli.EnvVars("DOCFRONT_GCS_CACHE_CONTROL"),
		},
	}
}

// Target returns the publish target
func (c *GCS) Target() *model.PublishTarget {
	return &model.PublishTarget{
		Bucket:       c.Bucket,
		Object:       c.Object,
		CacheControl: c.CacheControl,
	}
}
