package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"

	"github.com/m-mizutani/docfront/pkg/domain/interfaces"
	"github.com/m-mizutani/docfront/pkg/domain/model"
)

// Client stores objects in Google Cloud Storage. Call Close when done.
type Client struct {
	storage *storage.Client
}

var _ interfaces.ObjectStorage = (*Client)(nil)

type config struct {
	endpoint string
}

// Option is a functional option for the GCS client
type Option func(*config)

// WithEndpoint points the client to another endpoint such as a storage emulator.
// Authentication is disabled for custom endpoints.
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.endpoint = endpoint
	}
}

// NewClient creates a GCS client with application default credentials
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var clientOpts []option.ClientOption
	if cfg.endpoint != "" {
		clientOpts = append(clientOpts,
			option.WithEndpoint(cfg.endpoint),
			option.WithoutAuthentication(),
		)
	}

	sc, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client", goerr.V("endpoint", cfg.endpoint))
	}

	return &Client{storage: sc}, nil
}

// PutObject uploads data to gs://bucket/object
func (c *Client) PutObject(ctx context.Context, bucket, object string, data []byte, meta *model.ObjectMeta) (*model.PublishResult, error) {
	w := c.storage.Bucket(bucket).Object(object).NewWriter(ctx)
	if meta != nil {
		w.ContentType = meta.ContentType
		w.CacheControl = meta.CacheControl
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", bucket),
			goerr.V("object", object),
		)
	}

	if err := w.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", bucket),
			goerr.V("object", object),
		)
	}

	attrs := w.Attrs()
	return &model.PublishResult{
		Bucket:      attrs.Bucket,
		Object:      attrs.Name,
		Size:        attrs.Size,
		Generation:  attrs.Generation,
		ContentType: attrs.ContentType,
	}, nil
}

// Close releases the connections held by the underlying storage client
func (c *Client) Close() error {
	if err := c.storage.Close(); err != nil {
		return goerr.Wrap(err, "failed to close GCS client")
	}
	return nil
}
