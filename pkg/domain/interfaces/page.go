package interfaces

import (
	"context"

	"github.com/m-mizutani/docfront/pkg/domain/model"
)

// PathResolver maps a logical documentation path to a deployable URL
type PathResolver interface {
	// Resolve returns the URL of the document identified by path
	Resolve(path string) (string, error)
}

// FragmentInjector produces the fragment appended at the end of every page body
type FragmentInjector interface {
	// Inject returns the HTML fragment. It must not have side effects.
	Inject() string
}

// PageUseCase renders the documentation landing page
type PageUseCase interface {
	// Render produces the complete HTML document for the given context
	Render(ctx context.Context, page *model.PageContext) ([]byte, error)
}

// PublishUseCase renders the landing page and uploads it to an object storage
type PublishUseCase interface {
	Publish(ctx context.Context, page *model.PageContext, target *model.PublishTarget) (*model.PublishResult, error)
}

// ObjectStorage stores rendered pages
type ObjectStorage interface {
	// PutObject uploads data to bucket/object
	PutObject(ctx context.Context, bucket, object string, data []byte, meta *model.ObjectMeta) (*model.PublishResult, error)
}
