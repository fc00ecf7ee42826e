package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/docfront/pkg/domain/interfaces"
	"github.com/m-mizutani/docfront/pkg/domain/model"
	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

// HTMLContentType is the content type of rendered pages
const HTMLContentType = "text/html; charset=utf-8"

type publishUseCase struct {
	page    interfaces.PageUseCase
	storage interfaces.ObjectStorage
}

// NewPublish creates a new instance of PublishUseCase
func NewPublish(page interfaces.PageUseCase, storage interfaces.ObjectStorage) interfaces.PublishUseCase {
	return &publishUseCase{
		page:    page,
		storage: storage,
	}
}

// Publish renders the landing page and uploads it to target
func (uc *publishUseCase) Publish(ctx context.Context, page *model.PageContext, target *model.PublishTarget) (*model.PublishResult, error) {
	logger := logging.From(ctx)

	if err := target.Validate(); err != nil {
		return nil, err
	}

	body, err := uc.page.Render(ctx, page)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render landing page")
	}

	logger.Info("Uploading landing page",
		"bucket", target.Bucket,
		"object", target.Object,
		"size_bytes", len(body),
		"mode", page.Mode().String(),
	)

	result, err := uc.storage.PutObject(ctx, target.Bucket, target.Object, body, &model.ObjectMeta{
		ContentType:  HTMLContentType,
		CacheControl: target.CacheControl,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload landing page",
			goerr.V("bucket", target.Bucket),
			goerr.V("object", target.Object),
		)
	}

	logger.Info("Uploaded landing page",
		"bucket", result.Bucket,
		"object", result.Object,
		"generation", result.Generation,
	)

	return result, nil
}
