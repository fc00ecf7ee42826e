package model

import "github.com/m-mizutani/goerr/v2"

var ErrInvalidPublishTarget = goerr.New("invalid publish target")

// PublishTarget is the object location a rendered page is uploaded to
type PublishTarget struct {
	Bucket       string
	Object       string
	CacheControl string
}

// Validate checks that bucket and object are set
func (x *PublishTarget) Validate() error {
	if x.Bucket == "" {
		return goerr.Wrap(ErrInvalidPublishTarget, "bucket is required")
	}
	if x.Object == "" {
		return goerr.Wrap(ErrInvalidPublishTarget, "object is required", goerr.V("bucket", x.Bucket))
	}
	return nil
}

// ObjectMeta describes the uploaded content
type ObjectMeta struct {
	ContentType  string
	CacheControl string
}

// PublishResult represents an uploaded page
type PublishResult struct {
	Bucket      string // Destination bucket
	Object      string // Destination object name
	Size        int64  // Uploaded bytes
	Generation  int64  // Object generation assigned by the storage
	ContentType string
}
