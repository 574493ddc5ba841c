package uploader_service

import (
	"context"

	"github.com/bazario/fulfillment-service/infrastructure/future"
)

// IUploaderService validates evidence image references attached to return
// requests. Upload mechanics live in the media service; this side only
// checks that a submitted URL belongs to it.
type IUploaderService interface {
	// ValidateURLs returns the accepted URLs through the future.
	ValidateURLs(ctx context.Context, urls []string) future.IFuture
}
