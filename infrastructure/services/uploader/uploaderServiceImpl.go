package uploader_service

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/bazario/fulfillment-service/infrastructure/future"
)

var ErrorURLRejected = errors.New("evidence url rejected")

type iUploaderServiceImpl struct {
	allowedHosts map[string]bool
}

func NewUploaderService(allowedHosts []string) IUploaderService {
	hosts := make(map[string]bool, len(allowedHosts))
	for _, host := range allowedHosts {
		hosts[strings.ToLower(host)] = true
	}
	return &iUploaderServiceImpl{allowedHosts: hosts}
}

func (uploader iUploaderServiceImpl) ValidateURLs(ctx context.Context, urls []string) future.IFuture {
	accepted := make([]string, 0, len(urls))
	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme != "https" || !uploader.allowedHosts[strings.ToLower(parsed.Host)] {
			return future.Factory().SetCapacity(1).
				SetError(future.ValidationError, "Evidence URL Invalid",
					errors.Wrapf(ErrorURLRejected, "url %s", raw)).
				BuildAndSend()
		}
		accepted = append(accepted, raw)
	}
	return future.Factory().SetCapacity(1).SetData(accepted).BuildAndSend()
}
