package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"sailboat-scraper/utils"
)

// HTTPFetcher fetches pages over plain HTTP. Redirects are never followed:
// a 3xx is reported as a *StatusError like any other non-200 status.
type HTTPFetcher struct {
	client   *resty.Client
	throttle *utils.Throttle
}

// NewHTTPFetcher creates a fetcher sending userAgent and spacing requests
// by at least rateLimitMs milliseconds.
func NewHTTPFetcher(userAgent string, rateLimitMs int) *HTTPFetcher {
	client := resty.New().
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &HTTPFetcher{client: client, throttle: utils.NewThrottle(rateLimitMs)}
}

func (f *HTTPFetcher) Get(ctx context.Context, url string) (string, error) {
	f.throttle.Wait()
	res, err := f.client.R().SetContext(ctx).Get(url)
	return f.body(url, res, err)
}

func (f *HTTPFetcher) Post(ctx context.Context, url, contentType, body string) (string, error) {
	f.throttle.Wait()
	req := f.client.R().SetContext(ctx).SetBody(body)
	if contentType != "" {
		req.SetHeader("Content-Type", contentType)
	}
	res, err := req.Post(url)
	return f.body(url, res, err)
}

func (f *HTTPFetcher) body(url string, res *resty.Response, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("fetch: %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", &StatusError{URL: url, StatusCode: res.StatusCode(), Header: res.Header()}
	}
	return res.String(), nil
}
