// Package fetch retrieves raw pages from brokerage sites.
package fetch

import (
	"context"
	"fmt"
	"net/http"
)

// Fetcher retrieves the body of a URL. Implementations return a
// *StatusError for any response other than 200 OK.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
	Post(ctx context.Context, url, contentType, body string) (string, error)
}

// StatusError reports a non-success response.
type StatusError struct {
	URL        string
	StatusCode int
	Header     http.Header
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GOT %d for %s", e.StatusCode, e.URL)
}
