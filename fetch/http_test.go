package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSite() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>hello</html>")
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	mux.HandleFunc("/prices", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		io.WriteString(w, `{"Data":[]}`)
	})
	return httptest.NewServer(mux)
}

func TestHTTPFetcherGet(t *testing.T) {
	srv := newSite()
	defer srv.Close()

	f := NewHTTPFetcher("test-agent", 0)
	body, err := f.Get(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	require.Equal(t, "<html>hello</html>", body)
}

func TestHTTPFetcherNotFound(t *testing.T) {
	srv := newSite()
	defer srv.Close()

	f := NewHTTPFetcher("", 0)
	body, err := f.Get(context.Background(), srv.URL+"/missing")
	require.Empty(t, body)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.StatusCode)
	require.NotNil(t, se.Header)
}

func TestHTTPFetcherDoesNotFollowRedirects(t *testing.T) {
	srv := newSite()
	defer srv.Close()

	f := NewHTTPFetcher("", 0)
	body, err := f.Get(context.Background(), srv.URL+"/moved")
	require.Empty(t, body)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusFound, se.StatusCode)
	require.Equal(t, "/ok", se.Header.Get("Location"))
}

func TestHTTPFetcherPost(t *testing.T) {
	srv := newSite()
	defer srv.Close()

	f := NewHTTPFetcher("", 0)
	body, err := f.Post(context.Background(), srv.URL+"/prices", "", "")
	require.NoError(t, err)
	require.Equal(t, `{"Data":[]}`, body)
}
