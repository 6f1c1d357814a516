package pagestore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sailboat-scraper/fetch"
	"sailboat-scraper/utils"
)

type fakeFetcher struct {
	pages map[string]string
	calls map[string]int
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{pages: pages, calls: map[string]int{}}
}

func (f *fakeFetcher) Get(ctx context.Context, url string) (string, error) {
	f.calls[url]++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	page, ok := f.pages[url]
	if !ok {
		return "", &fetch.StatusError{URL: url, StatusCode: http.StatusNotFound, Header: http.Header{"Server": {"test"}}}
	}
	return page, nil
}

func (f *fakeFetcher) Post(context.Context, string, string, string) (string, error) {
	return "", errors.New("unreachable")
}

func quietLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard) }

func TestStoreCachesHits(t *testing.T) {
	f := newFakeFetcher(map[string]string{"https://a.example/1": "<p>one</p>"})
	s := NewMemory(f, quietLogger())

	require.Equal(t, "<p>one</p>", s.Get(context.Background(), "https://a.example/1"))
	require.Equal(t, "<p>one</p>", s.Get(context.Background(), "https://a.example/1"))
	require.Equal(t, 1, f.calls["https://a.example/1"])
	require.Equal(t, 1, s.Len())
}

func TestStoreNotFoundIsCachedEmpty(t *testing.T) {
	f := newFakeFetcher(nil)
	s := NewMemory(f, quietLogger())

	require.Equal(t, "", s.Get(context.Background(), "X"))
	require.Equal(t, "", s.Get(context.Background(), "X"))
	require.Equal(t, 1, f.calls["X"], "the empty result must be served from cache")
}

func TestStorePostFailureIsEmpty(t *testing.T) {
	s := NewMemory(newFakeFetcher(nil), quietLogger())
	require.Equal(t, "", s.Post(context.Background(), "https://a.example/post", "", ""))
}

func TestFileBackendMissingFileStartsEmpty(t *testing.T) {
	b := NewFileBackend(t.TempDir(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	pages, err := b.Load()
	require.NoError(t, err)
	require.Empty(t, pages)
}

func TestFileBackendPath(t *testing.T) {
	b := NewFileBackend("/tmp/cache", time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC))
	require.Equal(t, filepath.Join("/tmp/cache", "page_cache-2024-05-01.gob"), b.Path())
}

func TestStoreFlushAndReopen(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	f := newFakeFetcher(map[string]string{"https://a.example/1": "one"})

	s, err := Open(NewFileBackend(dir, day), f, quietLogger())
	require.NoError(t, err)
	s.Get(context.Background(), "https://a.example/1")
	s.Get(context.Background(), "https://a.example/gone")
	require.NoError(t, s.Flush())

	f2 := newFakeFetcher(nil)
	reopened, err := Open(NewFileBackend(dir, day), f2, quietLogger())
	require.NoError(t, err)
	require.Equal(t, 2, reopened.Len())
	require.Equal(t, "one", reopened.Get(context.Background(), "https://a.example/1"))
	require.Equal(t, "", reopened.Get(context.Background(), "https://a.example/gone"))
	require.Empty(t, f2.calls)
}

func TestStoreCancelledFetchIsNotCached(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	f := newFakeFetcher(map[string]string{"https://a.example/seed": "listings"})

	s, err := Open(NewFileBackend(dir, day), f, quietLogger())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, "", s.Get(ctx, "https://a.example/seed"))
	require.Equal(t, 0, s.Len())
	require.NoError(t, s.Flush())

	reopened, err := Open(NewFileBackend(dir, day), f, quietLogger())
	require.NoError(t, err)
	require.Equal(t, "listings", reopened.Get(context.Background(), "https://a.example/seed"))
	require.Equal(t, 2, f.calls["https://a.example/seed"])
}

func TestStoreUnflushedPagesAreLost(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	s, err := Open(NewFileBackend(dir, day), newFakeFetcher(map[string]string{"u": "x"}), quietLogger())
	require.NoError(t, err)
	s.Get(context.Background(), "u")

	reopened, err := Open(NewFileBackend(dir, day), newFakeFetcher(nil), quietLogger())
	require.NoError(t, err)
	require.Equal(t, 0, reopened.Len())
}

func TestGenerationKey(t *testing.T) {
	require.Equal(t, "page_cache:2024-12-31", GenerationKey(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
}
