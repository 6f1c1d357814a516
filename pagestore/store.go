// Package pagestore is the persisted URL -> raw page cache. One generation
// of the cache covers one calendar day.
package pagestore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sailboat-scraper/fetch"
	"sailboat-scraper/observability"
	"sailboat-scraper/utils"
)

// Backend persists a cache generation.
type Backend interface {
	// Load returns the stored pages. A generation that does not exist yet
	// yields an empty map and no error.
	Load() (map[string]string, error)
	Save(pages map[string]string) error
}

// Store maps URLs to raw page content, fetching on a miss. Failed fetches
// are cached as empty content so they are not retried within a generation.
type Store struct {
	mu      sync.Mutex
	pages   map[string]string
	fetcher fetch.Fetcher
	backend Backend
	logger  *utils.Logger
	added   int
}

// Open loads the current generation from backend.
func Open(backend Backend, fetcher fetch.Fetcher, logger *utils.Logger) (*Store, error) {
	pages, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("pagestore: load: %w", err)
	}
	if pages == nil {
		pages = make(map[string]string)
	}
	logger.Info("[pagestore] Loaded %d cached pages", len(pages))
	return &Store{pages: pages, fetcher: fetcher, backend: backend, logger: logger}, nil
}

// NewMemory returns a store that is never persisted.
func NewMemory(fetcher fetch.Fetcher, logger *utils.Logger) *Store {
	return &Store{pages: make(map[string]string), fetcher: fetcher, logger: logger}
}

// Get returns the content of url, fetching it on first use. It never fails:
// transport errors and non-success statuses yield "" and are cached as such.
// A fetch cut short by ctx also yields "" but leaves url uncached.
func (s *Store) Get(ctx context.Context, url string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page, ok := s.pages[url]; ok {
		observability.PageRequests.WithLabelValues("hit").Inc()
		return page
	}

	page, err := s.fetcher.Get(ctx, url)
	if err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		// Interrupted fetches are not cached.
		observability.PageRequests.WithLabelValues("cancelled").Inc()
		s.logger.Debug("[pagestore] GET %s abandoned: %v", url, err)
		return ""
	}
	if err != nil {
		observability.PageRequests.WithLabelValues("error").Inc()
		var se *fetch.StatusError
		if errors.As(err, &se) {
			s.logger.Warn("[pagestore] GOT %d for GET %s", se.StatusCode, url)
			s.logger.Warn("[pagestore] %v", se.Header)
		} else {
			s.logger.Warn("[pagestore] GET %s failed: %v", url, err)
		}
		page = ""
	} else {
		observability.PageRequests.WithLabelValues("miss").Inc()
	}

	s.pages[url] = page
	s.added++
	return page
}

// Post sends a request that is never cached.
func (s *Store) Post(ctx context.Context, url, contentType, body string) string {
	page, err := s.fetcher.Post(ctx, url, contentType, body)
	if err != nil {
		s.logger.Warn("[pagestore] POST %s failed: %v", url, err)
		return ""
	}
	return page
}

// Len returns the number of cached pages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Flush writes the generation to the backend. It must be called explicitly
// at the end of a session; a store that is never flushed loses that
// session's new pages.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend == nil {
		return nil
	}
	if err := s.backend.Save(s.pages); err != nil {
		return fmt.Errorf("pagestore: save: %w", err)
	}
	s.logger.Info("[pagestore] Saved %d pages (%d new this session)", len(s.pages), s.added)
	s.added = 0
	return nil
}
