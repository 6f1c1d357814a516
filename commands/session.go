package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"sailboat-scraper/config"
	"sailboat-scraper/document"
	"sailboat-scraper/fetch"
	"sailboat-scraper/observability"
	"sailboat-scraper/pagestore"
	"sailboat-scraper/scraper"
	"sailboat-scraper/scraper/boat24"
	"sailboat-scraper/scraper/nettivene"
	"sailboat-scraper/scraper/yachtmarket"
	"sailboat-scraper/scraper/yachtworld"
	"sailboat-scraper/services"
	"sailboat-scraper/storage"
	"sailboat-scraper/utils"
)

// session holds everything a command needs for one run. The page store is
// opened when the session starts and flushed by close.
type session struct {
	cfg     *config.Config
	logger  *utils.Logger
	store   *pagestore.Store
	docs    *document.Accessor
	spin    *spinner.Spinner
	closers []func() error
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg := config.Load()
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugFlag
	}
	if fetcherFlag != "" {
		cfg.Fetcher = fetcherFlag
	}
	if cacheFlag != "" {
		cfg.CacheBackend = cacheFlag
	}

	logger := utils.NewLogger()
	logger.SetDebug(cfg.Debug)
	s := &session{cfg: cfg, logger: logger}

	if cfg.MetricsPort != "" {
		observability.Start(cfg.MetricsPort, logger)
	}

	fetcher, err := s.newFetcher()
	if err != nil {
		return nil, err
	}
	backend, err := s.newBackend(cmd.Context())
	if err != nil {
		s.close()
		return nil, err
	}
	store, err := pagestore.Open(backend, fetcher, logger)
	if err != nil {
		s.close()
		return nil, err
	}
	s.store = store
	s.docs = document.NewAccessor(store, !cfg.Debug, logger)

	s.spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	return s, nil
}

func (s *session) newFetcher() (fetch.Fetcher, error) {
	switch s.cfg.Fetcher {
	case "http":
		return fetch.NewHTTPFetcher(s.cfg.UserAgent, s.cfg.RateLimitMs), nil
	case "browser":
		b := fetch.NewBrowserFetcher(s.cfg.ChromeBin, s.cfg.UserAgent, s.cfg.RateLimitMs, s.logger)
		s.closers = append(s.closers, func() error { b.Close(); return nil })
		return b, nil
	}
	return nil, fmt.Errorf("unknown fetcher %q (want http or browser)", s.cfg.Fetcher)
}

func (s *session) newBackend(ctx context.Context) (pagestore.Backend, error) {
	today := time.Now()
	switch s.cfg.CacheBackend {
	case "file":
		return pagestore.NewFileBackend(s.cfg.CacheDir, today), nil
	case "redis":
		b, err := pagestore.NewRedisBackend(s.cfg.RedisURL, today)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		s.closers = append(s.closers, b.Close)
		if err := s.retry().Do(ctx, "redis ping", func() error { return b.Ping(ctx) }); err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (want file or redis)", s.cfg.CacheBackend)
}

func (s *session) retry() *utils.RetryConfig {
	return &utils.RetryConfig{MaxAttempts: s.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: s.logger}
}

// aggregator wires the four listing sites, in their fixed order, to the
// CSV export and, when enabled, PostgreSQL.
func (s *session) aggregator(ctx context.Context) (*services.Aggregator, error) {
	csvWriter, err := storage.NewCSVWriter(s.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	sinks := []storage.TableWriter{csvWriter}

	if s.cfg.PostgresEnabled {
		pg, err := storage.NewPostgresWriter(ctx, s.cfg.DSN(), s.retry())
		if err != nil {
			s.logger.Error("Failed to connect to PostgreSQL, continuing with CSV only: %v", err)
		} else {
			s.closers = append(s.closers, pg.Close)
			sinks = append(sinks, pg)
		}
	}

	adapters := []scraper.Adapter{
		nettivene.New(s.docs, s.logger),
		yachtworld.New(s.cfg.MaxPrice, s.logger),
		boat24.New(s.cfg.MaxPrice, s.logger),
		yachtmarket.New(s.logger),
	}
	return services.NewAggregator(adapters, s.docs, s.logger, services.AggregatorOptions{
		Sinks:   sinks,
		Memoize: !s.cfg.Debug,
		OnPage:  s.progress,
	}), nil
}

func (s *session) progress(source, url string, page int) {
	s.spin.Suffix = fmt.Sprintf(" %s page %d", source, page)
	if !s.spin.Active() && !s.cfg.Debug {
		s.spin.Start()
	}
}

// close stops progress output, flushes the page store and releases
// connections in reverse order of opening.
func (s *session) close() {
	if s.spin != nil {
		s.spin.Stop()
	}
	if s.store != nil {
		if err := s.store.Flush(); err != nil {
			s.logger.Error("Failed to save page cache: %v", err)
		}
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warn("Close failed: %v", err)
		}
	}
}
