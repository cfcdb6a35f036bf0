// Package docs loads rustdoc pages and turns them into parsed pages, going
// through the on-disk cache when it is enabled.
package docs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jcdickinson/ferrisdoc/internal/cache"
	"github.com/jcdickinson/ferrisdoc/internal/config"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
	"github.com/jcdickinson/ferrisdoc/internal/source"
)

// Service resolves a path or URL to a parsed page.
type Service struct {
	loader      *source.Loader
	store       *cache.Store
	concurrency int
}

// NewService builds a service from cfg. store may be nil, which disables
// caching.
func NewService(cfg *config.Config, store *cache.Store) *Service {
	if !cfg.Cache.Enabled {
		store = nil
	}
	return &Service{
		loader:      source.New(cfg.Fetch.Timeout()),
		store:       store,
		concurrency: cfg.Parse.Concurrency,
	}
}

// GetOptions tunes a single Get.
type GetOptions struct {
	// NoCache skips the cache lookup. The fresh result is still stored.
	NoCache bool
}

// Get loads and parses the page at location. Per-record diagnostics are
// logged and kept on the page.
func (s *Service) Get(ctx context.Context, location string, opts GetOptions) (*rustdoc.Page, error) {
	data, err := s.loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	if !source.IsRustdoc(data) {
		slog.Warn("Document does not declare rustdoc as its generator", "location", location)
	}

	key := cache.Key(data)
	if s.store != nil && !opts.NoCache {
		page, err := s.store.Load(key)
		if err == nil {
			slog.Debug("Cache hit", "location", location, "key", key)
			return page, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("Ignoring unreadable cache entry", "key", key, "error", err)
		}
	}

	page, err := rustdoc.Parse(string(data), rustdoc.WithConcurrency(s.concurrency))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", location, err)
	}
	for _, d := range page.Diagnostics {
		slog.Warn("Skipped record", "location", location, "section", d.Section, "record", d.Record, "kind", d.Kind, "error", d.Message)
	}

	if s.store != nil {
		if err := s.store.Save(key, page); err != nil {
			slog.Warn("Failed to cache page", "location", location, "error", err)
		}
	}
	return page, nil
}
