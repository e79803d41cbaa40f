// Package rates provides the sources the pricing engine reads its provider
// catalog from: the built-in defaults, an HCL or JSON rate file, and
// caching and metrics wrappers around either.
package rates

import (
	"context"
	"sync"
	"time"

	"cloudguide/core/catalog"
	"cloudguide/internal/metrics"
)

// Source loads a provider catalog
type Source interface {
	// Name identifies the source in logs and metrics
	Name() string

	// Load returns a validated catalog
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// BuiltinSource serves the compiled-in provider defaults
type BuiltinSource struct{}

// NewBuiltinSource creates a builtin source
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{}
}

// Name returns the source name
func (s *BuiltinSource) Name() string {
	return "builtin"
}

// Load returns a fresh default catalog
func (s *BuiltinSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.Default(), nil
}

// New picks the file source when a path is configured, otherwise the builtin one
func New(path string) Source {
	if path == "" {
		return NewBuiltinSource()
	}
	return NewFileSource(path)
}

// CachingSource wraps a source and reuses its catalog until the TTL expires.
// A zero TTL caches forever.
type CachingSource struct {
	inner     Source
	ttl       time.Duration
	now       func() time.Time
	cached    *catalog.Catalog
	expiresAt time.Time
	mu        sync.RWMutex
}

// NewCachingSource creates a caching wrapper
func NewCachingSource(inner Source, ttl time.Duration) *CachingSource {
	return &CachingSource{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *CachingSource) Name() string {
	return s.inner.Name()
}

func (s *CachingSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	s.mu.RLock()
	if s.cached != nil && (s.ttl == 0 || s.now().Before(s.expiresAt)) {
		c := s.cached
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	c, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = c
	s.expiresAt = s.now().Add(s.ttl)
	s.mu.Unlock()

	return c, nil
}

// Invalidate drops the cached catalog so the next Load hits the inner source
func (s *CachingSource) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// MetricsSource wraps a source and records every load attempt
type MetricsSource struct {
	inner   Source
	metrics *metrics.Metrics
}

// NewMetricsSource creates a metrics wrapper
func NewMetricsSource(inner Source, m *metrics.Metrics) *MetricsSource {
	return &MetricsSource{inner: inner, metrics: m}
}

func (s *MetricsSource) Name() string {
	return s.inner.Name()
}

func (s *MetricsSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	c, err := s.inner.Load(ctx)
	s.metrics.RecordRateLoad(s.inner.Name(), err)
	return c, err
}
