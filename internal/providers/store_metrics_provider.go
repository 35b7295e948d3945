package providers

import (
	"fragments/internal/structures"
	"time"
)

// MetricsStoreProvider wraps a StoreProviderInterface and counts
// hits/misses on every Get call.
type MetricsStoreProvider struct {
	inner   StoreProviderInterface
	metrics MetricsProviderInterface
}

func NewInstrumentedStoreProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) StoreProviderInterface {
	inner := NewStoreProvider(conf, logger)
	if !conf.Metrics.Enabled {
		return inner
	}
	return &MetricsStoreProvider{inner: inner, metrics: metrics}
}

func (s *MetricsStoreProvider) Get(key string) (string, bool, error) {
	val, ok, err := s.inner.Get(key)
	if ok {
		s.metrics.IncStoreHits()
	} else {
		s.metrics.IncStoreMisses()
	}
	return val, ok, err
}

func (s *MetricsStoreProvider) Set(key, value string, ttl time.Duration) error {
	return s.inner.Set(key, value, ttl)
}

func (s *MetricsStoreProvider) SetNX(key, value string, ttl time.Duration) (bool, error) {
	return s.inner.SetNX(key, value, ttl)
}

func (s *MetricsStoreProvider) IncrBy(key string, delta int64, ttl time.Duration) (int64, error) {
	return s.inner.IncrBy(key, delta, ttl)
}

func (s *MetricsStoreProvider) Export() ([]structures.StoreEntry, error) {
	return s.inner.Export()
}

func (s *MetricsStoreProvider) Import(entries []structures.StoreEntry) error {
	return s.inner.Import(entries)
}

func (s *MetricsStoreProvider) Count() int64 {
	return s.inner.Count()
}
