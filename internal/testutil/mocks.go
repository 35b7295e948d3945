package testutil

import (
	"fragments/internal/providers"
	"fragments/internal/structures"
	"strconv"
	"sync"
	"time"
)

type MockLogger struct{}

func (m *MockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *MockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *MockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *MockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *MockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *MockLogger) Close()                                                  {}

// MockCompressor passes data through unchanged.
type MockCompressor struct{}

func (m *MockCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (m *MockCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
func (m *MockCompressor) Close()                                {}

type MockMetrics struct {
	GamesStarted   int
	ValidWords     int
	InvalidWords   int
	BoardWrites    int
	StoreHits      int
	StoreMisses    int
	SnapshotsTaken int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncGamesStarted()                                 { m.GamesStarted++ }
func (m *MockMetrics) IncWordsSubmitted(valid bool) {
	if valid {
		m.ValidWords++
	} else {
		m.InvalidWords++
	}
}
func (m *MockMetrics) IncBoardWrites()                         { m.BoardWrites++ }
func (m *MockMetrics) IncStoreHits()                           { m.StoreHits++ }
func (m *MockMetrics) IncStoreMisses()                         { m.StoreMisses++ }
func (m *MockMetrics) ObserveSnapshotDuration(_ time.Duration) { m.SnapshotsTaken++ }

// MockStore is a map-backed store with TTL bookkeeping and optional
// failure injection.
type MockStore struct {
	mu       sync.Mutex
	Data     map[string]string
	TTLs     map[string]time.Duration
	FailGet  error
	FailSet  error
	SetCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{
		Data: make(map[string]string),
		TTLs: make(map[string]time.Duration),
	}
}

func (m *MockStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet != nil {
		return "", false, m.FailGet
	}
	val, ok := m.Data[key]
	return val, ok, nil
}

func (m *MockStore) Set(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	m.SetCalls++
	m.Data[key] = value
	m.TTLs[key] = ttl
	return nil
}

func (m *MockStore) SetNX(key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return false, m.FailSet
	}
	if _, ok := m.Data[key]; ok {
		return false, nil
	}
	m.Data[key] = value
	m.TTLs[key] = ttl
	return true, nil
}

func (m *MockStore) IncrBy(key string, delta int64, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return 0, m.FailSet
	}
	var current int64
	if val, ok := m.Data[key]; ok {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, err
		}
		current = parsed
	}
	current += delta
	m.Data[key] = strconv.FormatInt(current, 10)
	m.TTLs[key] = ttl
	return current, nil
}

func (m *MockStore) Export() ([]structures.StoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]structures.StoreEntry, 0, len(m.Data))
	for key, value := range m.Data {
		entries = append(entries, structures.StoreEntry{
			Key:   key,
			Value: value,
			TTL:   int(m.TTLs[key] / time.Second),
		})
	}
	return entries, nil
}

func (m *MockStore) Import(entries []structures.StoreEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range entries {
		if entry.TTL <= 0 {
			continue
		}
		m.Data[entry.Key] = entry.Value
		m.TTLs[entry.Key] = time.Duration(entry.TTL) * time.Second
	}
	return nil
}

func (m *MockStore) Count() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Data))
}
