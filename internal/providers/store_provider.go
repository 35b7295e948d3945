package providers

import (
	"errors"
	"fragments/internal/structures"
	"strconv"
	"sync"
	"time"
	"unsafe"

	"github.com/coocood/freecache"
)

// StoreProviderInterface is the narrow key-value contract the game code
// consumes: get, set-with-expiration, set-if-absent and atomic increment.
// Export and Import exist for snapshot persistence across restarts.
type StoreProviderInterface interface {
	Get(key string) (string, bool, error)
	Set(key, value string, ttl time.Duration) error
	SetNX(key, value string, ttl time.Duration) (bool, error)
	IncrBy(key string, delta int64, ttl time.Duration) (int64, error)
	Export() ([]structures.StoreEntry, error)
	Import(entries []structures.StoreEntry) error
	Count() int64
}

type StoreProvider struct {
	cache *freecache.Cache
	// guards read-modify-write composites (SetNX, IncrBy); plain reads and
	// writes rely on freecache's own locking.
	mu sync.Mutex
}

func NewStoreProvider(conf *structures.Config, logger Logger) StoreProviderInterface {
	sizeBytes := conf.Store.Size * 1024 * 1024
	logger.Infof(TypeApp, "Store initialized: %dMB", conf.Store.Size)
	return &StoreProvider{cache: freecache.NewCache(sizeBytes)}
}

// unsafeStringToBytes converts string to []byte without allocation.
// Safe when the result is only read (not modified), which is the case
// for freecache — it copies keys internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(ttl / time.Second)
}

func (s *StoreProvider) Get(key string) (string, bool, error) {
	val, err := s.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(val), true, nil
}

func (s *StoreProvider) Set(key, value string, ttl time.Duration) error {
	return s.cache.Set(unsafeStringToBytes(key), []byte(value), ttlSeconds(ttl))
}

func (s *StoreProvider) SetNX(key, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.cache.Get(unsafeStringToBytes(key))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, freecache.ErrNotFound) {
		return false, err
	}
	if err := s.cache.Set(unsafeStringToBytes(key), []byte(value), ttlSeconds(ttl)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *StoreProvider) IncrBy(key string, delta int64, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	val, err := s.cache.Get(unsafeStringToBytes(key))
	if err == nil {
		current, err = strconv.ParseInt(string(val), 10, 64)
		if err != nil {
			return 0, err
		}
	} else if !errors.Is(err, freecache.ErrNotFound) {
		return 0, err
	}

	current += delta
	err = s.cache.Set(unsafeStringToBytes(key), []byte(strconv.FormatInt(current, 10)), ttlSeconds(ttl))
	if err != nil {
		return 0, err
	}
	return current, nil
}

func (s *StoreProvider) Export() ([]structures.StoreEntry, error) {
	var entries []structures.StoreEntry
	it := s.cache.NewIterator()
	for entry := it.Next(); entry != nil; entry = it.Next() {
		ttl, err := s.cache.TTL(entry.Key)
		if err != nil {
			// evicted between iteration and lookup
			continue
		}
		entries = append(entries, structures.StoreEntry{
			Key:   string(entry.Key),
			Value: string(entry.Value),
			TTL:   int(ttl),
		})
	}
	return entries, nil
}

func (s *StoreProvider) Import(entries []structures.StoreEntry) error {
	for _, entry := range entries {
		if entry.TTL <= 0 {
			continue
		}
		err := s.cache.Set([]byte(entry.Key), []byte(entry.Value), entry.TTL)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *StoreProvider) Count() int64 {
	return s.cache.EntryCount()
}
