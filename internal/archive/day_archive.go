package archive

import (
	"fragments/internal/archive/interfaces"
	"fragments/internal/models"
	"fragments/internal/providers"
	"fragments/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const dayFileSuffix = ".day.zst"

// DayArchive keeps completed days on disk. The store can evict a day's
// fragment and boards at any time (memory pressure, TTL); archived copies
// keep them readable for the rest of the retention window. Files older
// than the window are pruned at sweep time.
type DayArchive struct {
	mu         sync.RWMutex
	dir        string
	retention  time.Duration
	index      map[string]struct{}
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewDayArchive(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *DayArchive {
	return &DayArchive{
		dir:        conf.Archive.Dir,
		retention:  time.Duration(conf.Game.RetentionDays) * 24 * time.Hour,
		index:      make(map[string]struct{}),
		compressor: compressor,
		logger:     logger,
	}
}

// Has checks the in-memory index only; no disk I/O on the hot path.
func (da *DayArchive) Has(date string) bool {
	da.mu.RLock()
	defer da.mu.RUnlock()
	_, ok := da.index[date]
	return ok
}

func (da *DayArchive) Load(date string) (*models.DayRecord, error) {
	if !da.Has(date) {
		return nil, nil
	}

	data, err := os.ReadFile(da.dayFilePath(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := da.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var record models.DayRecord
	if err := json.Unmarshal(decompressed, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (da *DayArchive) Save(date string, record *models.DayRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return err
	}
	compressed, err := da.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(da.dir, 0755); err != nil {
		return err
	}

	path := da.dayFilePath(date)
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, path); err != nil {
		return err
	}

	da.mu.Lock()
	da.index[date] = struct{}{}
	da.mu.Unlock()
	return nil
}

// RestoreIndex scans the archive directory and rebuilds the date index.
// Called once at startup.
func (da *DayArchive) RestoreIndex() error {
	da.mu.Lock()
	defer da.mu.Unlock()

	if err := os.MkdirAll(da.dir, 0755); err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(da.dir, "*"+dayFileSuffix))
	if err != nil {
		return err
	}

	for _, file := range files {
		da.index[da.extractDate(file)] = struct{}{}
	}
	return nil
}

// Prune deletes archived days whose archive date fell out of the
// retention window.
func (da *DayArchive) Prune(now time.Time) error {
	da.mu.Lock()
	defer da.mu.Unlock()

	cutoff := now.Add(-da.retention)
	for date := range da.index {
		day, err := time.Parse("2006-01-02", date)
		if err != nil || day.Before(cutoff) {
			if err := os.Remove(da.dayFilePath(date)); err != nil && !os.IsNotExist(err) {
				da.logger.Errorf(providers.TypeApp, "Failed to prune archived day %s: %s", date, err)
				continue
			}
			delete(da.index, date)
		}
	}
	return nil
}

func (da *DayArchive) Close() {
	da.compressor.Close()
}

func (da *DayArchive) dayFilePath(date string) string {
	return filepath.Join(da.dir, date+dayFileSuffix)
}

// extractDate turns "2024-05-01.day.zst" into "2024-05-01".
func (da *DayArchive) extractDate(path string) string {
	return strings.TrimSuffix(filepath.Base(path), dayFileSuffix)
}
