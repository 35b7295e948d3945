package archive

import (
	"fragments/internal/archive/interfaces"
	"fragments/internal/providers"
	"fragments/internal/structures"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

// snapshot is the on-disk form of the whole store: every live key with
// its remaining TTL. The store is in-process, so without this a restart
// would drop the full retention window of fragments and boards.
type snapshot struct {
	Entries []structures.StoreEntry `json:"entries"`
	SavedAt time.Time               `json:"saved_at"`
}

type FileManager struct {
	store      providers.StoreProviderInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store providers.StoreProviderInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	entries, err := f.store.Export()
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(snapshot{Entries: entries, SavedAt: time.Now()})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(decompressedData, &snap); err != nil {
		f.logger.Warnf(providers.TypeApp, "Unreadable store snapshot, starting empty: %s", err)
		return nil
	}

	// TTLs in the snapshot were remaining-at-save; age them by the
	// downtime so records still expire at their original wall time.
	downtime := int(time.Since(snap.SavedAt) / time.Second)
	if downtime < 0 {
		downtime = 0
	}
	for i := range snap.Entries {
		snap.Entries[i].TTL -= downtime
	}

	return f.store.Import(snap.Entries)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
