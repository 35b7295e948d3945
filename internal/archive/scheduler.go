package archive

import (
	"fragments/internal/archive/interfaces"
	"fragments/internal/models"
	"fragments/internal/providers"
	"fragments/internal/services"
	"fragments/internal/structures"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/roylee0704/gron"
)

// sweepInterval is how often completed days are archived and expired
// archives pruned.
const sweepInterval = time.Hour

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	store       providers.StoreProviderInterface
	window      services.DateWindowInterface
	fileManager *FileManager
	dayArchive  *DayArchive
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	store providers.StoreProviderInterface,
	window services.DateWindowInterface,
	fileManager *FileManager,
	dayArchive *DayArchive,
	metrics providers.MetricsProviderInterface,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		store:       store,
		window:      window,
		fileManager: fileManager,
		dayArchive:  dayArchive,
		metrics:     metrics,
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting store: %s", err)
			return
		}
		s.metrics.ObserveSnapshotDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted store to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(sweepInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.sweepDays()
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath); err != nil {
		return err
	}
	return s.dayArchive.RestoreIndex()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting store to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting store: %s", err)
		return err
	}
	return nil
}

// sweepDays archives every completed day in the retention window that is
// not archived yet, then prunes archives that fell out of the window.
func (s *Scheduler) sweepDays() {
	dates := s.window.RecentDateKeys(s.config.Game.RetentionDays)
	for i, date := range dates {
		if i == 0 {
			// today is still in play
			continue
		}
		if s.dayArchive.Has(date) {
			continue
		}

		record := s.collectDay(date)
		if record == nil {
			continue
		}
		if err := s.dayArchive.Save(date, record); err != nil {
			s.logger.Errorf(providers.TypeApp, "Failed to archive day %s: %s", date, err)
			continue
		}
		s.logger.Infof(providers.TypeApp, "Archived day %s", date)
	}

	if err := s.dayArchive.Prune(time.Now()); err != nil {
		s.logger.Errorf(providers.TypeApp, "Archive prune failed: %s", err)
	}
}

// collectDay reads a day's fragment and boards straight from the store.
// Returns nil when the store has nothing left for the date.
func (s *Scheduler) collectDay(date string) *models.DayRecord {
	fragment, found, err := s.store.Get(models.FragmentKey(date))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Day sweep read failed for %s: %s", date, err)
		return nil
	}

	scoreBoard := s.readRawBoard(models.ScoreBoardKey(date))
	wordBoard := s.readRawBoard(models.WordBoardKey(date))
	if !found && scoreBoard == nil && wordBoard == nil {
		return nil
	}

	return &models.DayRecord{
		Fragment:   fragment,
		ScoreBoard: scoreBoard,
		WordBoard:  wordBoard,
		ArchivedAt: time.Now(),
	}
}

func (s *Scheduler) readRawBoard(key string) []models.LeaderboardEntry {
	data, found, err := s.store.Get(key)
	if err != nil || !found {
		return nil
	}
	var board []models.LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &board); err != nil {
		s.logger.Warnf(providers.TypeApp, "Malformed board %s skipped during sweep: %s", key, err)
		return nil
	}
	return board
}
