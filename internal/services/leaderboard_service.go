package services

import (
	"fmt"
	"fragments/internal/models"
	"fragments/internal/providers"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// DayArchiveInterface is the read side of the day archive: completed days
// whose store records were evicted can still be served from disk.
type DayArchiveInterface interface {
	Has(date string) bool
	Load(date string) (*models.DayRecord, error)
}

type LeaderboardServiceInterface interface {
	RecordResult(date, username string, score int, bestWord string) error
	DailyBoards(date string) (*models.DailyBoards, error)
	AvailableDates() ([]string, error)
	GamesPlayed(date string) (int64, error)
}

type LeaderboardService struct {
	store     providers.StoreProviderInterface
	fragments FragmentServiceInterface
	window    DateWindowInterface
	archive   DayArchiveInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	// serializes the read-modify-write over both boards per date
	locks *keyedMutex
}

func NewLeaderboardService(
	store providers.StoreProviderInterface,
	fragments FragmentServiceInterface,
	window DateWindowInterface,
	archive DayArchiveInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) LeaderboardServiceInterface {
	return &LeaderboardService{
		store:     store,
		fragments: fragments,
		window:    window,
		archive:   archive,
		logger:    logger,
		metrics:   metrics,
		locks:     newKeyedMutex(),
	}
}

func (ls *LeaderboardService) RecordResult(date, username string, score int, bestWord string) error {
	unlock := ls.locks.Lock(date)
	defer unlock()

	scoreBoard, err := ls.readBoard(models.ScoreBoardKey(date))
	if err != nil {
		return err
	}
	wordBoard, err := ls.readBoard(models.WordBoardKey(date))
	if err != nil {
		return err
	}

	scoreBoard = models.UpsertScore(scoreBoard, username, score, bestWord)
	wordBoard = models.UpsertWord(wordBoard, username, score, bestWord)

	retention := ls.window.Retention()
	if err := ls.writeBoard(models.ScoreBoardKey(date), scoreBoard, retention); err != nil {
		return err
	}
	if err := ls.writeBoard(models.WordBoardKey(date), wordBoard, retention); err != nil {
		return err
	}

	ls.metrics.IncBoardWrites()
	return nil
}

func (ls *LeaderboardService) DailyBoards(date string) (*models.DailyBoards, error) {
	scoreBoard := ls.readBoardLenient(models.ScoreBoardKey(date))
	wordBoard := ls.readBoardLenient(models.WordBoardKey(date))

	fragment, err := ls.fragments.FragmentForDate(date)
	if err != nil {
		ls.logger.Warnf(providers.TypeApp, "Fragment read for boards degraded: %s", err)
		fragment = ""
	}

	today := ls.window.CurrentDateKey()

	// for a completed day the store may already have evicted the
	// records; fall back to the archived copy
	if date != today && len(scoreBoard) == 0 && len(wordBoard) == 0 && ls.archive != nil {
		if record, err := ls.archive.Load(date); err != nil {
			ls.logger.Warnf(providers.TypeApp, "Archive read for %s failed: %s", date, err)
		} else if record != nil {
			scoreBoard = record.ScoreBoard
			wordBoard = record.WordBoard
			if fragment == "" {
				fragment = record.Fragment
			}
		}
	}

	showWords := date != today || ls.window.IsDayComplete()
	if !showWords {
		scoreBoard = models.MaskWords(scoreBoard, false)
		wordBoard = models.MaskWords(wordBoard, true)
	}

	return &models.DailyBoards{
		ScoreBoard: scoreBoard,
		WordBoard:  wordBoard,
		ShowWords:  showWords,
		Fragment:   fragment,
		Date:       date,
	}, nil
}

func (ls *LeaderboardService) AvailableDates() ([]string, error) {
	dates := make([]string, 0)
	days := int(ls.window.Retention() / (24 * time.Hour))
	for _, date := range ls.window.RecentDateKeys(days) {
		fragment, err := ls.fragments.FragmentForDate(date)
		if err != nil {
			ls.logger.Warnf(providers.TypeApp, "Date scan degraded for %s: %s", date, err)
			continue
		}
		if fragment != "" || (ls.archive != nil && ls.archive.Has(date)) {
			dates = append(dates, date)
		}
	}
	return dates, nil
}

func (ls *LeaderboardService) GamesPlayed(date string) (int64, error) {
	val, found, err := ls.store.Get(models.GamesPlayedKey(date))
	if err != nil || !found {
		return 0, err
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		ls.logger.Warnf(providers.TypeApp, "Malformed games counter for %s: %s", date, err)
		return 0, nil
	}
	return count, nil
}

// readBoard returns the stored board, treating a malformed blob as absent.
// Store failures are returned; this is the write path.
func (ls *LeaderboardService) readBoard(key string) ([]models.LeaderboardEntry, error) {
	data, found, err := ls.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("board read failed: %w", err)
	}
	if !found {
		return []models.LeaderboardEntry{}, nil
	}

	var board []models.LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &board); err != nil {
		ls.logger.Warnf(providers.TypeApp, "Malformed board record %s dropped: %s", key, err)
		return []models.LeaderboardEntry{}, nil
	}
	return board, nil
}

// readBoardLenient degrades store failures to an empty board; board reads
// must not fail the whole response.
func (ls *LeaderboardService) readBoardLenient(key string) []models.LeaderboardEntry {
	board, err := ls.readBoard(key)
	if err != nil {
		ls.logger.Warnf(providers.TypeApp, "Board read degraded for %s: %s", key, err)
		return []models.LeaderboardEntry{}
	}
	return board
}

func (ls *LeaderboardService) writeBoard(key string, board []models.LeaderboardEntry, ttl time.Duration) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}
	if err := ls.store.Set(key, string(data), ttl); err != nil {
		return fmt.Errorf("board write failed: %w", err)
	}
	return nil
}
