package services

import (
	"errors"
	"fragments/internal/models"
	"fragments/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubArchive struct {
	days map[string]*models.DayRecord
	err  error
}

func (s *stubArchive) Has(date string) bool {
	_, ok := s.days[date]
	return ok
}

func (s *stubArchive) Load(date string) (*models.DayRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.days[date], nil
}

type boardFixture struct {
	boards  LeaderboardServiceInterface
	store   *testutil.MockStore
	metrics *testutil.MockMetrics
	archive *stubArchive
}

func newBoardFixture(t *testing.T, instant time.Time) *boardFixture {
	t.Helper()
	store := testutil.NewMockStore()
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	archive := &stubArchive{days: make(map[string]*models.DayRecord)}
	dw := NewDateWindowAt(time.UTC, func() time.Time { return instant }, time.Hour, 7*24*time.Hour)
	fragmentSvc := NewFragmentService(store, dw, logger)
	boards := NewLeaderboardService(store, fragmentSvc, dw, archive, logger, metrics)
	return &boardFixture{boards: boards, store: store, metrics: metrics, archive: archive}
}

func (f *boardFixture) scoreBoard(t *testing.T, date string) []models.LeaderboardEntry {
	t.Helper()
	var board []models.LeaderboardEntry
	require.NoError(t, json.Unmarshal([]byte(f.store.Data[models.ScoreBoardKey(date)]), &board))
	return board
}

func (f *boardFixture) wordBoard(t *testing.T, date string) []models.LeaderboardEntry {
	t.Helper()
	var board []models.LeaderboardEntry
	require.NoError(t, json.Unmarshal([]byte(f.store.Data[models.WordBoardKey(date)]), &board))
	return board
}

// --- RecordResult ---

func TestRecordResult_WritesBothBoards(t *testing.T) {
	f := newBoardFixture(t, noon())

	require.NoError(t, f.boards.RecordResult("2024-05-01", "alice", 25, "stupendous"))

	score := f.scoreBoard(t, "2024-05-01")
	word := f.wordBoard(t, "2024-05-01")
	require.Len(t, score, 1)
	require.Len(t, word, 1)
	assert.Equal(t, models.LeaderboardEntry{Username: "alice", Score: 25, BestWord: "stupendous"}, score[0])
	assert.Equal(t, models.LeaderboardEntry{Username: "alice", Score: 25, BestWord: "stupendous"}, word[0])
	assert.Equal(t, 1, f.metrics.BoardWrites)
}

func TestRecordResult_BoardsImproveIndependently(t *testing.T) {
	f := newBoardFixture(t, noon())

	require.NoError(t, f.boards.RecordResult("2024-05-01", "alice", 20, "stupendous"))
	// higher score but shorter word: score board improves, word board keeps
	// the longer word
	require.NoError(t, f.boards.RecordResult("2024-05-01", "alice", 30, "story"))

	score := f.scoreBoard(t, "2024-05-01")
	word := f.wordBoard(t, "2024-05-01")
	assert.Equal(t, 30, score[0].Score)
	assert.Equal(t, "story", score[0].BestWord)
	assert.Equal(t, "stupendous", word[0].BestWord)
}

func TestRecordResult_BoardTTLIsRetention(t *testing.T) {
	f := newBoardFixture(t, noon())

	require.NoError(t, f.boards.RecordResult("2024-05-01", "alice", 5, "story"))

	assert.Equal(t, 7*24*time.Hour, f.store.TTLs[models.ScoreBoardKey("2024-05-01")])
	assert.Equal(t, 7*24*time.Hour, f.store.TTLs[models.WordBoardKey("2024-05-01")])
}

func TestRecordResult_MalformedBoardReplaced(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.store.Data[models.ScoreBoardKey("2024-05-01")] = "{corrupt"

	require.NoError(t, f.boards.RecordResult("2024-05-01", "alice", 5, "story"))
	require.Len(t, f.scoreBoard(t, "2024-05-01"), 1)
}

func TestRecordResult_StoreFailure(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.store.FailGet = errors.New("store down")

	err := f.boards.RecordResult("2024-05-01", "alice", 5, "story")
	assert.Error(t, err)
	assert.Equal(t, 0, f.metrics.BoardWrites)
}

// --- DailyBoards ---

func TestDailyBoards_TodayBeforeRevealMasksWords(t *testing.T) {
	f := newBoardFixture(t, noon())
	require.NoError(t, f.boards.RecordResult("2024-05-01", "alice", 25, "stupendous"))
	require.NoError(t, f.boards.RecordResult("2024-05-01", "bob", 5, "story"))
	f.store.Data[models.FragmentKey("2024-05-01")] = "st"

	boards, err := f.boards.DailyBoards("2024-05-01")
	require.NoError(t, err)

	assert.False(t, boards.ShowWords)
	assert.Equal(t, "st", boards.Fragment)
	for _, entry := range boards.ScoreBoard {
		assert.Equal(t, models.HiddenWord, entry.BestWord)
	}
	// the word board teases the longest word only
	assert.Equal(t, "stupendous", boards.WordBoard[0].BestWord)
	assert.Equal(t, models.HiddenWord, boards.WordBoard[1].BestWord)
}

func TestDailyBoards_TodayInsideRevealWindow(t *testing.T) {
	lateEvening := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	f := newBoardFixture(t, lateEvening)
	require.NoError(t, f.boards.RecordResult("2024-05-01", "alice", 25, "stupendous"))

	boards, err := f.boards.DailyBoards("2024-05-01")
	require.NoError(t, err)

	assert.True(t, boards.ShowWords)
	assert.Equal(t, "stupendous", boards.ScoreBoard[0].BestWord)
}

func TestDailyBoards_PastDateAlwaysRevealed(t *testing.T) {
	f := newBoardFixture(t, noon())
	require.NoError(t, f.boards.RecordResult("2024-04-30", "alice", 25, "stupendous"))

	boards, err := f.boards.DailyBoards("2024-04-30")
	require.NoError(t, err)

	assert.True(t, boards.ShowWords)
	assert.Equal(t, "stupendous", boards.ScoreBoard[0].BestWord)
}

func TestDailyBoards_EmptyDay(t *testing.T) {
	f := newBoardFixture(t, noon())

	boards, err := f.boards.DailyBoards("2024-05-01")
	require.NoError(t, err)

	assert.Empty(t, boards.ScoreBoard)
	assert.Empty(t, boards.WordBoard)
	assert.Equal(t, "", boards.Fragment)
	assert.Equal(t, "2024-05-01", boards.Date)
}

func TestDailyBoards_ArchiveFallbackForEvictedDay(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.archive.days["2024-04-25"] = &models.DayRecord{
		Fragment: "an",
		ScoreBoard: []models.LeaderboardEntry{
			{Username: "carol", Score: 17, BestWord: "antelope"},
		},
		WordBoard: []models.LeaderboardEntry{
			{Username: "carol", Score: 17, BestWord: "antelope"},
		},
	}

	boards, err := f.boards.DailyBoards("2024-04-25")
	require.NoError(t, err)

	assert.True(t, boards.ShowWords)
	assert.Equal(t, "an", boards.Fragment)
	require.Len(t, boards.ScoreBoard, 1)
	assert.Equal(t, "antelope", boards.ScoreBoard[0].BestWord)
}

func TestDailyBoards_ArchiveNotConsultedForToday(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.archive.days["2024-05-01"] = &models.DayRecord{
		ScoreBoard: []models.LeaderboardEntry{{Username: "stale", Score: 1, BestWord: "old"}},
	}

	boards, err := f.boards.DailyBoards("2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, boards.ScoreBoard)
}

func TestDailyBoards_ArchiveFailureDegradesToEmpty(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.archive.err = errors.New("disk gone")

	boards, err := f.boards.DailyBoards("2024-04-25")
	require.NoError(t, err)
	assert.Empty(t, boards.ScoreBoard)
}

func TestDailyBoards_StoreFailureDegradesToEmpty(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.store.FailGet = errors.New("store down")

	boards, err := f.boards.DailyBoards("2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, boards.ScoreBoard)
	assert.Empty(t, boards.WordBoard)
}

// --- AvailableDates ---

func TestAvailableDates_FragmentDaysOnly(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.store.Data[models.FragmentKey("2024-05-01")] = "st"
	f.store.Data[models.FragmentKey("2024-04-29")] = "an"

	dates, err := f.boards.AvailableDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01", "2024-04-29"}, dates)
}

func TestAvailableDates_IncludesArchivedDays(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.store.Data[models.FragmentKey("2024-05-01")] = "st"
	f.archive.days["2024-04-27"] = &models.DayRecord{Fragment: "co"}

	dates, err := f.boards.AvailableDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01", "2024-04-27"}, dates)
}

func TestAvailableDates_NoDays(t *testing.T) {
	f := newBoardFixture(t, noon())

	dates, err := f.boards.AvailableDates()
	require.NoError(t, err)
	assert.Empty(t, dates)
}

// --- GamesPlayed ---

func TestGamesPlayed(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.store.Data[models.GamesPlayedKey("2024-05-01")] = "14"

	count, err := f.boards.GamesPlayed("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, int64(14), count)
}

func TestGamesPlayed_MissingIsZero(t *testing.T) {
	f := newBoardFixture(t, noon())

	count, err := f.boards.GamesPlayed("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGamesPlayed_MalformedIsZero(t *testing.T) {
	f := newBoardFixture(t, noon())
	f.store.Data[models.GamesPlayedKey("2024-05-01")] = "NaN"

	count, err := f.boards.GamesPlayed("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
