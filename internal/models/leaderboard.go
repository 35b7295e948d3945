package models

import (
	"sort"
	"time"
)

// BoardSize caps both daily boards at the top ten entries.
const BoardSize = 10

// HiddenWord is the mask applied to board words before the day is complete.
const HiddenWord = "***"

type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	BestWord string `json:"bestWord"`
}

// DailyBoards is the full leaderboard view for one date.
type DailyBoards struct {
	ScoreBoard []LeaderboardEntry `json:"scoreLeaderboard"`
	WordBoard  []LeaderboardEntry `json:"wordLeaderboard"`
	ShowWords  bool               `json:"showWords"`
	Fragment   string             `json:"fragment"`
	Date       string             `json:"date"`
}

// DayRecord is the archived form of one completed day.
type DayRecord struct {
	Fragment   string             `json:"fragment"`
	ScoreBoard []LeaderboardEntry `json:"score_board"`
	WordBoard  []LeaderboardEntry `json:"word_board"`
	ArchivedAt time.Time          `json:"archived_at"`
}

// UpsertScore applies the score-board improvement rule: an existing entry
// for the username is replaced only by a strictly greater score, a new
// username is appended. Returns the board sorted by score descending and
// truncated to BoardSize.
func UpsertScore(board []LeaderboardEntry, username string, score int, bestWord string) []LeaderboardEntry {
	idx := findEntry(board, username)
	if idx >= 0 {
		if score > board[idx].Score {
			board[idx] = LeaderboardEntry{Username: username, Score: score, BestWord: bestWord}
		}
	} else {
		board = append(board, LeaderboardEntry{Username: username, Score: score, BestWord: bestWord})
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	return truncate(board)
}

// UpsertWord applies the word-board improvement rule: an existing entry is
// replaced only by a strictly longer word, and the replacement keeps the
// better of the two scores. Returns the board sorted by word length
// descending and truncated to BoardSize.
func UpsertWord(board []LeaderboardEntry, username string, score int, bestWord string) []LeaderboardEntry {
	idx := findEntry(board, username)
	if idx >= 0 {
		if len(bestWord) > len(board[idx].BestWord) {
			if board[idx].Score > score {
				score = board[idx].Score
			}
			board[idx] = LeaderboardEntry{Username: username, Score: score, BestWord: bestWord}
		}
	} else {
		board = append(board, LeaderboardEntry{Username: username, Score: score, BestWord: bestWord})
	}
	sort.SliceStable(board, func(i, j int) bool {
		return len(board[i].BestWord) > len(board[j].BestWord)
	})
	return truncate(board)
}

// MaskWords hides board words while the day is still in play. On the word
// board the rank-1 word stays visible as a teaser; everywhere else the
// word is replaced with HiddenWord. Empty words stay empty.
func MaskWords(board []LeaderboardEntry, wordBoard bool) []LeaderboardEntry {
	masked := make([]LeaderboardEntry, len(board))
	for i, entry := range board {
		if entry.BestWord != "" && !(wordBoard && i == 0) {
			entry.BestWord = HiddenWord
		}
		masked[i] = entry
	}
	return masked
}

func findEntry(board []LeaderboardEntry, username string) int {
	for i := range board {
		if board[i].Username == username {
			return i
		}
	}
	return -1
}

func truncate(board []LeaderboardEntry) []LeaderboardEntry {
	if len(board) > BoardSize {
		return board[:BoardSize]
	}
	return board
}
