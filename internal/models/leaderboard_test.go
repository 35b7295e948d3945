package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- UpsertScore ---

func TestUpsertScore_InsertsNewUser(t *testing.T) {
	board := UpsertScore(nil, "alice", 10, "story")
	require.Len(t, board, 1)
	assert.Equal(t, LeaderboardEntry{Username: "alice", Score: 10, BestWord: "story"}, board[0])
}

func TestUpsertScore_KeepsHigherScore(t *testing.T) {
	board := UpsertScore(nil, "alice", 10, "story")
	board = UpsertScore(board, "alice", 25, "stupendous")
	require.Len(t, board, 1)
	assert.Equal(t, 25, board[0].Score)
	assert.Equal(t, "stupendous", board[0].BestWord)

	board = UpsertScore(board, "alice", 5, "stop")
	require.Len(t, board, 1)
	assert.Equal(t, 25, board[0].Score)
	assert.Equal(t, "stupendous", board[0].BestWord)
}

func TestUpsertScore_EqualScoreNotReplaced(t *testing.T) {
	board := UpsertScore(nil, "alice", 10, "story")
	board = UpsertScore(board, "alice", 10, "stellar")
	assert.Equal(t, "story", board[0].BestWord)
}

func TestUpsertScore_SortsDescending(t *testing.T) {
	var board []LeaderboardEntry
	board = UpsertScore(board, "alice", 5, "aaa")
	board = UpsertScore(board, "bob", 20, "bbb")
	board = UpsertScore(board, "carol", 10, "ccc")

	require.Len(t, board, 3)
	assert.Equal(t, "bob", board[0].Username)
	assert.Equal(t, "carol", board[1].Username)
	assert.Equal(t, "alice", board[2].Username)
}

func TestUpsertScore_TruncatesToTen(t *testing.T) {
	var board []LeaderboardEntry
	for i := 0; i < 15; i++ {
		board = UpsertScore(board, fmt.Sprintf("user%d", i), i, "word")
	}
	require.Len(t, board, BoardSize)
	// lowest scores fell off
	assert.Equal(t, 14, board[0].Score)
	assert.Equal(t, 5, board[BoardSize-1].Score)
}

// --- UpsertWord ---

func TestUpsertWord_KeepsLongerWord(t *testing.T) {
	board := UpsertWord(nil, "alice", 25, "story")
	board = UpsertWord(board, "alice", 10, "stupendous")
	require.Len(t, board, 1)
	assert.Equal(t, "stupendous", board[0].BestWord)
}

func TestUpsertWord_CarriesBetterScore(t *testing.T) {
	board := UpsertWord(nil, "alice", 25, "story")
	board = UpsertWord(board, "alice", 10, "stupendous")
	// longer word wins but the higher score is carried forward
	assert.Equal(t, 25, board[0].Score)

	board = UpsertWord(board, "alice", 40, "stupendously")
	assert.Equal(t, 40, board[0].Score)
}

func TestUpsertWord_ShorterWordIgnored(t *testing.T) {
	board := UpsertWord(nil, "alice", 10, "stupendous")
	board = UpsertWord(board, "alice", 99, "sto")
	assert.Equal(t, "stupendous", board[0].BestWord)
	assert.Equal(t, 10, board[0].Score)
}

func TestUpsertWord_EqualLengthNotReplaced(t *testing.T) {
	board := UpsertWord(nil, "alice", 10, "story")
	board = UpsertWord(board, "alice", 10, "stone")
	assert.Equal(t, "story", board[0].BestWord)
}

func TestUpsertWord_SortsByLengthDescending(t *testing.T) {
	var board []LeaderboardEntry
	board = UpsertWord(board, "alice", 5, "sto")
	board = UpsertWord(board, "bob", 5, "stupendous")
	board = UpsertWord(board, "carol", 5, "story")

	require.Len(t, board, 3)
	assert.Equal(t, "bob", board[0].Username)
	assert.Equal(t, "carol", board[1].Username)
	assert.Equal(t, "alice", board[2].Username)
}

// --- MaskWords ---

func TestMaskWords_ScoreBoardMasksEverything(t *testing.T) {
	board := []LeaderboardEntry{
		{Username: "alice", Score: 25, BestWord: "stupendous"},
		{Username: "bob", Score: 10, BestWord: "story"},
	}
	masked := MaskWords(board, false)
	assert.Equal(t, HiddenWord, masked[0].BestWord)
	assert.Equal(t, HiddenWord, masked[1].BestWord)
}

func TestMaskWords_WordBoardKeepsTopEntry(t *testing.T) {
	board := []LeaderboardEntry{
		{Username: "alice", Score: 25, BestWord: "stupendous"},
		{Username: "bob", Score: 10, BestWord: "story"},
		{Username: "carol", Score: 8, BestWord: "stone"},
	}
	masked := MaskWords(board, true)
	assert.Equal(t, "stupendous", masked[0].BestWord)
	assert.Equal(t, HiddenWord, masked[1].BestWord)
	assert.Equal(t, HiddenWord, masked[2].BestWord)
}

func TestMaskWords_EmptyWordStaysEmpty(t *testing.T) {
	board := []LeaderboardEntry{{Username: "alice", Score: 1, BestWord: ""}}
	masked := MaskWords(board, false)
	assert.Equal(t, "", masked[0].BestWord)
}

func TestMaskWords_DoesNotMutateInput(t *testing.T) {
	board := []LeaderboardEntry{{Username: "alice", Score: 1, BestWord: "story"}}
	_ = MaskWords(board, false)
	assert.Equal(t, "story", board[0].BestWord)
}
