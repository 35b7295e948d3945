package models

// Store key schema. All values are plain strings or goccy-serialized JSON.
const (
	fragmentKeyPrefix   = "daily_fragment:"
	scoreBoardKeyPrefix = "daily_score_leaderboard:"
	wordBoardKeyPrefix  = "daily_word_leaderboard:"
	gamesKeyPrefix      = "daily_games:"
	gameKeyPrefix       = "game:"
)

func FragmentKey(date string) string {
	return fragmentKeyPrefix + date
}

func ScoreBoardKey(date string) string {
	return scoreBoardKeyPrefix + date
}

func WordBoardKey(date string) string {
	return wordBoardKeyPrefix + date
}

func GamesPlayedKey(date string) string {
	return gamesKeyPrefix + date
}

func GameKey(postID, username string) string {
	return gameKeyPrefix + postID + ":" + username
}
