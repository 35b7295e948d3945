package models

// GameSession is one player's timed play-through, keyed in the store by
// GameKey(postID, username). The JSON field names are the wire format the
// web client consumes, so they stay camelCase.
type GameSession struct {
	Fragment    string `json:"fragment"`
	CurrentWord string `json:"currentWord"`
	Score       int    `json:"score"`
	BestWord    string `json:"bestWord"`
	TimeLeft    int    `json:"timeLeft"`
	Active      bool   `json:"gameActive"`
}

// NewGameSession returns a fresh active session for today's fragment.
func NewGameSession(fragment string, playSeconds int) *GameSession {
	return &GameSession{
		Fragment: fragment,
		TimeLeft: playSeconds,
		Active:   true,
	}
}
