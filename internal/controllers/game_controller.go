package controllers

import (
	"errors"
	"fragments/internal/models"
	"fragments/internal/providers"
	"fragments/internal/services"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// usernameHeader carries the identity resolved by the external provider.
const usernameHeader = "X-Username"

type GameController struct {
	logger  providers.Logger
	games   services.GameServiceInterface
	boards  services.LeaderboardServiceInterface
	window  services.DateWindowInterface
}

func NewGameController(
	logger providers.Logger,
	games services.GameServiceInterface,
	boards services.LeaderboardServiceInterface,
	window services.DateWindowInterface,
) *GameController {
	return &GameController{
		logger: logger,
		games:  games,
		boards: boards,
		window: window,
	}
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type submitWordRequest struct {
	Word string `json:"word"`
}

type initResponse struct {
	Type                     string `json:"type"`
	PostID                   string `json:"postId"`
	Username                 string `json:"username"`
	SecondsUntilNextFragment int    `json:"secondsUntilNextFragment"`
	GamesPlayedToday         int64  `json:"gamesPlayedToday"`
}

type gameStateResponse struct {
	Type      string              `json:"type"`
	PostID    string              `json:"postId"`
	GameState *models.GameSession `json:"gameState"`
}

type submitWordResponse struct {
	Type      string              `json:"type"`
	PostID    string              `json:"postId"`
	Valid     bool                `json:"valid"`
	Score     int                 `json:"score"`
	GameState *models.GameSession `json:"gameState"`
	Message   string              `json:"message"`
}

type leaderboardResponse struct {
	Type string `json:"type"`
	*models.DailyBoards
}

type datesResponse struct {
	Type  string   `json:"type"`
	Dates []string `json:"dates"`
}

func (gc *GameController) identity(w http.ResponseWriter, r *http.Request) (postID, username string, ok bool) {
	postID = r.URL.Query().Get("postId")
	if postID == "" {
		gc.writeError(w, http.StatusBadRequest, "postId is required")
		return "", "", false
	}
	username = r.Header.Get(usernameHeader)
	if username == "" {
		gc.writeError(w, http.StatusBadRequest, "User authentication required")
		return "", "", false
	}
	return postID, username, true
}

func (gc *GameController) Init(w http.ResponseWriter, r *http.Request) {
	postID, username, ok := gc.identity(w, r)
	if !ok {
		return
	}

	today := gc.window.CurrentDateKey()
	played, err := gc.boards.GamesPlayed(today)
	if err != nil {
		gc.logger.Warnf(providers.GetLogTypeByRequestType(r.Method), "Games-played read degraded: %s", err)
	}

	gc.writeJSON(w, http.StatusOK, initResponse{
		Type:                     "init",
		PostID:                   postID,
		Username:                 username,
		SecondsUntilNextFragment: gc.window.SecondsUntilNextFragment(),
		GamesPlayedToday:         played,
	})
}

func (gc *GameController) NewGame(w http.ResponseWriter, r *http.Request) {
	postID, username, ok := gc.identity(w, r)
	if !ok {
		return
	}

	session, err := gc.games.Start(postID, username)
	if err != nil {
		gc.logger.Errorf(providers.TypePost, "Error creating new game: %s", err)
		gc.writeError(w, http.StatusInternalServerError, "Failed to create new game")
		return
	}

	gc.writeJSON(w, http.StatusOK, gameStateResponse{Type: "new-game", PostID: postID, GameState: session})
}

func (gc *GameController) GameState(w http.ResponseWriter, r *http.Request) {
	postID, username, ok := gc.identity(w, r)
	if !ok {
		return
	}

	session, err := gc.games.Get(postID, username)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			gc.writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		gc.logger.Errorf(providers.TypeGet, "Error getting game state: %s", err)
		gc.writeError(w, http.StatusInternalServerError, "Failed to get game state")
		return
	}

	gc.writeJSON(w, http.StatusOK, gameStateResponse{Type: "game-state", PostID: postID, GameState: session})
}

func (gc *GameController) SubmitWord(w http.ResponseWriter, r *http.Request) {
	postID, username, ok := gc.identity(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload submitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		gc.writeError(w, http.StatusBadRequest, "Word is required")
		return
	}
	word := strings.TrimSpace(payload.Word)
	if word == "" {
		gc.writeError(w, http.StatusBadRequest, "Word is required")
		return
	}

	result, err := gc.games.Submit(postID, username, word)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			gc.writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		gc.logger.Errorf(providers.TypePost, "Error submitting word: %s", err)
		gc.writeError(w, http.StatusInternalServerError, "Failed to submit word")
		return
	}

	gc.writeJSON(w, http.StatusOK, submitWordResponse{
		Type:      "submit-word",
		PostID:    postID,
		Valid:     result.Valid,
		Score:     result.Score,
		GameState: result.Session,
		Message:   result.Message,
	})
}

func (gc *GameController) EndGame(w http.ResponseWriter, r *http.Request) {
	postID, username, ok := gc.identity(w, r)
	if !ok {
		return
	}

	session, err := gc.games.End(postID, username)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			gc.writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		gc.logger.Errorf(providers.TypePost, "Error ending game: %s", err)
		gc.writeError(w, http.StatusInternalServerError, "Failed to end game")
		return
	}

	gc.writeJSON(w, http.StatusOK, gameStateResponse{Type: "game-state", PostID: postID, GameState: session})
}

func (gc *GameController) Leaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = gc.window.CurrentDateKey()
	}

	boards, err := gc.boards.DailyBoards(date)
	if err != nil {
		gc.logger.Errorf(providers.TypeGet, "Error getting leaderboard: %s", err)
		gc.writeError(w, http.StatusInternalServerError, "Failed to get leaderboard")
		return
	}

	gc.writeJSON(w, http.StatusOK, leaderboardResponse{Type: "leaderboard", DailyBoards: boards})
}

func (gc *GameController) Dates(w http.ResponseWriter, r *http.Request) {
	dates, err := gc.boards.AvailableDates()
	if err != nil {
		gc.logger.Errorf(providers.TypeGet, "Error listing dates: %s", err)
		gc.writeError(w, http.StatusInternalServerError, "Failed to list dates")
		return
	}

	gc.writeJSON(w, http.StatusOK, datesResponse{Type: "dates", Dates: dates})
}

func (gc *GameController) writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (gc *GameController) writeError(w http.ResponseWriter, status int, message string) {
	gc.writeJSON(w, status, errorResponse{Status: "error", Message: message})
}
