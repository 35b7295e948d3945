package services

import (
	"errors"
	"fmt"
	"fragments/internal/models"
	"fragments/internal/providers"
	"fragments/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

var ErrSessionNotFound = errors.New("session not found")

const inactiveGameMessage = "Game is not active"

// SubmitResult is the outcome of one word submission. Invalid words are
// a normal negative result, not an error.
type SubmitResult struct {
	Valid   bool
	Score   int
	Message string
	Session *models.GameSession
}

type GameServiceInterface interface {
	Start(postID, username string) (*models.GameSession, error)
	Get(postID, username string) (*models.GameSession, error)
	Submit(postID, username, word string) (*SubmitResult, error)
	End(postID, username string) (*models.GameSession, error)
}

type GameService struct {
	store       providers.StoreProviderInterface
	fragments   FragmentServiceInterface
	boards      LeaderboardServiceInterface
	window      DateWindowInterface
	clock       *SessionClock
	lexicon     models.Lexicon
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	locks       *keyedMutex
	playSeconds int
	sessionTTL  time.Duration
}

func NewGameService(
	conf *structures.Config,
	store providers.StoreProviderInterface,
	fragments FragmentServiceInterface,
	boards LeaderboardServiceInterface,
	window DateWindowInterface,
	clock *SessionClock,
	lexicon models.Lexicon,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) GameServiceInterface {
	gs := &GameService{
		store:       store,
		fragments:   fragments,
		boards:      boards,
		window:      window,
		clock:       clock,
		lexicon:     lexicon,
		logger:      logger,
		metrics:     metrics,
		locks:       newKeyedMutex(),
		playSeconds: int(conf.Game.PlayTime.Seconds()),
		sessionTTL:  conf.Game.SessionTTL,
	}
	clock.OnExpire(gs.expireSession)
	return gs
}

func (gs *GameService) Start(postID, username string) (*models.GameSession, error) {
	unlock := gs.locks.Lock(models.GameKey(postID, username))
	defer unlock()

	date := gs.window.CurrentDateKey()
	fragment, err := gs.fragments.DailyFragment(date)
	if err != nil {
		return nil, err
	}

	// starting a new game always discards an unfinished one
	session := models.NewGameSession(fragment, gs.playSeconds)
	if err := gs.saveSession(postID, username, session); err != nil {
		return nil, err
	}

	if _, err := gs.store.IncrBy(models.GamesPlayedKey(date), 1, gs.window.Retention()); err != nil {
		gs.logger.Warnf(providers.TypeApp, "Games-played counter update failed: %s", err)
	}

	gs.clock.Arm(postID, username, gs.playSeconds)
	gs.metrics.IncGamesStarted()
	gs.logger.Debugf(providers.TypeApp, "New game for %s on post %s, fragment %q", username, postID, fragment)
	return session, nil
}

func (gs *GameService) Get(postID, username string) (*models.GameSession, error) {
	session, err := gs.loadSession(postID, username)
	if err != nil {
		return nil, err
	}
	gs.applyCountdown(postID, username, session)
	return session, nil
}

func (gs *GameService) Submit(postID, username, word string) (*SubmitResult, error) {
	unlock := gs.locks.Lock(models.GameKey(postID, username))
	defer unlock()

	session, err := gs.loadSession(postID, username)
	if err != nil {
		return nil, err
	}

	if !session.Active {
		return &SubmitResult{
			Valid:   false,
			Score:   session.Score,
			Message: inactiveGameMessage,
			Session: session,
		}, nil
	}

	valid := models.ValidWord(word, session.Fragment, gs.lexicon)
	var message string
	if valid {
		wordScore := models.WordScore(word)
		session.Score += wordScore
		session.CurrentWord = word
		if len(word) > len(session.BestWord) {
			session.BestWord = word
		}
		message = fmt.Sprintf("Great! %q is valid and earned %d points!", word, wordScore)
	} else {
		message = fmt.Sprintf("%q is not valid. Make sure it starts with %q and is a real word.", word, session.Fragment)
	}

	gs.applyCountdown(postID, username, session)
	if err := gs.saveSession(postID, username, session); err != nil {
		return nil, err
	}

	gs.metrics.IncWordsSubmitted(valid)
	return &SubmitResult{
		Valid:   valid,
		Score:   session.Score,
		Message: message,
		Session: session,
	}, nil
}

func (gs *GameService) End(postID, username string) (*models.GameSession, error) {
	unlock := gs.locks.Lock(models.GameKey(postID, username))
	defer unlock()

	session, err := gs.loadSession(postID, username)
	if err != nil {
		return nil, err
	}

	// terminal state; re-ending must not touch the boards again
	if !session.Active {
		return session, nil
	}

	session.Active = false
	session.TimeLeft = 0
	gs.clock.Disarm(postID, username)

	if err := gs.saveSession(postID, username, session); err != nil {
		return nil, err
	}

	if session.Score > 0 && session.BestWord != "" {
		date := gs.window.CurrentDateKey()
		if err := gs.boards.RecordResult(date, username, session.Score, session.BestWord); err != nil {
			return nil, fmt.Errorf("leaderboard update failed: %w", err)
		}
	}

	return session, nil
}

// expireSession is the clock callback; the play timer reaching zero ends
// the game exactly once.
func (gs *GameService) expireSession(postID, username string) {
	if _, err := gs.End(postID, username); err != nil && !errors.Is(err, ErrSessionNotFound) {
		gs.logger.Errorf(providers.TypeApp, "Timed end failed for %s/%s: %s", postID, username, err)
	}
}

// applyCountdown overlays the live timer on the stored snapshot, keeping
// timeLeft monotonically decreasing while the session is active.
func (gs *GameService) applyCountdown(postID, username string, session *models.GameSession) {
	if !session.Active {
		return
	}
	if remaining, ok := gs.clock.Remaining(postID, username); ok && remaining < session.TimeLeft {
		session.TimeLeft = remaining
	}
}

func (gs *GameService) loadSession(postID, username string) (*models.GameSession, error) {
	data, found, err := gs.store.Get(models.GameKey(postID, username))
	if err != nil {
		return nil, fmt.Errorf("session read failed: %w", err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	var session models.GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		gs.logger.Warnf(providers.TypeApp, "Malformed session record for %s/%s dropped: %s", postID, username, err)
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (gs *GameService) saveSession(postID, username string, session *models.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	err = gs.store.Set(models.GameKey(postID, username), string(data), gs.sessionTTL)
	if err != nil {
		return fmt.Errorf("session write failed: %w", err)
	}
	return nil
}
