package services

import (
	"fragments/internal/providers"
	"sync"
	"time"
)

type sessionKey struct {
	postID   string
	username string
}

// SessionClock is the wall-clock countdown for active sessions. Start
// arms a session with the play time; a one-second ticker counts each
// armed session down and fires the expire callback exactly once at zero.
// The callback is registered by the game service during wiring.
type SessionClock struct {
	mu        sync.Mutex
	remaining map[sessionKey]int
	onExpire  func(postID, username string)
	logger    providers.Logger
	stop      chan struct{}
	done      chan struct{}
}

func NewSessionClock(logger providers.Logger) *SessionClock {
	return &SessionClock{
		remaining: make(map[sessionKey]int),
		logger:    logger,
	}
}

// OnExpire registers the callback invoked when an armed session reaches
// zero.
func (sc *SessionClock) OnExpire(fn func(postID, username string)) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.onExpire = fn
}

func (sc *SessionClock) Arm(postID, username string, seconds int) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.remaining[sessionKey{postID, username}] = seconds
}

func (sc *SessionClock) Disarm(postID, username string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.remaining, sessionKey{postID, username})
}

// Remaining returns the live countdown for a session, false when unarmed.
func (sc *SessionClock) Remaining(postID, username string) (int, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	seconds, ok := sc.remaining[sessionKey{postID, username}]
	return seconds, ok
}

func (sc *SessionClock) Init() {
	sc.stop = make(chan struct{})
	sc.done = make(chan struct{})
	go sc.run()
}

func (sc *SessionClock) Stop() {
	if sc.stop == nil {
		return
	}
	close(sc.stop)
	<-sc.done
	sc.stop = nil
}

func (sc *SessionClock) run() {
	defer close(sc.done)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sc.stop:
			return
		case <-ticker.C:
			for _, key := range sc.tick() {
				if sc.logger != nil {
					sc.logger.Debugf(providers.TypeApp, "Session timer expired: %s/%s", key.postID, key.username)
				}
				sc.expire(key)
			}
		}
	}
}

// tick decrements every armed session and removes the ones that hit
// zero, so each session can expire at most once.
func (sc *SessionClock) tick() []sessionKey {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var expired []sessionKey
	for key, seconds := range sc.remaining {
		seconds--
		if seconds <= 0 {
			delete(sc.remaining, key)
			expired = append(expired, key)
			continue
		}
		sc.remaining[key] = seconds
	}
	return expired
}

func (sc *SessionClock) expire(key sessionKey) {
	sc.mu.Lock()
	fn := sc.onExpire
	sc.mu.Unlock()
	if fn != nil {
		fn(key.postID, key.username)
	}
}
