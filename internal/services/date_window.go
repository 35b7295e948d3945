package services

import (
	"fragments/internal/structures"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateWindowInterface is the single authority for day-boundary math:
// the current date key, the word-reveal gate and the countdown to the
// next fragment all derive from the same reference timezone.
type DateWindowInterface interface {
	CurrentDateKey() string
	IsDayComplete() bool
	SecondsUntilNextFragment() int
	RecentDateKeys(days int) []string
	Retention() time.Duration
}

type DateWindow struct {
	loc          *time.Location
	now          func() time.Time
	revealWindow time.Duration
	retention    time.Duration
}

func NewDateWindow(conf *structures.Config) (DateWindowInterface, error) {
	loc, err := time.LoadLocation(conf.Game.Timezone)
	if err != nil {
		return nil, err
	}
	return &DateWindow{
		loc:          loc,
		now:          time.Now,
		revealWindow: conf.Game.RevealWindow,
		retention:    time.Duration(conf.Game.RetentionDays) * 24 * time.Hour,
	}, nil
}

// NewDateWindowAt builds a window with a fixed clock, for tests.
func NewDateWindowAt(loc *time.Location, now func() time.Time, revealWindow, retention time.Duration) DateWindowInterface {
	return &DateWindow{loc: loc, now: now, revealWindow: revealWindow, retention: retention}
}

func (dw *DateWindow) CurrentDateKey() string {
	return dw.now().In(dw.loc).Format(dateKeyLayout)
}

func (dw *DateWindow) nextMidnight() time.Time {
	now := dw.now().In(dw.loc)
	year, month, day := now.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, dw.loc)
}

// IsDayComplete reports whether the day has entered its reveal window,
// the final stretch before midnight after which board words are shown.
func (dw *DateWindow) IsDayComplete() bool {
	return dw.nextMidnight().Sub(dw.now().In(dw.loc)) <= dw.revealWindow
}

func (dw *DateWindow) SecondsUntilNextFragment() int {
	return int(dw.nextMidnight().Sub(dw.now().In(dw.loc)) / time.Second)
}

// RecentDateKeys returns the keys for the last `days` calendar days,
// today first.
func (dw *DateWindow) RecentDateKeys(days int) []string {
	now := dw.now().In(dw.loc)
	keys := make([]string, 0, days)
	for i := 0; i < days; i++ {
		keys = append(keys, now.AddDate(0, 0, -i).Format(dateKeyLayout))
	}
	return keys
}

// Retention is how long daily records stay in the store.
func (dw *DateWindow) Retention() time.Duration {
	return dw.retention
}
