package discord

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pruneThreshold bounds how many idle per-user limiters are kept around.
const pruneThreshold = 512

// submitLimiter throttles modal submissions per Discord user. A nil limiter
// allows everything.
type submitLimiter struct {
	mu    sync.Mutex
	limit rate.Limit
	burst int
	users map[string]*rate.Limiter
}

func newSubmitLimiter(perMinute float64, burst int) *submitLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &submitLimiter{
		limit: rate.Every(time.Duration(float64(time.Minute) / perMinute)),
		burst: burst,
		users: make(map[string]*rate.Limiter),
	}
}

func (l *submitLimiter) Allow(userID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.users[userID]
	if !ok {
		if len(l.users) >= pruneThreshold {
			l.pruneLocked()
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.users[userID] = lim
	}
	return lim.Allow()
}

// pruneLocked drops limiters that have refilled completely; recreating them
// later is equivalent.
func (l *submitLimiter) pruneLocked() {
	for id, lim := range l.users {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.users, id)
		}
	}
}
