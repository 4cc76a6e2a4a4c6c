// Package rate throttles repeated attempts per key, e.g. logins per email.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per key. Buckets untouched for longer
// than Expiry are swept once a minute.
type Limiter struct {
	Expiry time.Duration
	Burst  int
	Limit  rate.Limit

	mu      sync.Mutex
	clients map[string]*clientLimiter
	stop    chan struct{}
	once    sync.Once
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLimiter allows burst attempts per key, refilled at one per interval.
func NewLimiter(burst int, interval time.Duration, expiry time.Duration) *Limiter {
	lm := &Limiter{
		Expiry:  expiry,
		Burst:   burst,
		Limit:   rate.Every(interval),
		clients: make(map[string]*clientLimiter),
		stop:    make(chan struct{}),
	}
	go lm.refresh()
	return lm
}

// Check consumes a token for id and reports whether one was available.
func (l *Limiter) Check(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[id]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.Limit, l.Burst)}
		l.clients[id] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

// Close stops the sweeper.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) refresh() {
	t := time.NewTicker(time.Minute)
	defer t.Stop()

	for {
		select {
		case <-l.stop:
			return
		case now := <-t.C:
			l.sweep(now)
		}
	}
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, v := range l.clients {
		if now.Sub(v.lastAccess) > l.Expiry {
			delete(l.clients, id)
		}
	}
}
