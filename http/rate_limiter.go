package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	clientIdleThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client. Buckets idle for longer
// than clientIdleThreshold are dropped by a background loop until Stop.
type RateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	clients     map[string]*clientLimiter
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(requestsPerMinute float64, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	rl := &RateLimiter{
		limit:       rate.Limit(requestsPerMinute / 60.0),
		burst:       burst,
		clients:     make(map[string]*clientLimiter),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, client := range r.clients {
		if now.Sub(client.lastSeen) > clientIdleThreshold {
			delete(r.clients, id)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

func (r *RateLimiter) Allow(id string) bool {
	r.mu.Lock()
	now := r.now()
	client, exists := r.clients[id]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[id] = client
	}
	client.lastSeen = now
	r.mu.Unlock()

	return client.limiter.AllowN(now, 1)
}
