// Package ratelimit provides in-memory fixed-window limiting for the
// unauthenticated chat endpoint.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds the window, the per-window budget, and the ban applied when
// the budget is exhausted.
type Config struct {
	WindowSize    time.Duration
	MaxRequests   int
	CleanupPeriod time.Duration
	BanDuration   time.Duration
}

// DefaultPublicChatConfig limits anonymous landing-page chat to a small
// number of questions per minute per client.
func DefaultPublicChatConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxRequests:   10,
		CleanupPeriod: 10 * time.Minute,
		BanDuration:   5 * time.Minute,
	}
}

type clientRecord struct {
	count     int
	firstSeen time.Time
	bannedAt  *time.Time
}

// Info reports the outcome of an Allow check.
type Info struct {
	Allowed    bool
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	Banned     bool
}

// MemoryRateLimiter tracks request counts per client identifier in memory.
// A background goroutine evicts expired records until Close is called.
type MemoryRateLimiter struct {
	config  *Config
	clients map[string]*clientRecord
	mu      sync.Mutex
	stopCh  chan struct{}
}

func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	limiter := &MemoryRateLimiter{
		config:  config,
		clients: make(map[string]*clientRecord),
		stopCh:  make(chan struct{}),
	}
	go limiter.cleanupLoop()
	return limiter
}

// Allow records one request for the identifier and reports whether it fits
// in the current window.
func (rl *MemoryRateLimiter) Allow(identifier string) (bool, *Info) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	record, exists := rl.clients[identifier]

	if !exists {
		rl.clients[identifier] = &clientRecord{count: 1, firstSeen: now}
		return true, &Info{
			Allowed:   true,
			Remaining: rl.config.MaxRequests - 1,
			ResetTime: now.Add(rl.config.WindowSize),
		}
	}

	if record.bannedAt != nil && now.Sub(*record.bannedAt) < rl.config.BanDuration {
		remaining := rl.config.BanDuration - now.Sub(*record.bannedAt)
		return false, &Info{
			ResetTime:  record.bannedAt.Add(rl.config.BanDuration),
			RetryAfter: remaining,
			Banned:     true,
		}
	}

	if now.Sub(record.firstSeen) > rl.config.WindowSize {
		record.count = 1
		record.firstSeen = now
		record.bannedAt = nil
		return true, &Info{
			Allowed:   true,
			Remaining: rl.config.MaxRequests - 1,
			ResetTime: now.Add(rl.config.WindowSize),
		}
	}

	record.count++
	if record.count > rl.config.MaxRequests {
		banTime := now
		record.bannedAt = &banTime
		return false, &Info{
			ResetTime:  now.Add(rl.config.BanDuration),
			RetryAfter: rl.config.BanDuration,
			Banned:     true,
		}
	}

	return true, &Info{
		Allowed:   true,
		Remaining: rl.config.MaxRequests - record.count,
		ResetTime: record.firstSeen.Add(rl.config.WindowSize),
	}
}

func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for identifier, record := range rl.clients {
		windowExpired := now.Sub(record.firstSeen) > rl.config.WindowSize
		banExpired := record.bannedAt != nil && now.Sub(*record.bannedAt) > rl.config.BanDuration
		if (windowExpired && record.bannedAt == nil) || banExpired {
			delete(rl.clients, identifier)
		}
	}
}

// Close stops the cleanup goroutine.
func (rl *MemoryRateLimiter) Close() {
	close(rl.stopCh)
}

// GetClientIP extracts the client address, honoring proxy headers.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := firstForwardedIP(forwarded); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func firstForwardedIP(forwarded string) string {
	parts := strings.Split(forwarded, ",")
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[0])
}
