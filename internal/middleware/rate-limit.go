package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"interview-coach/internal/domain/dto"

	"golang.org/x/time/rate"
)

// RateLimiter applies per-IP request rate limiting.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	now      func() time.Time

	// trustForwarded keys clients by X-Forwarded-For. Only safe behind a
	// proxy that overwrites the header.
	trustForwarded bool
}

type ipLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows reqPerSec sustained requests per client IP with bursts
// of up to burst. A non-positive reqPerSec disables limiting. With
// trustForwarded unset the client is always the connection's remote address.
func NewRateLimiter(reqPerSec float64, burst int, trustForwarded bool) *RateLimiter {
	limit := rate.Limit(reqPerSec)
	if reqPerSec <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:       make(map[string]*ipLimiter),
		rate:           limit,
		burst:          burst,
		now:            time.Now,
		trustForwarded: trustForwarded,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.limiters[ip]
	if !ok {
		l = &ipLimiter{lim: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = l
	}
	l.lastSeen = rl.now()
	return l.lim
}

func (rl *RateLimiter) Allow(ip string) bool {
	return rl.getLimiter(ip).AllowN(rl.now(), 1)
}

// Evict forgets clients not seen for maxIdle.
func (rl *RateLimiter) Evict(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	n := 0
	for ip, l := range rl.limiters {
		if rl.now().Sub(l.lastSeen) > maxIdle {
			delete(rl.limiters, ip)
			n++
		}
	}
	return n
}

// RunEviction calls Evict every interval until ctx is done.
func (rl *RateLimiter) RunEviction(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Evict(maxIdle)
		}
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.trustForwarded {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
