// Package loginlimit tracks failed login attempts per client address and
// blocks further attempts once a threshold is crossed.
package loginlimit

import (
	"sync"
	"time"
)

const (
	MaxAttempts   = 5
	BlockDuration = 15 * time.Minute
)

type attemptInfo struct {
	attempts     int
	lastAttempt  time.Time
	blockedUntil time.Time
}

type Limiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
	now      func() time.Time
}

func New() *Limiter {
	return &Limiter{
		attempts: make(map[string]*attemptInfo),
		now:      time.Now,
	}
}

// IsBlocked reports whether addr is currently locked out. An expired
// block resets the attempt count.
func (l *Limiter) IsBlocked(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, ok := l.attempts[addr]
	if !ok {
		return false
	}

	if !info.blockedUntil.IsZero() && l.now().After(info.blockedUntil) {
		delete(l.attempts, addr)
		return false
	}

	return !info.blockedUntil.IsZero()
}

func (l *Limiter) RegisterFailure(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, ok := l.attempts[addr]
	if !ok {
		info = &attemptInfo{}
		l.attempts[addr] = info
	}

	info.attempts++
	info.lastAttempt = l.now()

	if info.attempts >= MaxAttempts {
		info.blockedUntil = l.now().Add(BlockDuration)
	}
}

// RegisterSuccess clears the failure history for addr.
func (l *Limiter) RegisterSuccess(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, addr)
}

// RemainingAttempts reports how many failures addr has left before lockout.
func (l *Limiter) RemainingAttempts(addr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, ok := l.attempts[addr]
	if !ok {
		return MaxAttempts
	}

	remaining := MaxAttempts - info.attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}
