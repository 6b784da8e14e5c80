// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// maxLockout caps the exponential lockout backoff.
const maxLockout = 24 * time.Hour

// LoginProtection combines per-IP rate limiting with per-account lockout.
type LoginProtection struct {
	ipLimiters *limiterCache[string]

	failedAttempts map[string]*loginAttempt
	attemptsMu     sync.RWMutex

	maxFailedAttempts int
	lockoutDuration   time.Duration // doubles with each lockout
	attemptWindow     time.Duration

	metrics *Metrics
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// loginAttempt tracks failed login attempts for an account.
type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is requests per second per IP (default: 0.5)
	IPRateLimit float64
	// IPBurst is the maximum burst size for IP rate limiting (default: 5)
	IPBurst int
	// MaxFailedAttempts before account lockout (default: 5)
	MaxFailedAttempts int
	// LockoutDuration is the base lockout time (default: 15 minutes)
	LockoutDuration time.Duration
	// AttemptWindow is the time window for counting failures (default: 15 minutes)
	AttemptWindow time.Duration
	// Metrics, when set, counts rate-limited requests.
	Metrics *Metrics
}

// DefaultLoginProtectionConfig returns the default limits.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// NewLoginProtection creates a login protection instance and starts its
// cleanup goroutine. Call Close to stop it.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}

	lp := &LoginProtection{
		ipLimiters:        newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		failedAttempts:    make(map[string]*loginAttempt),
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
		metrics:           cfg.Metrics,
		now:               time.Now,
		stop:              make(chan struct{}),
	}

	go lp.cleanup()

	return lp
}

// Close stops the cleanup goroutine.
func (lp *LoginProtection) Close() {
	lp.once.Do(func() { close(lp.stop) })
}

// CheckIPRateLimit reports whether a login request from ip is allowed.
func (lp *LoginProtection) CheckIPRateLimit(ip string) bool {
	return lp.ipLimiters.get(ip).Allow()
}

// IsAccountLocked reports whether the account is locked and for how long.
func (lp *LoginProtection) IsAccountLocked(email string) (bool, time.Duration) {
	key := accountKey(email)

	lp.attemptsMu.RLock()
	var lockedUntil time.Time
	if attempt, exists := lp.failedAttempts[key]; exists {
		lockedUntil = attempt.lockedUntil
	}
	lp.attemptsMu.RUnlock()

	now := lp.now()
	if now.Before(lockedUntil) {
		return true, lockedUntil.Sub(now)
	}
	return false, 0
}

// RecordFailedAttempt records a failed login and reports whether the account
// is now locked, with the lock duration.
func (lp *LoginProtection) RecordFailedAttempt(email string) (bool, time.Duration) {
	key := accountKey(email)

	lp.attemptsMu.Lock()
	defer lp.attemptsMu.Unlock()

	now := lp.now()
	attempt, exists := lp.failedAttempts[key]

	if !exists {
		lp.failedAttempts[key] = &loginAttempt{count: 1, firstFailed: now}
		slog.Debug("login attempt recorded", "email", key, "count", 1)
		return false, 0
	}

	if now.Sub(attempt.firstFailed) > lp.attemptWindow {
		attempt.count = 1
		attempt.firstFailed = now
		slog.Debug("login attempt window reset", "email", key, "count", 1)
		return false, 0
	}

	attempt.count++
	slog.Debug("login attempt recorded", "email", key, "count", attempt.count)

	if attempt.count < lp.maxFailedAttempts {
		return false, 0
	}

	lockDuration := lp.lockoutDuration
	for i := 0; i < attempt.lockouts; i++ {
		lockDuration *= 2
		if lockDuration > maxLockout {
			lockDuration = maxLockout
			break
		}
	}

	attempt.lockedUntil = now.Add(lockDuration)
	attempt.lockouts++
	attempt.count = 0

	slog.Warn("admin account locked due to failed login attempts",
		"email", key,
		"lockouts", attempt.lockouts,
		"duration", lockDuration,
	)
	return true, lockDuration
}

// RecordSuccessfulLogin clears failed attempt tracking for an account.
func (lp *LoginProtection) RecordSuccessfulLogin(email string) {
	key := accountKey(email)

	lp.attemptsMu.Lock()
	defer lp.attemptsMu.Unlock()

	delete(lp.failedAttempts, key)
}

// GetRemainingAttempts returns the number of failures left before lockout.
func (lp *LoginProtection) GetRemainingAttempts(email string) int {
	lp.attemptsMu.RLock()
	attempt, exists := lp.failedAttempts[accountKey(email)]
	var (
		count       int
		firstFailed time.Time
	)
	if exists {
		count, firstFailed = attempt.count, attempt.firstFailed
	}
	lp.attemptsMu.RUnlock()

	if !exists || lp.now().Sub(firstFailed) > lp.attemptWindow {
		return lp.maxFailedAttempts
	}
	return max(lp.maxFailedAttempts-count, 0)
}

func (lp *LoginProtection) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lp.cleanupStaleEntries()
		case <-lp.stop:
			return
		}
	}
}

func (lp *LoginProtection) cleanupStaleEntries() {
	now := lp.now()

	if lp.ipLimiters.clearIfExceeds(10000) {
		slog.Info("cleared login rate limiters due to size")
	}

	lp.attemptsMu.Lock()
	for key, attempt := range lp.failedAttempts {
		if now.After(attempt.lockedUntil) && now.Sub(attempt.firstFailed) > lp.attemptWindow {
			delete(lp.failedAttempts, key)
		}
	}
	lp.attemptsMu.Unlock()
}

// Middleware rate limits POST requests per client IP.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if !lp.CheckIPRateLimit(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip)
				lp.metrics.RecordLogin(LoginOutcomeRateLimited)
				writeJSONError(w, http.StatusTooManyRequests, "too many login attempts, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func accountKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
