package trivia

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/phrazzld/scry-trivia/internal/config"
)

// maxBackoffExponent bounds 2^n so the delay computation cannot overflow.
const maxBackoffExponent = 30

// RetryPolicy decides whether and when a failed question fetch is retried.
//
// MaxAttempts is the total number of attempts allowed; zero means unlimited,
// i.e. keep retrying for as long as the player acknowledges the failure.
// Delays grow as BaseDelay * 2^(attempt-1) with jitter and are capped at
// MaxDelay when it is positive. A zero BaseDelay retries immediately.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// PolicyFromConfig builds a RetryPolicy from configuration.
func PolicyFromConfig(cfg config.RetryConfig) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		MaxDelay:    cfg.MaxDelay,
	}
}

// Allow reports whether another attempt may follow the given number of
// failed attempts.
func (p RetryPolicy) Allow(failed int) bool {
	return p.MaxAttempts <= 0 || failed < p.MaxAttempts
}

// Delay returns how long to wait before the attempt following the given
// number of failed attempts.
func (p RetryPolicy) Delay(failed int) time.Duration {
	if p.BaseDelay <= 0 || failed < 1 {
		return 0
	}

	exp := min(failed-1, maxBackoffExponent)
	backoff := float64(p.BaseDelay) * math.Pow(2, float64(exp))
	// delay = backoff * (0.5 + rand(0, 0.5))
	jitterFactor := 0.5 + rand.Float64()*0.5
	delay := backoff * jitterFactor

	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	if delay >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(delay)
}
