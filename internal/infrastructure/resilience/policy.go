package resilience

import "time"

// Policy tunes retry and circuit-breaker behavior for one class of upstream
// calls. The zero value is unusable; obtain a baseline from DefaultPolicy or
// LLMPolicy and override fields as needed.
type Policy struct {
	// AttemptTimeout bounds each individual attempt. Zero disables the
	// per-attempt deadline and leaves only the caller's context.
	AttemptTimeout time.Duration

	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64

	BreakerEnabled      bool
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerOpenFor      time.Duration
	BreakerProbeCalls   uint32
}

// DefaultPolicy suits fast REST backends such as the search service.
func DefaultPolicy() Policy {
	return Policy{
		AttemptTimeout: 30 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		BackoffFactor:  2.0,

		BreakerEnabled:      true,
		BreakerMinRequests:  10,
		BreakerFailureRatio: 0.5,
		BreakerOpenFor:      30 * time.Second,
		BreakerProbeCalls:   2,
	}
}

// LLMPolicy suits chat-completion calls, which run long and rate-limit hard.
// Fewer attempts, wider backoff, generous per-attempt deadline.
func LLMPolicy() Policy {
	p := DefaultPolicy()
	p.AttemptTimeout = 120 * time.Second
	p.MaxAttempts = 2
	p.InitialBackoff = 500 * time.Millisecond
	p.MaxBackoff = 5 * time.Second
	return p
}

func (p Policy) normalize() Policy {
	def := DefaultPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = def.InitialBackoff
	}
	if p.MaxBackoff < p.InitialBackoff {
		p.MaxBackoff = p.InitialBackoff
	}
	if p.BackoffFactor < 1.0 {
		p.BackoffFactor = def.BackoffFactor
	}
	if p.BreakerMinRequests == 0 {
		p.BreakerMinRequests = def.BreakerMinRequests
	}
	if p.BreakerFailureRatio <= 0 || p.BreakerFailureRatio > 1 {
		p.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if p.BreakerOpenFor <= 0 {
		p.BreakerOpenFor = def.BreakerOpenFor
	}
	if p.BreakerProbeCalls == 0 {
		p.BreakerProbeCalls = def.BreakerProbeCalls
	}
	return p
}
